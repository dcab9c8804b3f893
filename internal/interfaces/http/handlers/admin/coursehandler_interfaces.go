package admin

import (
	"context"

	coursedto "bilig/internal/application/course/dto"
	"bilig/internal/domain/course"
)

// Use case interfaces for CourseHandler - enables unit testing with mocks.

type manageCourseUseCase interface {
	Create(ctx context.Context, request coursedto.CreateCourseRequest) (*course.Course, error)
	Update(ctx context.Context, request coursedto.UpdateCourseRequest) (*course.Course, error)
	Publish(ctx context.Context, courseSID string) (*course.Course, error)
	Archive(ctx context.Context, courseSID string) (*course.Course, error)
	Delete(ctx context.Context, courseSID string) error
	AddLesson(ctx context.Context, request coursedto.AddLessonRequest) (*course.Course, error)
	RemoveLesson(ctx context.Context, courseSID, lessonSID string) (*course.Course, error)
}
