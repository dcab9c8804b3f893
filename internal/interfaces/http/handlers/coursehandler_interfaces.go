package handlers

import (
	"context"

	coursedto "bilig/internal/application/course/dto"
	"bilig/internal/application/course/usecases"
)

// Use case interfaces for CourseHandler - enables unit testing with mocks.

type catalogUseCase interface {
	List(ctx context.Context, statusFilter string, isAdmin bool, lang string, offset, limit int) ([]*coursedto.CourseResponse, int64, error)
	Get(ctx context.Context, courseSID string, userID uint, isAdmin bool, lang string) (*coursedto.CourseResponse, error)
	WatchLesson(ctx context.Context, courseSID, lessonSID string, userID uint, lang string) (*coursedto.LessonResponse, error)
}

type completeLessonUseCase interface {
	Execute(ctx context.Context, userID uint, courseSID, lessonSID string) (*usecases.ProgressResult, error)
}
