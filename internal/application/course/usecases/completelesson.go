package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/access"
	"bilig/internal/domain/course"
	"bilig/internal/domain/enrollment"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// ProgressResult reports lesson completion state after an update.
type ProgressResult struct {
	CompletedLessons int  `json:"completed_lessons"`
	TotalLessons     int  `json:"total_lessons"`
	CourseCompleted  bool `json:"course_completed"`
}

// CompleteLessonUseCase records that an account finished a lesson. The
// enrollment row is created lazily on the first completed lesson.
type CompleteLessonUseCase struct {
	courseRepo     course.Repository
	enrollmentRepo enrollment.Repository
	accessFcd      *access.Facade
	logger         logger.Interface
}

// NewCompleteLessonUseCase creates a new complete lesson use case
func NewCompleteLessonUseCase(
	courseRepo course.Repository,
	enrollmentRepo enrollment.Repository,
	accessFcd *access.Facade,
	logger logger.Interface,
) *CompleteLessonUseCase {
	return &CompleteLessonUseCase{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		accessFcd:      accessFcd,
		logger:         logger,
	}
}

// Execute executes the complete lesson use case
func (uc *CompleteLessonUseCase) Execute(ctx context.Context, userID uint, courseSID, lessonSID string) (*ProgressResult, error) {
	if userID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	c, err := uc.courseRepo.GetBySID(ctx, courseSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("course not found")
	}
	if _, ok := c.FindLesson(lessonSID); !ok {
		return nil, errors.NewNotFoundError("lesson not found")
	}

	decision, err := uc.accessFcd.CanWatchLesson(ctx, userID, c.ID(), lessonSID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, errors.NewForbiddenError("course access required")
	}

	enr, err := uc.enrollmentRepo.GetByUserAndCourse(ctx, userID, c.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	created := false
	if enr == nil {
		enr, err = enrollment.NewEnrollment(userID, c.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to create enrollment: %w", err)
		}
		created = true
	}

	enr.CompleteLesson(lessonSID, len(c.Lessons()))

	if created {
		err = uc.enrollmentRepo.Create(ctx, enr)
	} else {
		err = uc.enrollmentRepo.Update(ctx, enr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save enrollment: %w", err)
	}

	if enr.IsCompleted() {
		uc.logger.Infow("course completed", "user_id", userID, "course_sid", courseSID)
	}
	return &ProgressResult{
		CompletedLessons: len(enr.CompletedLessons()),
		TotalLessons:     len(c.Lessons()),
		CourseCompleted:  enr.IsCompleted(),
	}, nil
}
