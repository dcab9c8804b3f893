package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/course/dto"
	"bilig/internal/domain/course"
	vo "bilig/internal/domain/shared/valueobjects"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// ManageCourseUseCase covers the admin lifecycle of a course: create,
// update, publish, archive, delete, and lesson management.
type ManageCourseUseCase struct {
	courseRepo course.Repository
	logger     logger.Interface
}

// NewManageCourseUseCase creates a new manage course use case
func NewManageCourseUseCase(courseRepo course.Repository, logger logger.Interface) *ManageCourseUseCase {
	return &ManageCourseUseCase{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// Create creates a draft course.
func (uc *ManageCourseUseCase) Create(ctx context.Context, request dto.CreateCourseRequest) (*course.Course, error) {
	title := course.BilingualText{MN: request.Title.MN, EN: request.Title.EN}
	description := course.BilingualText{MN: request.Description.MN, EN: request.Description.EN}

	c, err := course.NewCourse(title, description, vo.NewMoney(request.Amount, request.Currency))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.courseRepo.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to save course", "error", err)
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	uc.logger.Infow("course created", "course_sid", c.SID(), "title", c.Title().In("mn"))
	return c, nil
}

// Update applies the non-nil fields of the request.
func (uc *ManageCourseUseCase) Update(ctx context.Context, request dto.UpdateCourseRequest) (*course.Course, error) {
	c, err := uc.getBySID(ctx, request.CourseSID)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		if err := c.UpdateTitle(course.BilingualText{MN: request.Title.MN, EN: request.Title.EN}); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if request.Description != nil {
		c.UpdateDescription(course.BilingualText{MN: request.Description.MN, EN: request.Description.EN})
	}
	if request.Amount != nil {
		if err := c.UpdatePrice(vo.NewMoney(*request.Amount, request.Currency)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.courseRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}
	return c, nil
}

// Publish makes a draft course visible and purchasable.
func (uc *ManageCourseUseCase) Publish(ctx context.Context, courseSID string) (*course.Course, error) {
	c, err := uc.getBySID(ctx, courseSID)
	if err != nil {
		return nil, err
	}
	if err := c.Publish(); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}
	if err := uc.courseRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}
	uc.logger.Infow("course published", "course_sid", c.SID())
	return c, nil
}

// Archive withdraws a course from sale. Entitlements already granted keep
// working.
func (uc *ManageCourseUseCase) Archive(ctx context.Context, courseSID string) (*course.Course, error) {
	c, err := uc.getBySID(ctx, courseSID)
	if err != nil {
		return nil, err
	}
	if err := c.Archive(); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}
	if err := uc.courseRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}
	uc.logger.Infow("course archived", "course_sid", c.SID())
	return c, nil
}

// Delete hard-deletes a course. Archiving is the normal withdrawal path;
// deletion is for mistakes, and the orphan cleanup sweep removes any
// entitlements left pointing at the course.
func (uc *ManageCourseUseCase) Delete(ctx context.Context, courseSID string) error {
	c, err := uc.getBySID(ctx, courseSID)
	if err != nil {
		return err
	}
	if err := uc.courseRepo.Delete(ctx, c.ID()); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	uc.logger.Warnw("course hard-deleted", "course_sid", courseSID, "course_id", c.ID())
	return nil
}

// AddLesson appends a lesson to the course.
func (uc *ManageCourseUseCase) AddLesson(ctx context.Context, request dto.AddLessonRequest) (*course.Course, error) {
	c, err := uc.getBySID(ctx, request.CourseSID)
	if err != nil {
		return nil, err
	}

	title := course.BilingualText{MN: request.Title.MN, EN: request.Title.EN}
	if _, err := c.AddLesson(title, request.VideoAssetID, request.DurationSec, request.FreePreview); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.courseRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}
	return c, nil
}

// RemoveLesson deletes a lesson from the course.
func (uc *ManageCourseUseCase) RemoveLesson(ctx context.Context, courseSID, lessonSID string) (*course.Course, error) {
	c, err := uc.getBySID(ctx, courseSID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveLesson(lessonSID); err != nil {
		return nil, errors.NewNotFoundError(err.Error())
	}
	if err := uc.courseRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}
	return c, nil
}

func (uc *ManageCourseUseCase) getBySID(ctx context.Context, courseSID string) (*course.Course, error) {
	if courseSID == "" {
		return nil, errors.NewValidationError("course ID is required")
	}
	c, err := uc.courseRepo.GetBySID(ctx, courseSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("course not found")
	}
	return c, nil
}
