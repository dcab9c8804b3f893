package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/access"
	"bilig/internal/application/course/dto"
	"bilig/internal/domain/course"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// CatalogUseCase serves the public course catalog and the course detail
// view, localized and with markdown descriptions rendered.
type CatalogUseCase struct {
	courseRepo course.Repository
	accessFcd  *access.Facade
	renderer   MarkdownRenderer
	logger     logger.Interface
}

// NewCatalogUseCase creates a new catalog use case
func NewCatalogUseCase(
	courseRepo course.Repository,
	accessFcd *access.Facade,
	renderer MarkdownRenderer,
	logger logger.Interface,
) *CatalogUseCase {
	return &CatalogUseCase{
		courseRepo: courseRepo,
		accessFcd:  accessFcd,
		renderer:   renderer,
		logger:     logger,
	}
}

// List returns a catalog page. Non-admin callers only ever see active
// courses; admins may pass any status filter, or empty for all.
func (uc *CatalogUseCase) List(ctx context.Context, statusFilter string, isAdmin bool, lang string, offset, limit int) ([]*dto.CourseResponse, int64, error) {
	status := course.StatusActive
	if isAdmin {
		status = course.Status(statusFilter)
		if statusFilter != "" && !status.IsValid() {
			return nil, 0, errors.NewValidationError(fmt.Sprintf("invalid course status: %s", statusFilter))
		}
	}

	courses, total, err := uc.courseRepo.List(ctx, status, offset, limit)
	if err != nil {
		uc.logger.Errorw("failed to list courses", "error", err)
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	responses := make([]*dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		// Catalog rows skip the rendered description to keep the page light.
		responses = append(responses, uc.toResponse(c, lang, false, false))
	}
	return responses, total, nil
}

// Get returns one course with its lessons. Lessons the requester may play
// carry their video asset reference; userID zero means anonymous.
func (uc *CatalogUseCase) Get(ctx context.Context, courseSID string, userID uint, isAdmin bool, lang string) (*dto.CourseResponse, error) {
	c, err := uc.courseRepo.GetBySID(ctx, courseSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("course not found")
	}
	if c.Status() == course.StatusDraft && !isAdmin {
		return nil, errors.NewNotFoundError("course not found")
	}

	entitled := isAdmin
	if !entitled && userID != 0 {
		decision, err := uc.accessFcd.HasAccess(ctx, userID, c.ID())
		if err != nil {
			return nil, err
		}
		entitled = decision.Allowed
	}

	resp := uc.toResponse(c, lang, true, entitled)
	return resp, nil
}

// WatchLesson resolves the playable video asset for a lesson, enforcing
// entitlement through the access facade.
func (uc *CatalogUseCase) WatchLesson(ctx context.Context, courseSID, lessonSID string, userID uint, lang string) (*dto.LessonResponse, error) {
	c, err := uc.courseRepo.GetBySID(ctx, courseSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("course not found")
	}

	decision, err := uc.accessFcd.CanWatchLesson(ctx, userID, c.ID(), lessonSID)
	if err != nil {
		if err == course.ErrLessonNotFound {
			return nil, errors.NewNotFoundError("lesson not found")
		}
		return nil, err
	}
	if !decision.Allowed {
		return nil, errors.NewForbiddenError("course access required")
	}

	lesson, _ := c.FindLesson(lessonSID)
	return dto.ToLessonResponse(lesson, lang, true), nil
}

func (uc *CatalogUseCase) toResponse(c *course.Course, lang string, withDescription, entitled bool) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		SID:         c.SID(),
		Title:       c.Title().In(lang),
		Amount:      c.Price().Amount(),
		Currency:    c.Price().Currency(),
		Free:        c.IsFree(),
		Status:      c.Status().String(),
		LessonCount: len(c.Lessons()),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}

	if withDescription {
		html, err := uc.renderer.Render(c.Description().In(lang))
		if err != nil {
			uc.logger.Warnw("failed to render course description", "error", err, "course_sid", c.SID())
		} else {
			resp.DescriptionHTML = html
		}
		for _, lesson := range c.Lessons() {
			withAsset := entitled || lesson.IsFreePreview()
			resp.Lessons = append(resp.Lessons, dto.ToLessonResponse(lesson, lang, withAsset))
		}
	}
	return resp
}
