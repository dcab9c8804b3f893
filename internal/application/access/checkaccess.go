package access

import (
	"context"
	"fmt"

	"bilig/internal/domain/course"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// CheckResult is the API view of an access decision.
type CheckResult struct {
	HasAccess bool   `json:"has_access"`
	Source    string `json:"source,omitempty"`
}

// CheckCourseAccessUseCase answers whether an account may open a course,
// addressed by the course's public short ID. Read-only; the diagnostic
// source names which rule granted access.
type CheckCourseAccessUseCase struct {
	courseRepo course.Repository
	facade     *Facade
	logger     logger.Interface
}

// NewCheckCourseAccessUseCase creates a new check course access use case
func NewCheckCourseAccessUseCase(
	courseRepo course.Repository,
	facade *Facade,
	logger logger.Interface,
) *CheckCourseAccessUseCase {
	return &CheckCourseAccessUseCase{
		courseRepo: courseRepo,
		facade:     facade,
		logger:     logger,
	}
}

// Execute executes the check course access use case. A zero userID is an
// anonymous caller; only free courses grant access then.
func (uc *CheckCourseAccessUseCase) Execute(ctx context.Context, userID uint, courseSID string) (*CheckResult, error) {
	c, err := uc.courseRepo.GetBySID(ctx, courseSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("course not found")
	}

	if userID == 0 {
		if c.IsFree() && c.Status() != course.StatusDraft {
			return &CheckResult{HasAccess: true, Source: string(SourceFreeCourse)}, nil
		}
		return &CheckResult{}, nil
	}

	decision, err := uc.facade.HasAccess(ctx, userID, c.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to check access: %w", err)
	}

	return &CheckResult{HasAccess: decision.Allowed, Source: string(decision.Source)}, nil
}
