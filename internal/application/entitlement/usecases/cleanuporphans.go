package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/entitlement/dto"
	"bilig/internal/domain/course"
	"bilig/internal/domain/entitlement"
	"bilig/internal/shared/logger"
)

// CleanupOrphansUseCase removes entitlements whose course no longer exists.
// Courses are normally archived rather than deleted, so orphans only appear
// after a hard delete; this sweep keeps the store consistent afterwards.
type CleanupOrphansUseCase struct {
	entitlementRepo entitlement.Repository
	courseRepo      course.Repository
	logger          logger.Interface
}

// NewCleanupOrphansUseCase creates a new cleanup orphans use case
func NewCleanupOrphansUseCase(
	entitlementRepo entitlement.Repository,
	courseRepo course.Repository,
	logger logger.Interface,
) *CleanupOrphansUseCase {
	return &CleanupOrphansUseCase{
		entitlementRepo: entitlementRepo,
		courseRepo:      courseRepo,
		logger:          logger,
	}
}

// Execute finds referenced course IDs with no matching course row and
// deletes the entitlements pointing at them.
func (uc *CleanupOrphansUseCase) Execute(ctx context.Context) (*dto.CleanupResult, error) {
	referenced, err := uc.entitlementRepo.DistinctCourseIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect referenced course IDs: %w", err)
	}
	if len(referenced) == 0 {
		return &dto.CleanupResult{}, nil
	}

	existing, err := uc.courseRepo.ExistingIDs(ctx, referenced)
	if err != nil {
		return nil, fmt.Errorf("failed to check course existence: %w", err)
	}

	var orphans []uint
	for _, courseID := range referenced {
		if !existing[courseID] {
			orphans = append(orphans, courseID)
		}
	}
	if len(orphans) == 0 {
		return &dto.CleanupResult{}, nil
	}

	deleted, err := uc.entitlementRepo.DeleteByCourseIDs(ctx, orphans)
	if err != nil {
		uc.logger.Errorw("failed to delete orphaned entitlements", "error", err, "orphan_course_ids", orphans)
		return nil, fmt.Errorf("failed to delete orphaned entitlements: %w", err)
	}

	uc.logger.Infow("orphaned entitlements removed",
		"deleted_count", deleted,
		"orphan_course_ids", orphans,
	)
	return &dto.CleanupResult{
		DeletedCount:    deleted,
		OrphanCourseIDs: orphans,
	}, nil
}
