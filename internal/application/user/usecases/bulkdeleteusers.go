package usecases

import (
	"context"
	"fmt"

	"bilig/internal/domain/enrollment"
	"bilig/internal/domain/entitlement"
	"bilig/internal/domain/user"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// BulkDeleteResult reports the outcome of one bulk delete.
type BulkDeleteResult struct {
	Deleted             []uint          `json:"deleted"`
	Failed              map[uint]string `json:"failed,omitempty"`
	EntitlementsRemoved int64           `json:"entitlements_removed"`
	EnrollmentsRemoved  int64           `json:"enrollments_removed"`
}

// BulkDeleteUsersUseCase deletes accounts in bulk. Deleting an account
// cascades its entitlements and enrollments; orders stay as financial
// records. Each account is deleted independently: one failure does not
// roll back the rest.
type BulkDeleteUsersUseCase struct {
	userRepo        user.Repository
	entitlementRepo entitlement.Repository
	enrollmentRepo  enrollment.Repository
	logger          logger.Interface
}

// NewBulkDeleteUsersUseCase creates a new bulk delete users use case
func NewBulkDeleteUsersUseCase(
	userRepo user.Repository,
	entitlementRepo entitlement.Repository,
	enrollmentRepo enrollment.Repository,
	logger logger.Interface,
) *BulkDeleteUsersUseCase {
	return &BulkDeleteUsersUseCase{
		userRepo:        userRepo,
		entitlementRepo: entitlementRepo,
		enrollmentRepo:  enrollmentRepo,
		logger:          logger,
	}
}

// Execute executes the bulk delete users use case. requesterID is the admin
// performing the deletion; deleting your own account this way is rejected.
func (uc *BulkDeleteUsersUseCase) Execute(ctx context.Context, userIDs []uint, requesterID uint) (*BulkDeleteResult, error) {
	if len(userIDs) == 0 {
		return nil, errors.NewValidationError("at least one user ID is required")
	}

	result := &BulkDeleteResult{Failed: make(map[uint]string)}

	for _, userID := range userIDs {
		if userID == requesterID {
			result.Failed[userID] = "cannot delete your own account"
			continue
		}

		u, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			result.Failed[userID] = fmt.Sprintf("lookup failed: %v", err)
			continue
		}
		if u == nil {
			result.Failed[userID] = "not found"
			continue
		}

		entGone, err := uc.entitlementRepo.DeleteByUser(ctx, userID)
		if err != nil {
			uc.logger.Errorw("failed to cascade entitlements", "error", err, "user_id", userID)
			result.Failed[userID] = fmt.Sprintf("entitlement cleanup failed: %v", err)
			continue
		}
		enrGone, err := uc.enrollmentRepo.DeleteByUser(ctx, userID)
		if err != nil {
			uc.logger.Errorw("failed to cascade enrollments", "error", err, "user_id", userID)
			result.Failed[userID] = fmt.Sprintf("enrollment cleanup failed: %v", err)
			continue
		}

		if err := uc.userRepo.Delete(ctx, userID); err != nil {
			result.Failed[userID] = fmt.Sprintf("delete failed: %v", err)
			continue
		}

		result.Deleted = append(result.Deleted, userID)
		result.EntitlementsRemoved += entGone
		result.EnrollmentsRemoved += enrGone
	}

	if len(result.Failed) == 0 {
		result.Failed = nil
	}

	uc.logger.Infow("bulk user deletion finished",
		"requested", len(userIDs),
		"deleted", len(result.Deleted),
		"entitlements_removed", result.EntitlementsRemoved,
		"enrollments_removed", result.EnrollmentsRemoved,
	)
	return result, nil
}
