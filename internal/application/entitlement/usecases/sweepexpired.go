package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/entitlement/dto"
	"bilig/internal/domain/entitlement"
	"bilig/internal/shared/logger"
)

// SweepExpiredUseCase corrects stored statuses of entitlements whose expiry
// has passed. The sweep is a bookkeeping pass only: access checks never
// trust the stored status, so a delayed sweep cannot extend access.
type SweepExpiredUseCase struct {
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

// NewSweepExpiredUseCase creates a new sweep expired use case
func NewSweepExpiredUseCase(
	entitlementRepo entitlement.Repository,
	logger logger.Interface,
) *SweepExpiredUseCase {
	return &SweepExpiredUseCase{
		entitlementRepo: entitlementRepo,
		logger:          logger,
	}
}

// Execute expires every overdue entitlement. A non-zero userID scopes the
// sweep to one account, which the admin API uses for targeted cleanup.
func (uc *SweepExpiredUseCase) Execute(ctx context.Context, userID uint) (*dto.SweepResult, error) {
	overdue, err := uc.entitlementRepo.GetExpired(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to load overdue entitlements", "error", err)
		return nil, fmt.Errorf("failed to load overdue entitlements: %w", err)
	}

	result := &dto.SweepResult{}
	for _, e := range overdue {
		e.Expire()
		if err := uc.entitlementRepo.Update(ctx, e); err != nil {
			// Keep sweeping; the row stays overdue and the next run picks it up.
			uc.logger.Errorw("failed to expire entitlement",
				"error", err,
				"entitlement_id", e.ID(),
				"user_id", e.UserID(),
				"course_id", e.CourseID(),
			)
			continue
		}
		result.ExpiredCount++
		result.Pairs = append(result.Pairs, entitlement.ExpiredPair{
			UserID:   e.UserID(),
			CourseID: e.CourseID(),
		})
	}

	if result.ExpiredCount > 0 {
		uc.logger.Infow("expiry sweep completed", "expired_count", result.ExpiredCount, "scoped_user_id", userID)
	}
	return result, nil
}
