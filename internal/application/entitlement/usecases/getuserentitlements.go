package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/entitlement/dto"
	"bilig/internal/domain/entitlement"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// GetUserEntitlementsUseCase returns every entitlement of one account,
// used for the "my courses" view.
type GetUserEntitlementsUseCase struct {
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

// NewGetUserEntitlementsUseCase creates a new get user entitlements use case
func NewGetUserEntitlementsUseCase(
	entitlementRepo entitlement.Repository,
	logger logger.Interface,
) *GetUserEntitlementsUseCase {
	return &GetUserEntitlementsUseCase{
		entitlementRepo: entitlementRepo,
		logger:          logger,
	}
}

// Execute returns the account's entitlements with effective statuses.
// When activeOnly is set, records that no longer grant access are dropped.
func (uc *GetUserEntitlementsUseCase) Execute(ctx context.Context, userID uint, activeOnly bool) ([]*dto.EntitlementResponse, error) {
	if userID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	ents, err := uc.entitlementRepo.GetByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user entitlements", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get user entitlements: %w", err)
	}

	responses := make([]*dto.EntitlementResponse, 0, len(ents))
	for _, e := range ents {
		if activeOnly && !e.IsActive() {
			continue
		}
		responses = append(responses, dto.ToEntitlementResponse(e))
	}
	return responses, nil
}
