package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/entitlement/dto"
	"bilig/internal/domain/entitlement"
	"bilig/internal/shared/logger"
)

// ListEntitlementsUseCase lists entitlements for the back office.
type ListEntitlementsUseCase struct {
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

// NewListEntitlementsUseCase creates a new list entitlements use case
func NewListEntitlementsUseCase(
	entitlementRepo entitlement.Repository,
	logger logger.Interface,
) *ListEntitlementsUseCase {
	return &ListEntitlementsUseCase{
		entitlementRepo: entitlementRepo,
		logger:          logger,
	}
}

// Execute returns a page of entitlements, newest first. Statuses in the
// response are effective statuses.
func (uc *ListEntitlementsUseCase) Execute(ctx context.Context, offset, limit int) ([]*dto.EntitlementResponse, int64, error) {
	ents, total, err := uc.entitlementRepo.List(ctx, offset, limit)
	if err != nil {
		uc.logger.Errorw("failed to list entitlements", "error", err)
		return nil, 0, fmt.Errorf("failed to list entitlements: %w", err)
	}

	responses := make([]*dto.EntitlementResponse, 0, len(ents))
	for _, e := range ents {
		responses = append(responses, dto.ToEntitlementResponse(e))
	}
	return responses, total, nil
}
