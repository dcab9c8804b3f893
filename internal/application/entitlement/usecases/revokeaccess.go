package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/entitlement/dto"
	"bilig/internal/domain/entitlement"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// RevokeAccessUseCase revokes course access for an account.
type RevokeAccessUseCase struct {
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

// NewRevokeAccessUseCase creates a new revoke access use case
func NewRevokeAccessUseCase(
	entitlementRepo entitlement.Repository,
	logger logger.Interface,
) *RevokeAccessUseCase {
	return &RevokeAccessUseCase{
		entitlementRepo: entitlementRepo,
		logger:          logger,
	}
}

// Execute revokes the entitlement for the (user, course) pair. Revoking an
// already-revoked record succeeds; a pair with no record at all is a silent
// no-op reported as revoked=false, never an error.
func (uc *RevokeAccessUseCase) Execute(ctx context.Context, userID, courseID uint) (*dto.RevokeResult, error) {
	if userID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	if courseID == 0 {
		return nil, errors.NewValidationError("course ID is required")
	}

	ent, err := uc.entitlementRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		uc.logger.Errorw("failed to get entitlement", "error", err, "user_id", userID, "course_id", courseID)
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	if ent == nil {
		uc.logger.Warnw("no entitlement to revoke", "user_id", userID, "course_id", courseID)
		return &dto.RevokeResult{Revoked: false}, nil
	}

	ent.Revoke()

	if err := uc.entitlementRepo.Update(ctx, ent); err != nil {
		uc.logger.Errorw("failed to update entitlement", "error", err, "entitlement_id", ent.ID())
		return nil, fmt.Errorf("failed to update entitlement: %w", err)
	}

	uc.logger.Infow("entitlement revoked",
		"entitlement_id", ent.ID(),
		"user_id", userID,
		"course_id", courseID,
	)
	return &dto.RevokeResult{Revoked: true, Entitlement: dto.ToEntitlementResponse(ent)}, nil
}
