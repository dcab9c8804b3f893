// Package usecases holds the entitlement application services.
package usecases

import (
	"context"
	"fmt"
	"time"

	"bilig/internal/application/entitlement/dto"
	"bilig/internal/domain/entitlement"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

// GrantAccessUseCase grants course access to an account. The grant is an
// idempotent upsert on the unique (user, course) pair: an existing record
// is refreshed rather than duplicated, whatever its current status.
type GrantAccessUseCase struct {
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

// NewGrantAccessUseCase creates a new grant access use case
func NewGrantAccessUseCase(
	entitlementRepo entitlement.Repository,
	logger logger.Interface,
) *GrantAccessUseCase {
	return &GrantAccessUseCase{
		entitlementRepo: entitlementRepo,
		logger:          logger,
	}
}

// Execute executes the grant access use case
func (uc *GrantAccessUseCase) Execute(
	ctx context.Context,
	request dto.GrantAccessRequest,
) (*dto.EntitlementResponse, error) {
	uc.logger.Infow("granting course access",
		"user_id", request.UserID,
		"course_id", request.CourseID,
		"access_type", request.AccessType,
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, err
	}

	accessType := entitlement.AccessType(request.AccessType)
	if !accessType.IsValid() {
		uc.logger.Warnw("invalid access type", "access_type", request.AccessType)
		return nil, errors.NewValidationError(fmt.Sprintf("invalid access type: %s", request.AccessType))
	}

	var expiresAt *time.Time
	if request.ExpiresAt != nil && *request.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, *request.ExpiresAt)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid expiration time format: %s (expected RFC3339)", *request.ExpiresAt))
		}
		expiresAt = &parsed
	}

	existing, err := uc.entitlementRepo.GetByUserAndCourse(ctx, request.UserID, request.CourseID)
	if err != nil {
		uc.logger.Errorw("failed to check existing entitlement", "error", err)
		return nil, fmt.Errorf("failed to check existing entitlement: %w", err)
	}

	if existing != nil {
		if err := existing.Refresh(accessType, expiresAt, request.OrderID, request.GrantedBy, request.Notes); err != nil {
			return nil, fmt.Errorf("failed to refresh entitlement: %w", err)
		}
		if err := uc.entitlementRepo.Update(ctx, existing); err != nil {
			uc.logger.Errorw("failed to update entitlement", "error", err)
			return nil, fmt.Errorf("failed to update entitlement: %w", err)
		}
		uc.logger.Infow("existing entitlement refreshed",
			"entitlement_id", existing.ID(),
			"user_id", existing.UserID(),
			"course_id", existing.CourseID(),
		)
		return dto.ToEntitlementResponse(existing), nil
	}

	ent, err := entitlement.NewEntitlement(
		request.UserID,
		request.CourseID,
		accessType,
		expiresAt,
		request.OrderID,
		request.GrantedBy,
		request.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create entitlement: %w", err)
	}

	if err := uc.entitlementRepo.Create(ctx, ent); err != nil {
		// Concurrent grants for the same pair race on the unique index.
		// The loser re-reads the winner's row and refreshes it.
		if errors.IsDuplicateError(err) {
			return uc.refreshAfterRace(ctx, request, accessType, expiresAt)
		}
		uc.logger.Errorw("failed to persist entitlement", "error", err)
		return nil, fmt.Errorf("failed to save entitlement: %w", err)
	}

	uc.logger.Infow("entitlement granted",
		"entitlement_id", ent.ID(),
		"user_id", ent.UserID(),
		"course_id", ent.CourseID(),
		"access_type", ent.AccessType().String(),
	)
	return dto.ToEntitlementResponse(ent), nil
}

func (uc *GrantAccessUseCase) refreshAfterRace(
	ctx context.Context,
	request dto.GrantAccessRequest,
	accessType entitlement.AccessType,
	expiresAt *time.Time,
) (*dto.EntitlementResponse, error) {
	existing, err := uc.entitlementRepo.GetByUserAndCourse(ctx, request.UserID, request.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read entitlement after duplicate: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("entitlement vanished after duplicate key error")
	}

	if err := existing.Refresh(accessType, expiresAt, request.OrderID, request.GrantedBy, request.Notes); err != nil {
		return nil, fmt.Errorf("failed to refresh entitlement: %w", err)
	}
	if err := uc.entitlementRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update entitlement: %w", err)
	}

	uc.logger.Infow("entitlement refreshed after concurrent grant",
		"user_id", request.UserID,
		"course_id", request.CourseID,
	)
	return dto.ToEntitlementResponse(existing), nil
}
