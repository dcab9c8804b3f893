package admin

import (
	"context"

	entdto "bilig/internal/application/entitlement/dto"
	"bilig/internal/application/identity"
)

// Use case interfaces for EntitlementHandler - enables unit testing with mocks.

type grantAccessUseCase interface {
	Execute(ctx context.Context, request entdto.GrantAccessRequest) (*entdto.EntitlementResponse, error)
}

type revokeAccessUseCase interface {
	Execute(ctx context.Context, userID, courseID uint) (*entdto.RevokeResult, error)
}

type listEntitlementsUseCase interface {
	Execute(ctx context.Context, offset, limit int) ([]*entdto.EntitlementResponse, int64, error)
}

type userEntitlementsUseCase interface {
	Execute(ctx context.Context, userID uint, activeOnly bool) ([]*entdto.EntitlementResponse, error)
}

type sweepExpiredUseCase interface {
	Execute(ctx context.Context, userID uint) (*entdto.SweepResult, error)
}

type cleanupOrphansUseCase interface {
	Execute(ctx context.Context) (*entdto.CleanupResult, error)
}

type accountResolver interface {
	ResolveReference(ctx context.Context, idRef, emailRef string) (*identity.Resolution, error)
}
