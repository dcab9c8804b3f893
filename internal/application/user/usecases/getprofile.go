package usecases

import (
	"context"
	"fmt"

	"bilig/internal/domain/user"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// GetProfileUseCase fetches the account behind a public SID.
type GetProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

// NewGetProfileUseCase creates a new get profile use case
func NewGetProfileUseCase(userRepo user.Repository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Execute executes the get profile use case
func (uc *GetProfileUseCase) Execute(ctx context.Context, sid string) (*user.User, error) {
	if sid == "" {
		return nil, errors.NewValidationError("user SID is required")
	}

	u, err := uc.userRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil || !u.IsActive() {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}

// ListUsersUseCase lists accounts for the back office.
type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

// NewListUsersUseCase creates a new list users use case
func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Execute executes the list users use case
func (uc *ListUsersUseCase) Execute(ctx context.Context, offset, limit int) ([]*user.User, int64, error) {
	users, total, err := uc.userRepo.List(ctx, offset, limit)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}
