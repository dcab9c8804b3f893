package usecases

import (
	"context"
	"fmt"

	"bilig/internal/domain/user"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// LoginCommand carries a password login attempt.
type LoginCommand struct {
	Email    string
	Password string
}

// LoginResult is the authenticated account plus its token pair.
type LoginResult struct {
	User   *user.User
	Tokens *TokenPair
}

// LoginUseCase authenticates an account with email and password.
type LoginUseCase struct {
	userRepo   user.Repository
	hasher     PasswordHasher
	jwtService JWTService
	logger     logger.Interface
}

// NewLoginUseCase creates a new login use case
func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	jwtService JWTService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Execute executes the login use case. Unknown email and wrong password
// produce the same error so the endpoint does not reveal which emails exist.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	u, err := uc.userRepo.GetByEmail(ctx, user.NormalizeEmail(cmd.Email))
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}
	if !u.IsActive() {
		uc.logger.Warnw("login attempt on deleted account", "user_id", u.ID())
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}
	if u.IsOAuthOnly() {
		return nil, errors.NewUnauthorizedError("this account signs in with Google")
	}

	if err := uc.hasher.Compare(*u.PasswordHash(), cmd.Password); err != nil {
		uc.logger.Warnw("failed login attempt", "user_id", u.ID())
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	tokens, err := uc.jwtService.Generate(u.SID(), u.Role())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", u.ID(), "user_sid", u.SID())
	return &LoginResult{User: u, Tokens: tokens}, nil
}

// RefreshTokenUseCase exchanges a refresh token for a new token pair.
type RefreshTokenUseCase struct {
	jwtService JWTService
	logger     logger.Interface
}

// NewRefreshTokenUseCase creates a new refresh token use case
func NewRefreshTokenUseCase(jwtService JWTService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		jwtService: jwtService,
		logger:     logger,
	}
}

// Execute executes the refresh token use case
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, errors.NewValidationError("refresh token is required")
	}

	tokens, err := uc.jwtService.Refresh(refreshToken)
	if err != nil {
		uc.logger.Warnw("refresh token rejected", "error", err)
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}
	return tokens, nil
}
