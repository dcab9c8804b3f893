package usecases

import (
	"context"
	"fmt"

	"bilig/internal/domain/user"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// GoogleLoginUseCase signs an account in through Google. First sign-in
// creates the account; later sign-ins match it by email.
type GoogleLoginUseCase struct {
	userRepo   user.Repository
	verifier   GoogleVerifier
	jwtService JWTService
	logger     logger.Interface
}

// NewGoogleLoginUseCase creates a new Google login use case
func NewGoogleLoginUseCase(
	userRepo user.Repository,
	verifier GoogleVerifier,
	jwtService JWTService,
	logger logger.Interface,
) *GoogleLoginUseCase {
	return &GoogleLoginUseCase{
		userRepo:   userRepo,
		verifier:   verifier,
		jwtService: jwtService,
		logger:     logger,
	}
}

// AuthURL returns the Google consent screen URL for the given state.
func (uc *GoogleLoginUseCase) AuthURL(state string) string {
	return uc.verifier.AuthURL(state)
}

// Execute exchanges the authorization code and signs the account in.
func (uc *GoogleLoginUseCase) Execute(ctx context.Context, code string) (*LoginResult, error) {
	if code == "" {
		return nil, errors.NewValidationError("authorization code is required")
	}

	profile, err := uc.verifier.VerifyCode(ctx, code)
	if err != nil {
		uc.logger.Warnw("google code exchange failed", "error", err)
		return nil, errors.NewUnauthorizedError("google sign-in failed")
	}

	email, err := user.NewEmail(profile.Email)
	if err != nil {
		return nil, errors.NewUnauthorizedError("google account has no usable email")
	}

	u, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if u == nil {
		u, err = user.NewOAuthUser(email, profile.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		if err := uc.userRepo.Create(ctx, u); err != nil {
			if errors.IsDuplicateError(err) {
				// Parallel first sign-ins race on the email index.
				u, err = uc.userRepo.GetByEmail(ctx, email.String())
				if err != nil || u == nil {
					return nil, fmt.Errorf("failed to load user after duplicate: %w", err)
				}
			} else {
				return nil, fmt.Errorf("failed to save user: %w", err)
			}
		} else {
			uc.logger.Infow("account created from google sign-in", "user_id", u.ID(), "user_sid", u.SID())
		}
	}

	if !u.IsActive() {
		return nil, errors.NewUnauthorizedError("account is no longer active")
	}

	tokens, err := uc.jwtService.Generate(u.SID(), u.Role())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &LoginResult{User: u, Tokens: tokens}, nil
}
