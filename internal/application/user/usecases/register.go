package usecases

import (
	"context"
	"fmt"

	"bilig/internal/domain/user"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// RegisterCommand carries a password registration.
type RegisterCommand struct {
	Email    string
	Name     string
	Password string
}

// RegisterResult is the created account plus its first token pair.
type RegisterResult struct {
	User   *user.User
	Tokens *TokenPair
}

// RegisterUseCase registers an account with email and password.
type RegisterUseCase struct {
	userRepo      user.Repository
	hasher        PasswordHasher
	jwtService    JWTService
	welcomeSender WelcomeSender // optional
	logger        logger.Interface
}

// NewRegisterUseCase creates a new register use case
func NewRegisterUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	jwtService JWTService,
	welcomeSender WelcomeSender,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:      userRepo,
		hasher:        hasher,
		jwtService:    jwtService,
		welcomeSender: welcomeSender,
		logger:        logger,
	}
}

// Execute executes the register use case
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	email, err := user.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if len(cmd.Password) < 8 {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("email already registered")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := user.NewUser(email, hash, cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("email already registered")
		}
		uc.logger.Errorw("failed to save user", "error", err)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	tokens, err := uc.jwtService.Generate(newUser.SID(), newUser.Role())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	if uc.welcomeSender != nil {
		if err := uc.welcomeSender.SendWelcome(ctx, newUser.Email().String(), newUser.Name()); err != nil {
			uc.logger.Warnw("failed to send welcome email", "error", err, "user_id", newUser.ID())
		}
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID(), "user_sid", newUser.SID())
	return &RegisterResult{User: newUser, Tokens: tokens}, nil
}
