package handlers

import (
	"context"

	"bilig/internal/application/user/usecases"
	"bilig/internal/domain/user"
)

// Use case interfaces for AuthHandler - enables unit testing with mocks.

type registerUseCase interface {
	Execute(ctx context.Context, cmd usecases.RegisterCommand) (*usecases.RegisterResult, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}

type refreshTokenUseCase interface {
	Execute(ctx context.Context, refreshToken string) (*usecases.TokenPair, error)
}

type googleLoginUseCase interface {
	AuthURL(state string) string
	Execute(ctx context.Context, code string) (*usecases.LoginResult, error)
}

type getProfileUseCase interface {
	Execute(ctx context.Context, sid string) (*user.User, error)
}
