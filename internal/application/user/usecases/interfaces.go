// Package usecases holds the account application services.
package usecases

import (
	"context"

	"bilig/internal/domain/user"
)

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// JWTService issues and refreshes token pairs.
type JWTService interface {
	Generate(userSID string, role user.Role) (*TokenPair, error)
	Refresh(refreshToken string) (*TokenPair, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// GoogleProfile is the identity asserted by Google after code exchange.
type GoogleProfile struct {
	Email string
	Name  string
}

// GoogleVerifier exchanges an OAuth authorization code for a verified profile.
type GoogleVerifier interface {
	AuthURL(state string) string
	VerifyCode(ctx context.Context, code string) (*GoogleProfile, error)
}

// WelcomeSender delivers the post-registration email. Delivery failures
// never fail the registration.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, email, name string) error
}
