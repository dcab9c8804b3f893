package handlers

import (
	"time"

	"bilig/internal/domain/user"
)

// UserResponse is the API view of an account.
type UserResponse struct {
	SID       string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse maps an account to its API view.
func ToUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		SID:       u.SID(),
		Email:     u.Email().String(),
		Name:      u.Name(),
		Role:      u.Role().String(),
		Status:    u.Status().String(),
		CreatedAt: u.CreatedAt(),
	}
}

// TokenResponse is the API view of an issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
