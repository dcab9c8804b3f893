package user

import "errors"

var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when registering a duplicate email
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when authentication fails
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDeleted is returned when a deleted account attempts to authenticate
	ErrAccountDeleted = errors.New("account deleted")

	// ErrOAuthOnlyAccount is returned when a federated account attempts password login
	ErrOAuthOnlyAccount = errors.New("account has no password; use federated sign-in")
)
