package user

import "context"

// Repository defines the interface for user persistence operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error

	GetByID(ctx context.Context, userID uint) (*User, error)
	GetBySID(ctx context.Context, sid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List returns active users with pagination.
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)

	// Delete removes the user row. Callers are responsible for cascading
	// entitlement cleanup first; orders are kept as financial records.
	Delete(ctx context.Context, userID uint) error
}
