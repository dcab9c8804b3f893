package course

import "context"

// Repository defines the interface for course persistence operations
type Repository interface {
	Create(ctx context.Context, c *Course) error
	Update(ctx context.Context, c *Course) error
	Delete(ctx context.Context, courseID uint) error

	GetByID(ctx context.Context, courseID uint) (*Course, error)
	GetBySID(ctx context.Context, sid string) (*Course, error)

	// List returns courses filtered by status (empty status means all),
	// with pagination.
	List(ctx context.Context, status Status, offset, limit int) ([]*Course, int64, error)

	// ExistingIDs returns which of the given course IDs still exist.
	// Used by the orphaned-entitlement cleanup sweep.
	ExistingIDs(ctx context.Context, courseIDs []uint) (map[uint]bool, error)
}
