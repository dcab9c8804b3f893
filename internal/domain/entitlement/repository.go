package entitlement

import "context"

// ExpiredPair identifies an entitlement corrected by the expiry sweep.
type ExpiredPair struct {
	UserID   uint
	CourseID uint
}

// Repository defines the interface for entitlement persistence operations
type Repository interface {
	Create(ctx context.Context, e *Entitlement) error
	Update(ctx context.Context, e *Entitlement) error

	// GetByUserAndCourse retrieves the entitlement for the unique
	// (user, course) pair, regardless of status.
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*Entitlement, error)

	GetByUser(ctx context.Context, userID uint) ([]*Entitlement, error)

	// List returns entitlements with pagination, newest first.
	List(ctx context.Context, offset, limit int) ([]*Entitlement, int64, error)

	// GetExpired returns entitlements whose stored status is still active
	// but whose expiry has passed; scoped to one user when userID != 0.
	GetExpired(ctx context.Context, userID uint) ([]*Entitlement, error)

	// DeleteByUser removes all entitlements for an account; part of the
	// account-deletion cascade.
	DeleteByUser(ctx context.Context, userID uint) (int64, error)

	// DeleteByCourseIDs removes entitlements referencing the given courses;
	// used by the orphan cleanup sweep after the courses are confirmed gone.
	DeleteByCourseIDs(ctx context.Context, courseIDs []uint) (int64, error)

	// DistinctCourseIDs returns every course ID referenced by at least one
	// entitlement row.
	DistinctCourseIDs(ctx context.Context) ([]uint, error)
}
