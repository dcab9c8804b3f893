package enrollment

import "context"

// Repository defines the interface for enrollment persistence operations
type Repository interface {
	Create(ctx context.Context, e *Enrollment) error
	Update(ctx context.Context, e *Enrollment) error

	// GetByUserAndCourse retrieves the enrollment for the unique
	// (user, course) pair.
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*Enrollment, error)

	GetByUser(ctx context.Context, userID uint) ([]*Enrollment, error)

	// HasCompleted reports whether the account finished the course.
	HasCompleted(ctx context.Context, userID, courseID uint) (bool, error)

	// DeleteByUser removes all enrollments for an account; part of the
	// account-deletion cascade.
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
}
