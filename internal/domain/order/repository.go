package order

import "context"

// Repository defines the interface for order persistence operations.
// There is no Delete: orders are financial records.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error

	GetByID(ctx context.Context, orderID uint) (*Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	GetByInvoiceID(ctx context.Context, invoiceID string) (*Order, error)

	// GetPendingByUserAndCourse returns the most recent pending order for
	// the pair, used to avoid stacking duplicate checkouts.
	GetPendingByUserAndCourse(ctx context.Context, userID, courseID uint) (*Order, error)

	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*Order, int64, error)
	List(ctx context.Context, status Status, offset, limit int) ([]*Order, int64, error)
}
