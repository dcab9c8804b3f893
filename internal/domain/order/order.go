package order

import (
	"fmt"
	"time"

	vo "bilig/internal/domain/shared/valueobjects"
	"bilig/internal/domain/shared/services"
	"bilig/internal/shared/biztime"
)

// Order is the order ledger aggregate root. It is a financial record:
// rows are never deleted, terminal statuses are never left, and a paid
// order is never re-priced.
type Order struct {
	orderID       uint
	orderNo       string
	userID        uint
	courseID      uint
	amount        vo.Money
	paymentMethod PaymentMethod
	status        Status

	invoiceID     *string // provider invoice identifier, set at checkout
	transactionID *string // provider transaction identifier, set on payment

	// callbackLog keeps every raw webhook payload received for this order,
	// append-only, for audit. lastVerification keeps the most recent raw
	// response from the provider's authoritative status endpoint.
	callbackLog      []string
	lastVerification *string

	paidAt    *time.Time
	createdAt time.Time
	updatedAt time.Time
	version   int
}

// NewOrder creates a pending order for a checkout.
func NewOrder(userID, courseID uint, amount vo.Money, method PaymentMethod) (*Order, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if courseID == 0 {
		return nil, fmt.Errorf("course ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("invalid payment method: %s", method)
	}

	orderNo := services.NewOrderNumberGenerator().Generate("ORD")
	now := biztime.NowUTC()

	return &Order{
		orderNo:       orderNo,
		userID:        userID,
		courseID:      courseID,
		amount:        amount,
		paymentMethod: method,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
	}, nil
}

// OrderReconstructParams carries persisted state for ReconstructOrder.
type OrderReconstructParams struct {
	ID               uint
	OrderNo          string
	UserID           uint
	CourseID         uint
	Amount           vo.Money
	PaymentMethod    PaymentMethod
	Status           Status
	InvoiceID        *string
	TransactionID    *string
	CallbackLog      []string
	LastVerification *string
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int
}

// ReconstructOrder rebuilds an order from persistence.
func ReconstructOrder(p OrderReconstructParams) *Order {
	return &Order{
		orderID:          p.ID,
		orderNo:          p.OrderNo,
		userID:           p.UserID,
		courseID:         p.CourseID,
		amount:           p.Amount,
		paymentMethod:    p.PaymentMethod,
		status:           p.Status,
		invoiceID:        p.InvoiceID,
		transactionID:    p.TransactionID,
		callbackLog:      p.CallbackLog,
		lastVerification: p.LastVerification,
		paidAt:           p.PaidAt,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
		version:          p.Version,
	}
}

func (o *Order) ID() uint                     { return o.orderID }
func (o *Order) OrderNo() string              { return o.orderNo }
func (o *Order) UserID() uint                 { return o.userID }
func (o *Order) CourseID() uint               { return o.courseID }
func (o *Order) Amount() vo.Money             { return o.amount }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) Status() Status               { return o.status }
func (o *Order) InvoiceID() *string           { return o.invoiceID }
func (o *Order) TransactionID() *string       { return o.transactionID }
func (o *Order) CallbackLog() []string        { return o.callbackLog }
func (o *Order) LastVerification() *string    { return o.lastVerification }
func (o *Order) PaidAt() *time.Time           { return o.paidAt }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
func (o *Order) Version() int                 { return o.version }

// SetID sets the order ID after persistence.
func (o *Order) SetID(orderID uint) {
	o.orderID = orderID
}

// SetInvoiceID records the provider invoice created at checkout.
func (o *Order) SetInvoiceID(invoiceID string) error {
	if o.status != StatusPending {
		return fmt.Errorf("cannot attach invoice to %s order", o.status)
	}
	o.invoiceID = &invoiceID
	o.touch()
	return nil
}

// MarkAsPaid transitions the order to paid. Calling it on an already-paid
// order is a no-op: this is the guard against duplicate webhook deliveries.
func (o *Order) MarkAsPaid(transactionID string) error {
	if o.status == StatusPaid {
		return nil
	}
	if o.status != StatusPending {
		return fmt.Errorf("cannot mark %s order as paid", o.status)
	}

	now := biztime.NowUTC()
	o.status = StatusPaid
	o.transactionID = &transactionID
	o.paidAt = &now
	o.touch()
	return nil
}

// MarkAsFailed transitions the order to failed. Terminal states are preserved.
func (o *Order) MarkAsFailed() error {
	if o.status == StatusFailed {
		return nil
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("cannot mark %s order as failed", o.status)
	}
	o.status = StatusFailed
	o.touch()
	return nil
}

// Cancel transitions the order to cancelled. A paid order can never be cancelled.
func (o *Order) Cancel() error {
	if o.status == StatusCancelled {
		return nil
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("cannot cancel %s order", o.status)
	}
	o.status = StatusCancelled
	o.touch()
	return nil
}

// RecordCallback appends a raw webhook payload to the audit log.
// Always allowed, regardless of order status.
func (o *Order) RecordCallback(rawPayload string) {
	o.callbackLog = append(o.callbackLog, rawPayload)
	o.touch()
}

// RecordVerification stores the raw response of the latest authoritative
// provider status check. Always allowed, regardless of order status.
func (o *Order) RecordVerification(rawResponse string) {
	o.lastVerification = &rawResponse
	o.touch()
}

func (o *Order) touch() {
	o.updatedAt = biztime.NowUTC()
	o.version++
}
