// Package order provides the order ledger aggregate. Orders record purchase
// intents and their terminal payment outcome; they are never deleted.
package order

// Status represents the payment outcome of an order.
// Transitions only move forward: pending -> paid | failed | cancelled.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsPaid() bool {
	return s == StatusPaid
}

func (s Status) IsPending() bool {
	return s == StatusPending
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}

// PaymentMethod identifies the payment channel used at checkout.
type PaymentMethod string

const (
	PaymentMethodQPay PaymentMethod = "qpay"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodQPay
}

func (m PaymentMethod) String() string {
	return string(m)
}
