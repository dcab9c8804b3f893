package order

import "errors"

var (
	// ErrOrderNotFound is returned when an order is not found
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvoiceNotFound is returned when no order matches a provider invoice id
	ErrInvoiceNotFound = errors.New("no order for invoice")
)
