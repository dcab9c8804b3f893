// Package dto defines the request and response shapes of the payment
// use cases.
package dto

// CallbackRequest carries one webhook delivery from the payment provider.
// RawBody is the payload exactly as received; Params are the query
// parameters of the callback URL.
type CallbackRequest struct {
	RawBody string
	Params  map[string]string
}

// CallbackResult reports what a webhook delivery led to. The HTTP handler
// acknowledges the delivery regardless of this result; it exists for
// logging and tests.
type CallbackResult struct {
	OrderFound   bool   `json:"order_found"`
	InvoiceID    string `json:"invoice_id,omitempty"`
	OrderNo      string `json:"order_no,omitempty"`
	Settled      bool   `json:"settled"`
	AlreadyPaid  bool   `json:"already_paid"`
	OrderStatus  string `json:"order_status,omitempty"`
	PaidAmount   int64  `json:"paid_amount,omitempty"`
	AccessGiven  bool   `json:"access_given"`
	FailureNote  string `json:"failure_note,omitempty"`
}

// ReconcileResult reports the outcome of a manual reconciliation.
type ReconcileResult struct {
	OrderNo     string `json:"order_no"`
	Settled     bool   `json:"settled"`
	AlreadyPaid bool   `json:"already_paid"`
	OrderStatus string `json:"order_status"`
	PaidAmount  int64  `json:"paid_amount"`
}
