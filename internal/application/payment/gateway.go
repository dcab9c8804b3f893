// Package payment holds the checkout and reconciliation application services
// and the port to the payment provider.
package payment

import "context"

// CreateInvoiceParams describes the invoice to raise with the provider.
type CreateInvoiceParams struct {
	OrderNo     string
	Amount      int64
	Currency    string
	Description string
	ReceiverSID string
}

// Invoice is a provider invoice presented to the buyer.
type Invoice struct {
	InvoiceID  string
	QRText     string
	QRImage    string // base64 PNG
	ShortURL   string
	DeepLinks  []DeepLink
}

// DeepLink opens a specific banking app at the payment screen.
type DeepLink struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Link        string `json:"link"`
}

// PaymentRecord is one settled payment row from the provider.
type PaymentRecord struct {
	PaymentID string
	Status    string
	Amount    int64
	Currency  string
}

// CheckResult is the provider's authoritative answer for an invoice.
// PaidAmount is the sum over settled payment rows; webhook bodies are
// never trusted for amounts.
type CheckResult struct {
	Count      int
	PaidAmount int64
	Payments   []PaymentRecord
	Raw        string // raw response body, kept for audit
}

// Gateway is the port to the payment provider.
type Gateway interface {
	CreateInvoice(ctx context.Context, params CreateInvoiceParams) (*Invoice, error)
	CheckPayment(ctx context.Context, invoiceID string) (*CheckResult, error)
}
