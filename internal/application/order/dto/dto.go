// Package dto defines the request and response shapes of the order
// use cases.
package dto

import (
	"time"

	"bilig/internal/application/payment"
	"bilig/internal/domain/order"
)

// CreateOrderRequest starts a checkout for a course.
type CreateOrderRequest struct {
	UserID   uint `json:"-" validate:"required"`
	CourseID uint `json:"course_id" binding:"required" validate:"required"`
}

// OrderResponse is the API view of an order.
type OrderResponse struct {
	OrderNo       string     `json:"order_no"`
	UserID        uint       `json:"user_id"`
	CourseID      uint       `json:"course_id"`
	Amount        int64      `json:"amount"`
	Currency      string     `json:"currency"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	InvoiceID     *string    `json:"invoice_id,omitempty"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CheckoutResponse is the order plus everything the client needs to show
// the payment screen.
type CheckoutResponse struct {
	Order     *OrderResponse     `json:"order"`
	InvoiceID string             `json:"invoice_id"`
	QRText    string             `json:"qr_text,omitempty"`
	QRImage   string             `json:"qr_image,omitempty"`
	ShortURL  string             `json:"short_url,omitempty"`
	DeepLinks []payment.DeepLink `json:"deep_links,omitempty"`
}

// OverrideStatusRequest is an admin correction of an order status.
type OverrideStatusRequest struct {
	OrderNo string `json:"-"`
	Status  string `json:"status" binding:"required"`
	Reason  string `json:"reason"`
	AdminID uint   `json:"-"`
}

// ToOrderResponse maps an order to its API view.
func ToOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		OrderNo:       o.OrderNo(),
		UserID:        o.UserID(),
		CourseID:      o.CourseID(),
		Amount:        o.Amount().Amount(),
		Currency:      o.Amount().Currency(),
		PaymentMethod: o.PaymentMethod().String(),
		Status:        o.Status().String(),
		InvoiceID:     o.InvoiceID(),
		TransactionID: o.TransactionID(),
		PaidAt:        o.PaidAt(),
		CreatedAt:     o.CreatedAt(),
	}
}
