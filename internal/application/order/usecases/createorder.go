// Package usecases holds the order application services.
package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/order/dto"
	"bilig/internal/application/payment"
	"bilig/internal/domain/course"
	"bilig/internal/domain/order"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

// CreateOrderUseCase starts a checkout: it opens a pending order and raises
// a provider invoice for it. A pending order already open for the same
// (user, course) pair is reused so retried checkouts do not stack.
type CreateOrderUseCase struct {
	orderRepo  order.Repository
	courseRepo course.Repository
	gateway    payment.Gateway
	logger     logger.Interface
}

// NewCreateOrderUseCase creates a new create order use case
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	courseRepo course.Repository,
	gateway payment.Gateway,
	logger logger.Interface,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:  orderRepo,
		courseRepo: courseRepo,
		gateway:    gateway,
		logger:     logger,
	}
}

// Execute executes the create order use case
func (uc *CreateOrderUseCase) Execute(ctx context.Context, request dto.CreateOrderRequest) (*dto.CheckoutResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, err
	}

	c, err := uc.courseRepo.GetByID(ctx, request.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("course not found")
	}
	if c.IsFree() {
		return nil, errors.NewValidationError("free courses do not require checkout")
	}
	if !c.IsPurchasable() {
		uc.logger.Warnw("checkout attempted for non-purchasable course",
			"course_id", c.ID(),
			"course_status", c.Status().String(),
		)
		return nil, errors.NewValidationError("course is not purchasable")
	}

	existing, err := uc.orderRepo.GetPendingByUserAndCourse(ctx, request.UserID, request.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending orders: %w", err)
	}
	if existing != nil && existing.InvoiceID() != nil && existing.Amount().Equals(c.Price()) {
		uc.logger.Infow("reusing pending order for checkout",
			"order_no", existing.OrderNo(),
			"user_id", request.UserID,
			"course_id", request.CourseID,
		)
		return &dto.CheckoutResponse{
			Order:     dto.ToOrderResponse(existing),
			InvoiceID: *existing.InvoiceID(),
		}, nil
	}
	if existing != nil {
		// The course was re-priced under the open order; close it and start over.
		if err := existing.Cancel(); err == nil {
			_ = uc.orderRepo.Update(ctx, existing)
		}
	}

	o, err := order.NewOrder(request.UserID, request.CourseID, c.Price(), order.PaymentMethodQPay)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if err := uc.orderRepo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	invoice, err := uc.gateway.CreateInvoice(ctx, payment.CreateInvoiceParams{
		OrderNo:     o.OrderNo(),
		Amount:      o.Amount().Amount(),
		Currency:    o.Amount().Currency(),
		Description: c.Title().In("mn"),
		ReceiverSID: fmt.Sprintf("%d", request.UserID),
	})
	if err != nil {
		// The pending order stays; a retried checkout reuses it once the
		// provider is reachable again.
		uc.logger.Errorw("failed to create invoice", "error", err, "order_no", o.OrderNo())
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	if err := o.SetInvoiceID(invoice.InvoiceID); err != nil {
		return nil, fmt.Errorf("failed to attach invoice: %w", err)
	}
	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	uc.logger.Infow("checkout started",
		"order_no", o.OrderNo(),
		"user_id", request.UserID,
		"course_id", request.CourseID,
		"amount", o.Amount().Amount(),
		"invoice_id", invoice.InvoiceID,
	)

	return &dto.CheckoutResponse{
		Order:     dto.ToOrderResponse(o),
		InvoiceID: invoice.InvoiceID,
		QRText:    invoice.QRText,
		QRImage:   invoice.QRImage,
		ShortURL:  invoice.ShortURL,
		DeepLinks: invoice.DeepLinks,
	}, nil
}
