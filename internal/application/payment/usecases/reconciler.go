// Package usecases holds the payment application services.
package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/payment"
	"bilig/internal/domain/order"
	"bilig/internal/shared/logger"
)

// settleOutcome is the result of reconciling one order against the provider.
type settleOutcome struct {
	settled     bool
	alreadyPaid bool
	paidAmount  int64
}

// reconciler verifies an order against the provider's authoritative payment
// check and settles it when the paid amount covers the order amount.
// Webhook payloads never carry authority: whatever the callback claims, the
// decision is made on the check endpoint's response, and that raw response
// is recorded on the order for audit.
type reconciler struct {
	orderRepo order.Repository
	gateway   payment.Gateway
	logger    logger.Interface
}

func (r *reconciler) settle(ctx context.Context, o *order.Order) (*settleOutcome, error) {
	if o.Status().IsPaid() {
		return &settleOutcome{alreadyPaid: true}, nil
	}
	if o.InvoiceID() == nil {
		return nil, fmt.Errorf("order %s has no invoice", o.OrderNo())
	}

	check, err := r.gateway.CheckPayment(ctx, *o.InvoiceID())
	if err != nil {
		return nil, fmt.Errorf("payment check failed for order %s: %w", o.OrderNo(), err)
	}

	o.RecordVerification(check.Raw)

	if !o.Amount().Covers(check.PaidAmount) {
		// Not (fully) paid yet. Keep the order pending so a later callback
		// or a manual reconciliation can settle it.
		if err := r.orderRepo.Update(ctx, o); err != nil {
			return nil, fmt.Errorf("failed to persist verification for order %s: %w", o.OrderNo(), err)
		}
		r.logger.Infow("payment check found order unpaid",
			"order_no", o.OrderNo(),
			"expected_amount", o.Amount().Amount(),
			"paid_amount", check.PaidAmount,
			"payment_count", check.Count,
		)
		return &settleOutcome{paidAmount: check.PaidAmount}, nil
	}

	transactionID := ""
	if len(check.Payments) > 0 {
		transactionID = check.Payments[0].PaymentID
	}
	if err := o.MarkAsPaid(transactionID); err != nil {
		return nil, fmt.Errorf("failed to mark order %s as paid: %w", o.OrderNo(), err)
	}
	if err := r.orderRepo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist paid order %s: %w", o.OrderNo(), err)
	}

	r.logger.Infow("order settled",
		"order_no", o.OrderNo(),
		"transaction_id", transactionID,
		"paid_amount", check.PaidAmount,
	)
	return &settleOutcome{settled: true, paidAmount: check.PaidAmount}, nil
}
