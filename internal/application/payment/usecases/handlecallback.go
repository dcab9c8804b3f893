package usecases

import (
	"context"
	"encoding/json"

	entdto "bilig/internal/application/entitlement/dto"
	entusecases "bilig/internal/application/entitlement/usecases"
	"bilig/internal/application/payment"
	"bilig/internal/application/payment/dto"
	"bilig/internal/domain/entitlement"
	"bilig/internal/domain/order"
	"bilig/internal/shared/logger"
)

// invoiceIDKeys are the payload and query fields the provider has been seen
// carrying the invoice identifier in, across callback format revisions.
var invoiceIDKeys = []string{"invoice_id", "object_id", "qpay_invoice_id", "payment_id"}

// ReceiptSender delivers a payment receipt out of band. Delivery failures
// never affect reconciliation.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, userID uint, orderNo string, amount int64, currency string) error
}

// HandleCallbackUseCase processes one webhook delivery from the payment
// provider. Deliveries are unauthenticated, may repeat, and may lie; the
// use case treats them purely as a hint to run an authoritative check.
type HandleCallbackUseCase struct {
	reconciler
	grantAccess   *entusecases.GrantAccessUseCase
	receiptSender ReceiptSender // optional
}

// NewHandleCallbackUseCase creates a new handle callback use case
func NewHandleCallbackUseCase(
	orderRepo order.Repository,
	gateway payment.Gateway,
	grantAccess *entusecases.GrantAccessUseCase,
	receiptSender ReceiptSender,
	logger logger.Interface,
) *HandleCallbackUseCase {
	return &HandleCallbackUseCase{
		reconciler: reconciler{
			orderRepo: orderRepo,
			gateway:   gateway,
			logger:    logger,
		},
		grantAccess:   grantAccess,
		receiptSender: receiptSender,
	}
}

// Execute reconciles the order the callback points at. It never returns an
// error for malformed or unmatched deliveries: the handler must acknowledge
// every delivery, and an error here would only provoke provider retries for
// payloads that will never match. Failures worth retrying (provider check
// unreachable, persistence failure) are returned so the order stays pending.
func (uc *HandleCallbackUseCase) Execute(ctx context.Context, request dto.CallbackRequest) (*dto.CallbackResult, error) {
	invoiceID := extractInvoiceID(request)
	if invoiceID == "" {
		uc.logger.Warnw("payment callback carries no invoice reference", "raw_body", request.RawBody)
		return &dto.CallbackResult{FailureNote: "no invoice reference"}, nil
	}

	o, err := uc.orderRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		uc.logger.Errorw("failed to look up order for callback", "error", err, "invoice_id", invoiceID)
		return nil, err
	}
	if o == nil {
		uc.logger.Warnw("payment callback for unknown invoice", "invoice_id", invoiceID)
		return &dto.CallbackResult{InvoiceID: invoiceID, FailureNote: "unknown invoice"}, nil
	}

	// Record the delivery before anything else so the audit trail survives
	// whatever happens during verification.
	o.RecordCallback(request.RawBody)
	if err := uc.orderRepo.Update(ctx, o); err != nil {
		uc.logger.Errorw("failed to record callback", "error", err, "order_no", o.OrderNo())
		return nil, err
	}

	result := &dto.CallbackResult{
		OrderFound: true,
		InvoiceID:  invoiceID,
		OrderNo:    o.OrderNo(),
	}

	outcome, err := uc.settle(ctx, o)
	if err != nil {
		return nil, err
	}
	result.Settled = outcome.settled
	result.AlreadyPaid = outcome.alreadyPaid
	result.PaidAmount = outcome.paidAmount
	result.OrderStatus = o.Status().String()

	if !outcome.settled {
		return result, nil
	}

	orderID := o.ID()
	_, err = uc.grantAccess.Execute(ctx, entdto.GrantAccessRequest{
		UserID:     o.UserID(),
		CourseID:   o.CourseID(),
		AccessType: entitlement.AccessTypePurchase.String(),
		OrderID:    &orderID,
	})
	if err != nil {
		// The order is already settled; access can be re-granted by a manual
		// reconciliation, so surface the failure without undoing the payment.
		uc.logger.Errorw("failed to grant access after settlement",
			"error", err,
			"order_no", o.OrderNo(),
			"user_id", o.UserID(),
			"course_id", o.CourseID(),
		)
		return result, err
	}
	result.AccessGiven = true

	if uc.receiptSender != nil {
		if err := uc.receiptSender.SendReceipt(ctx, o.UserID(), o.OrderNo(), o.Amount().Amount(), o.Amount().Currency()); err != nil {
			uc.logger.Warnw("failed to send receipt", "error", err, "order_no", o.OrderNo())
		}
	}

	return result, nil
}

// extractInvoiceID pulls the invoice identifier out of a callback, trying
// the JSON body first and the query parameters second.
func extractInvoiceID(request dto.CallbackRequest) string {
	if request.RawBody != "" {
		var body map[string]any
		if err := json.Unmarshal([]byte(request.RawBody), &body); err == nil {
			for _, key := range invoiceIDKeys {
				if v, ok := body[key].(string); ok && v != "" {
					return v
				}
			}
		}
	}
	for _, key := range invoiceIDKeys {
		if v := request.Params[key]; v != "" {
			return v
		}
	}
	return ""
}
