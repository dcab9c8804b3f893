package usecases

import (
	"context"
	"fmt"

	entdto "bilig/internal/application/entitlement/dto"
	entusecases "bilig/internal/application/entitlement/usecases"
	"bilig/internal/application/payment"
	"bilig/internal/application/payment/dto"
	"bilig/internal/domain/entitlement"
	"bilig/internal/domain/order"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// ReconcileOrderUseCase re-runs the authoritative payment check for one
// order. Used by the back office when a callback was missed and by support
// when a buyer reports a paid-but-locked course.
type ReconcileOrderUseCase struct {
	reconciler
	grantAccess *entusecases.GrantAccessUseCase
}

// NewReconcileOrderUseCase creates a new reconcile order use case
func NewReconcileOrderUseCase(
	orderRepo order.Repository,
	gateway payment.Gateway,
	grantAccess *entusecases.GrantAccessUseCase,
	logger logger.Interface,
) *ReconcileOrderUseCase {
	return &ReconcileOrderUseCase{
		reconciler: reconciler{
			orderRepo: orderRepo,
			gateway:   gateway,
			logger:    logger,
		},
		grantAccess: grantAccess,
	}
}

// Execute reconciles the order identified by its order number.
func (uc *ReconcileOrderUseCase) Execute(ctx context.Context, orderNo string) (*dto.ReconcileResult, error) {
	if orderNo == "" {
		return nil, errors.NewValidationError("order number is required")
	}

	o, err := uc.orderRepo.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if o == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderNo))
	}

	outcome, err := uc.settle(ctx, o)
	if err != nil {
		return nil, err
	}

	if outcome.settled {
		orderID := o.ID()
		if _, err := uc.grantAccess.Execute(ctx, entdto.GrantAccessRequest{
			UserID:     o.UserID(),
			CourseID:   o.CourseID(),
			AccessType: entitlement.AccessTypePurchase.String(),
			OrderID:    &orderID,
		}); err != nil {
			return nil, fmt.Errorf("order settled but access grant failed: %w", err)
		}
	}

	return &dto.ReconcileResult{
		OrderNo:     o.OrderNo(),
		Settled:     outcome.settled,
		AlreadyPaid: outcome.alreadyPaid,
		OrderStatus: o.Status().String(),
		PaidAmount:  outcome.paidAmount,
	}, nil
}
