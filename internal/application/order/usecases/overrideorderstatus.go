package usecases

import (
	"context"
	"fmt"

	entdto "bilig/internal/application/entitlement/dto"
	entusecases "bilig/internal/application/entitlement/usecases"
	"bilig/internal/application/order/dto"
	"bilig/internal/domain/entitlement"
	"bilig/internal/domain/order"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// OverrideOrderStatusUseCase lets the back office correct an order whose
// real-world outcome the system missed (bank transfer settled offline,
// provider outage during checkout). The override goes through the same
// domain transitions as normal settlement, so ledger invariants hold:
// a paid order still cannot be cancelled, and marking paid grants access.
type OverrideOrderStatusUseCase struct {
	orderRepo   order.Repository
	grantAccess *entusecases.GrantAccessUseCase
	logger      logger.Interface
}

// NewOverrideOrderStatusUseCase creates a new override order status use case
func NewOverrideOrderStatusUseCase(
	orderRepo order.Repository,
	grantAccess *entusecases.GrantAccessUseCase,
	logger logger.Interface,
) *OverrideOrderStatusUseCase {
	return &OverrideOrderStatusUseCase{
		orderRepo:   orderRepo,
		grantAccess: grantAccess,
		logger:      logger,
	}
}

// Execute executes the override order status use case
func (uc *OverrideOrderStatusUseCase) Execute(ctx context.Context, request dto.OverrideStatusRequest) (*dto.OrderResponse, error) {
	if request.OrderNo == "" {
		return nil, errors.NewValidationError("order number is required")
	}
	target := order.Status(request.Status)
	if !target.IsValid() || target == order.StatusPending {
		return nil, errors.NewValidationError(fmt.Sprintf("cannot override order to status: %s", request.Status))
	}

	o, err := uc.orderRepo.GetByOrderNo(ctx, request.OrderNo)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if o == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", request.OrderNo))
	}

	switch target {
	case order.StatusPaid:
		err = o.MarkAsPaid(fmt.Sprintf("admin-override-%d", request.AdminID))
	case order.StatusFailed:
		err = o.MarkAsFailed()
	case order.StatusCancelled:
		err = o.Cancel()
	}
	if err != nil {
		uc.logger.Warnw("order status override rejected",
			"order_no", o.OrderNo(),
			"current_status", o.Status().String(),
			"target_status", request.Status,
			"error", err,
		)
		return nil, errors.NewConflictError(err.Error())
	}

	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	uc.logger.Infow("order status overridden",
		"order_no", o.OrderNo(),
		"status", o.Status().String(),
		"admin_id", request.AdminID,
		"reason", request.Reason,
	)

	if target == order.StatusPaid {
		orderID := o.ID()
		adminID := request.AdminID
		if _, err := uc.grantAccess.Execute(ctx, entdto.GrantAccessRequest{
			UserID:     o.UserID(),
			CourseID:   o.CourseID(),
			AccessType: entitlement.AccessTypePurchase.String(),
			OrderID:    &orderID,
			GrantedBy:  &adminID,
			Notes:      request.Reason,
		}); err != nil {
			return nil, fmt.Errorf("order overridden but access grant failed: %w", err)
		}
	}

	return dto.ToOrderResponse(o), nil
}
