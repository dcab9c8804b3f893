package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/order/dto"
	"bilig/internal/domain/order"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// GetOrderUseCase fetches one order by its order number.
type GetOrderUseCase struct {
	orderRepo order.Repository
	logger    logger.Interface
}

// NewGetOrderUseCase creates a new get order use case
func NewGetOrderUseCase(orderRepo order.Repository, logger logger.Interface) *GetOrderUseCase {
	return &GetOrderUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Execute returns the order. When requesterID is non-zero the order must
// belong to that account; admins pass zero to skip the ownership check.
func (uc *GetOrderUseCase) Execute(ctx context.Context, orderNo string, requesterID uint) (*dto.OrderResponse, error) {
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
	if requesterID != 0 && o.UserID() != requesterID {
		// Not-found rather than forbidden: order numbers are guessable and
		// their existence should not leak across accounts.
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderNo))
	}

	return dto.ToOrderResponse(o), nil
}
