package usecases

import (
	"context"
	"fmt"

	"bilig/internal/application/order/dto"
	"bilig/internal/domain/order"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// ListOrdersUseCase lists orders for the back office, optionally filtered
// by status.
type ListOrdersUseCase struct {
	orderRepo order.Repository
	logger    logger.Interface
}

// NewListOrdersUseCase creates a new list orders use case
func NewListOrdersUseCase(orderRepo order.Repository, logger logger.Interface) *ListOrdersUseCase {
	return &ListOrdersUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Execute executes the list orders use case
func (uc *ListOrdersUseCase) Execute(ctx context.Context, status string, offset, limit int) ([]*dto.OrderResponse, int64, error) {
	var statusFilter order.Status
	if status != "" {
		statusFilter = order.Status(status)
		if !statusFilter.IsValid() {
			return nil, 0, errors.NewValidationError(fmt.Sprintf("invalid order status: %s", status))
		}
	}

	orders, total, err := uc.orderRepo.List(ctx, statusFilter, offset, limit)
	if err != nil {
		uc.logger.Errorw("failed to list orders", "error", err)
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	responses := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, dto.ToOrderResponse(o))
	}
	return responses, total, nil
}

// ListUserOrdersUseCase lists one account's own orders.
type ListUserOrdersUseCase struct {
	orderRepo order.Repository
	logger    logger.Interface
}

// NewListUserOrdersUseCase creates a new list user orders use case
func NewListUserOrdersUseCase(orderRepo order.Repository, logger logger.Interface) *ListUserOrdersUseCase {
	return &ListUserOrdersUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Execute executes the list user orders use case
func (uc *ListUserOrdersUseCase) Execute(ctx context.Context, userID uint, offset, limit int) ([]*dto.OrderResponse, int64, error) {
	if userID == 0 {
		return nil, 0, errors.NewValidationError("user ID is required")
	}

	orders, total, err := uc.orderRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		uc.logger.Errorw("failed to list user orders", "error", err, "user_id", userID)
		return nil, 0, fmt.Errorf("failed to list user orders: %w", err)
	}

	responses := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, dto.ToOrderResponse(o))
	}
	return responses, total, nil
}
