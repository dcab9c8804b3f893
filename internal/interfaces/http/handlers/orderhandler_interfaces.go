package handlers

import (
	"context"

	orderdto "bilig/internal/application/order/dto"
	paymentdto "bilig/internal/application/payment/dto"
)

// Use case interfaces for OrderHandler - enables unit testing with mocks.

type createOrderUseCase interface {
	Execute(ctx context.Context, request orderdto.CreateOrderRequest) (*orderdto.CheckoutResponse, error)
}

type getOrderUseCase interface {
	Execute(ctx context.Context, orderNo string, requesterID uint) (*orderdto.OrderResponse, error)
}

type listUserOrdersUseCase interface {
	Execute(ctx context.Context, userID uint, offset, limit int) ([]*orderdto.OrderResponse, int64, error)
}

type reconcileOrderUseCase interface {
	Execute(ctx context.Context, orderNo string) (*paymentdto.ReconcileResult, error)
}
