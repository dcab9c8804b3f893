package handlers

import (
	"context"

	paymentdto "bilig/internal/application/payment/dto"
)

// Use case interface for PaymentHandler - enables unit testing with mocks.

type handleCallbackUseCase interface {
	Execute(ctx context.Context, request paymentdto.CallbackRequest) (*paymentdto.CallbackResult, error)
}
