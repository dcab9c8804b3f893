package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	orderdto "bilig/internal/application/order/dto"
	paymentdto "bilig/internal/application/payment/dto"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

// Use case interfaces for OrderHandler - enables unit testing with mocks.

type listOrdersUseCase interface {
	Execute(ctx context.Context, status string, offset, limit int) ([]*orderdto.OrderResponse, int64, error)
}

type getOrderUseCase interface {
	Execute(ctx context.Context, orderNo string, requesterID uint) (*orderdto.OrderResponse, error)
}

type overrideOrderStatusUseCase interface {
	Execute(ctx context.Context, request orderdto.OverrideStatusRequest) (*orderdto.OrderResponse, error)
}

type reconcileOrderUseCase interface {
	Execute(ctx context.Context, orderNo string) (*paymentdto.ReconcileResult, error)
}

// OrderHandler serves the order back office.
type OrderHandler struct {
	listUC      listOrdersUseCase
	getUC       getOrderUseCase
	overrideUC  overrideOrderStatusUseCase
	reconcileUC reconcileOrderUseCase
	logger      logger.Interface
}

func NewOrderHandler(
	listUC listOrdersUseCase,
	getUC getOrderUseCase,
	overrideUC overrideOrderStatusUseCase,
	reconcileUC reconcileOrderUseCase,
	logger logger.Interface,
) *OrderHandler {
	return &OrderHandler{
		listUC:      listUC,
		getUC:       getUC,
		overrideUC:  overrideUC,
		reconcileUC: reconcileUC,
		logger:      logger,
	}
}

// List returns orders across all accounts, optionally filtered by status.
func (h *OrderHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	orders, total, err := h.listUC.Execute(c.Request.Context(), c.Query("status"), pagination.Offset(), pagination.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "",
		utils.NewListResponse(orders, total, pagination.Page, pagination.PageSize))
}

// Get returns any order; admins skip the ownership check.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.getUC.Execute(c.Request.Context(), c.Param("order_no"), 0)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", order)
}

// OverrideStatus corrects an order status after a support case. The
// acting admin and the stated reason go into the order's audit log.
func (h *OrderHandler) OverrideStatus(c *gin.Context) {
	var req orderdto.OverrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	req.OrderNo = c.Param("order_no")

	adminID, ok := adminUserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	req.AdminID = adminID

	order, err := h.overrideUC.Execute(c.Request.Context(), req)
	if err != nil {
		h.logger.Warnw("order status override failed", "error", err, "order_no", req.OrderNo)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "order status updated", order)
}

// Reconcile re-checks an order against the payment provider.
func (h *OrderHandler) Reconcile(c *gin.Context) {
	result, err := h.reconcileUC.Execute(c.Request.Context(), c.Param("order_no"))
	if err != nil {
		h.logger.Errorw("order reconciliation failed", "error", err, "order_no", c.Param("order_no"))
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
