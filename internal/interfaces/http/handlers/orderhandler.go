package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderdto "bilig/internal/application/order/dto"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

// OrderHandler serves checkout and the account's own orders.
type OrderHandler struct {
	createOrderUC createOrderUseCase
	getOrderUC    getOrderUseCase
	listOrdersUC  listUserOrdersUseCase
	reconcileUC   reconcileOrderUseCase
	logger        logger.Interface
}

func NewOrderHandler(
	createOrderUC createOrderUseCase,
	getOrderUC getOrderUseCase,
	listOrdersUC listUserOrdersUseCase,
	reconcileUC reconcileOrderUseCase,
	logger logger.Interface,
) *OrderHandler {
	return &OrderHandler{
		createOrderUC: createOrderUC,
		getOrderUC:    getOrderUC,
		listOrdersUC:  listOrdersUC,
		reconcileUC:   reconcileUC,
		logger:        logger,
	}
}

// Checkout creates a pending order and its payment invoice.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := requesterID(c)
	if userID == 0 {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	var req orderdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	req.UserID = userID

	checkout, err := h.createOrderUC.Execute(c.Request.Context(), req)
	if err != nil {
		h.logger.Warnw("checkout failed", "error", err, "user_id", userID, "course_id", req.CourseID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "order created", checkout)
}

// Get returns one of the account's own orders.
func (h *OrderHandler) Get(c *gin.Context) {
	userID := requesterID(c)
	if userID == 0 {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	order, err := h.getOrderUC.Execute(c.Request.Context(), c.Param("order_no"), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", order)
}

// List returns the account's orders, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	userID := requesterID(c)
	if userID == 0 {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	pagination := utils.ParsePagination(c)
	orders, total, err := h.listOrdersUC.Execute(c.Request.Context(), userID, pagination.Offset(), pagination.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "",
		utils.NewListResponse(orders, total, pagination.Page, pagination.PageSize))
}

// Reconcile asks the payment provider for the order's settled amount and
// applies the result. The ownership check runs first so order numbers do
// not leak across accounts.
func (h *OrderHandler) Reconcile(c *gin.Context) {
	userID := requesterID(c)
	if userID == 0 {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	orderNo := c.Param("order_no")
	if _, err := h.getOrderUC.Execute(c.Request.Context(), orderNo, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.reconcileUC.Execute(c.Request.Context(), orderNo)
	if err != nil {
		h.logger.Errorw("order reconciliation failed", "error", err, "order_no", orderNo)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
