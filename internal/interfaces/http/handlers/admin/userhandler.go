package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bilig/internal/application/user/usecases"
	"bilig/internal/domain/user"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

// Use case interfaces for UserHandler - enables unit testing with mocks.

type listUsersUseCase interface {
	Execute(ctx context.Context, offset, limit int) ([]*user.User, int64, error)
}

type bulkDeleteUsersUseCase interface {
	Execute(ctx context.Context, userIDs []uint, requesterID uint) (*usecases.BulkDeleteResult, error)
}

// UserHandler serves the account back office.
type UserHandler struct {
	listUC       listUsersUseCase
	bulkDeleteUC bulkDeleteUsersUseCase
	logger       logger.Interface
}

func NewUserHandler(listUC listUsersUseCase, bulkDeleteUC bulkDeleteUsersUseCase, logger logger.Interface) *UserHandler {
	return &UserHandler{
		listUC:       listUC,
		bulkDeleteUC: bulkDeleteUC,
		logger:       logger,
	}
}

// AdminUserResponse is the back-office view of an account.
type AdminUserResponse struct {
	ID        uint      `json:"id"`
	SID       string    `json:"sid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *UserHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	users, total, err := h.listUC.Execute(c.Request.Context(), pagination.Offset(), pagination.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]*AdminUserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, &AdminUserResponse{
			ID:        u.ID(),
			SID:       u.SID(),
			Email:     u.Email().String(),
			Name:      u.Name(),
			Role:      u.Role().String(),
			Status:    u.Status().String(),
			CreatedAt: u.CreatedAt(),
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "",
		utils.NewListResponse(responses, total, pagination.Page, pagination.PageSize))
}

// BulkDeleteRequest names the accounts to delete.
type BulkDeleteRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
}

// BulkDelete soft-deletes accounts and drops their access records. The
// requesting admin can never delete itself.
func (h *UserHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	adminID, ok := adminUserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	result, err := h.bulkDeleteUC.Execute(c.Request.Context(), req.UserIDs, adminID)
	if err != nil {
		h.logger.Warnw("bulk user deletion failed", "error", err, "admin_id", adminID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "users deleted", result)
}
