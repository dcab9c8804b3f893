package admin

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	entdto "bilig/internal/application/entitlement/dto"
	"bilig/internal/domain/user"
	"bilig/internal/shared/constants"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

// EntitlementHandler serves the course access back office: manual grants,
// revocations and the maintenance sweeps.
type EntitlementHandler struct {
	grantUC   grantAccessUseCase
	revokeUC  revokeAccessUseCase
	listUC    listEntitlementsUseCase
	forUserUC userEntitlementsUseCase
	sweepUC   sweepExpiredUseCase
	cleanupUC cleanupOrphansUseCase
	resolver  accountResolver
	logger    logger.Interface
}

func NewEntitlementHandler(
	grantUC grantAccessUseCase,
	revokeUC revokeAccessUseCase,
	listUC listEntitlementsUseCase,
	forUserUC userEntitlementsUseCase,
	sweepUC sweepExpiredUseCase,
	cleanupUC cleanupOrphansUseCase,
	resolver accountResolver,
	logger logger.Interface,
) *EntitlementHandler {
	return &EntitlementHandler{
		grantUC:   grantUC,
		revokeUC:  revokeUC,
		listUC:    listUC,
		forUserUC: forUserUC,
		sweepUC:   sweepUC,
		cleanupUC: cleanupUC,
		resolver:  resolver,
		logger:    logger,
	}
}

// GrantRequest names the account and the course to grant. The account may
// be addressed by its canonical numeric ID or, for imported and legacy
// records, by an email; when both are given they must point at the same
// account.
type GrantRequest struct {
	UserID     uint    `json:"user_id"`
	UserEmail  string  `json:"user_email,omitempty"`
	CourseID   uint    `json:"course_id" binding:"required"`
	AccessType string  `json:"access_type" binding:"required"`
	ExpiresAt  *string `json:"expires_at,omitempty"`
	OrderID    *uint   `json:"order_id,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// Grant creates or refreshes a course access record.
func (h *EntitlementHandler) Grant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == 0 && req.UserEmail == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("user_id or user_email is required"))
		return
	}

	var idRef string
	if req.UserID != 0 {
		idRef = strconv.FormatUint(uint64(req.UserID), 10)
	}
	res, err := h.resolver.ResolveReference(c.Request.Context(), idRef, req.UserEmail)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			utils.ErrorResponseWithError(c, errors.NewNotFoundError("account not found"))
			return
		}
		h.logger.Errorw("failed to resolve account reference", "error", err, "user_id", req.UserID, "user_email", req.UserEmail)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if res.Inconsistent {
		utils.ErrorResponseWithError(c, errors.NewConflictError("account reference carries mismatching id and email"))
		return
	}

	grantReq := entdto.GrantAccessRequest{
		UserID:     res.UserID,
		CourseID:   req.CourseID,
		AccessType: req.AccessType,
		ExpiresAt:  req.ExpiresAt,
		OrderID:    req.OrderID,
		Notes:      req.Notes,
	}
	if adminID, ok := adminUserID(c); ok {
		grantReq.GrantedBy = &adminID
	}

	granted, err := h.grantUC.Execute(c.Request.Context(), grantReq)
	if err != nil {
		h.logger.Warnw("access grant failed", "error", err, "user_id", grantReq.UserID, "course_id", grantReq.CourseID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "access granted", granted)
}

// RevokeRequest names the user/course pair to revoke.
type RevokeRequest struct {
	UserID   uint `json:"user_id" binding:"required"`
	CourseID uint `json:"course_id" binding:"required"`
}

func (h *EntitlementHandler) Revoke(c *gin.Context) {
	var req RevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.revokeUC.Execute(c.Request.Context(), req.UserID, req.CourseID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "access revoked"
	if !result.Revoked {
		message = "no entitlement to revoke"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// List returns all entitlements, newest first.
func (h *EntitlementHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	entitlements, total, err := h.listUC.Execute(c.Request.Context(), pagination.Offset(), pagination.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "",
		utils.NewListResponse(entitlements, total, pagination.Page, pagination.PageSize))
}

// ListForUser returns one account's entitlements, including inactive ones.
func (h *EntitlementHandler) ListForUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil || userID == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid user ID"))
		return
	}

	entitlements, err := h.forUserUC.Execute(c.Request.Context(), uint(userID), false)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"entitlements": entitlements})
}

// Sweep corrects stored statuses of overdue entitlements. An optional
// user_id query parameter restricts the sweep to one account.
func (h *EntitlementHandler) Sweep(c *gin.Context) {
	var userID uint
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid user ID"))
			return
		}
		userID = uint(parsed)
	}

	result, err := h.sweepUC.Execute(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("expiry sweep failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "sweep completed", result)
}

// CleanupOrphans removes entitlements whose course no longer exists.
func (h *EntitlementHandler) CleanupOrphans(c *gin.Context) {
	result, err := h.cleanupUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("orphan cleanup failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "cleanup completed", result)
}

// adminUserID returns the authenticated admin's account ID.
func adminUserID(c *gin.Context) (uint, bool) {
	if v, exists := c.Get(constants.ContextKeyUserID); exists {
		if id, ok := v.(uint); ok {
			return id, true
		}
	}
	return 0, false
}
