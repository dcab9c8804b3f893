package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bilig/internal/application/access"
	entdto "bilig/internal/application/entitlement/dto"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

type userEntitlementsUseCase interface {
	Execute(ctx context.Context, userID uint, activeOnly bool) ([]*entdto.EntitlementResponse, error)
}

type checkAccessUseCase interface {
	Execute(ctx context.Context, userID uint, courseSID string) (*access.CheckResult, error)
}

// AccessHandler serves the account's own course access records.
type AccessHandler struct {
	entitlementsUC userEntitlementsUseCase
	checkAccessUC  checkAccessUseCase
	logger         logger.Interface
}

func NewAccessHandler(entitlementsUC userEntitlementsUseCase, checkAccessUC checkAccessUseCase, logger logger.Interface) *AccessHandler {
	return &AccessHandler{
		entitlementsUC: entitlementsUC,
		checkAccessUC:  checkAccessUC,
		logger:         logger,
	}
}

// MyEntitlements lists the account's entitlements. By default only
// currently active ones; ?all=true includes expired and revoked records.
func (h *AccessHandler) MyEntitlements(c *gin.Context) {
	userID := requesterID(c)
	if userID == 0 {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	activeOnly := c.Query("all") != "true"
	entitlements, err := h.entitlementsUC.Execute(c.Request.Context(), userID, activeOnly)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"entitlements": entitlements})
}

// CheckAccess reports whether the caller may open the course, and which
// rule granted it. Anonymous callers get a free-course-only answer.
func (h *AccessHandler) CheckAccess(c *gin.Context) {
	result, err := h.checkAccessUC.Execute(c.Request.Context(), requesterID(c), c.Param("course_id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
