package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"bilig/internal/application/user/usecases"
	"bilig/internal/shared/constants"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

const oauthStateCookie = "oauth_state"

// AuthHandler serves registration, login, token refresh, Google sign-in
// and the profile endpoint.
type AuthHandler struct {
	registerUC registerUseCase
	loginUC    loginUseCase
	refreshUC  refreshTokenUseCase
	googleUC   googleLoginUseCase
	profileUC  getProfileUseCase
	logger     logger.Interface
}

func NewAuthHandler(
	registerUC registerUseCase,
	loginUC loginUseCase,
	refreshUC refreshTokenUseCase,
	googleUC googleLoginUseCase,
	profileUC getProfileUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		refreshUC:  refreshUC,
		googleUC:   googleUC,
		profileUC:  profileUC,
		logger:     logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warnw("registration failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "registration successful", gin.H{
		"user":   ToUserResponse(result.User),
		"tokens": toTokenResponse(result.Tokens),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warnw("login failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", gin.H{
		"user":   ToUserResponse(result.User),
		"tokens": toTokenResponse(result.Tokens),
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.refreshUC.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid refresh token"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "token refreshed", toTokenResponse(tokens))
}

// GoogleAuthURL issues the consent screen URL. The anti-forgery state is
// kept in a short-lived cookie and checked again on the callback.
func (h *AuthHandler) GoogleAuthURL(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to create state"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"url": h.googleUC.AuthURL(state),
	})
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid oauth state"))
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	result, err := h.googleUC.Execute(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.logger.Warnw("google sign-in failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", gin.H{
		"user":   ToUserResponse(result.User),
		"tokens": toTokenResponse(result.Tokens),
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	sid := c.GetString(constants.ContextKeyUserSID)
	if sid == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	u, err := h.profileUC.Execute(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", ToUserResponse(u))
}

func toTokenResponse(t *usecases.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresIn:    t.ExpiresIn,
	}
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
