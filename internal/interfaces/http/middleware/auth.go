// Package middleware holds the gin middleware chain.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bilig/internal/application/identity"
	"bilig/internal/domain/user"
	"bilig/internal/infrastructure/auth"
	"bilig/internal/shared/constants"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

// AuthMiddleware verifies bearer tokens and resolves the account. Tokens
// carry the public SID; the numeric ID handlers key on comes from the
// identity resolver, so a deleted or suspended account fails here even
// with a live token.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	resolver   *identity.Resolver
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, resolver *identity.Resolver, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		resolver:   resolver,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
			c.Abort()
			return
		}

		res, err := m.resolver.ResolveBySID(c.Request.Context(), claims.UserSID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				utils.ErrorResponse(c, http.StatusUnauthorized, "account not found or inactive")
				c.Abort()
				return
			}
			m.logger.Errorw("failed to resolve token account", "user_sid", claims.UserSID, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to resolve account")
			c.Abort()
			return
		}
		if !res.Active() {
			utils.ErrorResponse(c, http.StatusUnauthorized, "account not found or inactive")
			c.Abort()
			return
		}

		setAuthContext(c, res)

		c.Next()
	}
}

// OptionalAuth resolves the account when a valid token is present and
// continues anonymously otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			c.Next()
			return
		}

		res, err := m.resolver.ResolveBySID(c.Request.Context(), claims.UserSID)
		if err == nil && res.Active() {
			setAuthContext(c, res)
		}

		c.Next()
	}
}

func setAuthContext(c *gin.Context, res *identity.Resolution) {
	c.Set(constants.ContextKeyUserID, res.UserID)
	c.Set(constants.ContextKeyUserSID, res.SID)
	c.Set(constants.ContextKeyEmail, res.Email)
	c.Set(constants.ContextKeyUserRole, res.Role.String())
}

// AdminOnly rejects requests whose resolved role is not admin. Must run
// after RequireAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyUserRole)
		if role != user.RoleAdmin.String() {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
