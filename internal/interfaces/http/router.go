// Package http assembles the HTTP API: repositories, use cases, handlers
// and middleware wired onto a gin engine.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"bilig/internal/application/access"
	courseuc "bilig/internal/application/course/usecases"
	entuc "bilig/internal/application/entitlement/usecases"
	"bilig/internal/application/identity"
	orderuc "bilig/internal/application/order/usecases"
	paymentuc "bilig/internal/application/payment/usecases"
	useruc "bilig/internal/application/user/usecases"
	"bilig/internal/infrastructure/auth"
	"bilig/internal/infrastructure/config"
	"bilig/internal/infrastructure/email"
	"bilig/internal/infrastructure/markdown"
	"bilig/internal/infrastructure/payment"
	"bilig/internal/infrastructure/ratelimit"
	"bilig/internal/infrastructure/repository"
	"bilig/internal/interfaces/http/handlers"
	adminhandlers "bilig/internal/interfaces/http/handlers/admin"
	"bilig/internal/interfaces/http/middleware"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

// Router holds the gin engine and everything route registration needs.
type Router struct {
	engine         *gin.Engine
	cfg            *config.Config
	logger         logger.Interface
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    ratelimit.RateLimiter

	authHandler    *handlers.AuthHandler
	courseHandler  *handlers.CourseHandler
	orderHandler   *handlers.OrderHandler
	paymentHandler *handlers.PaymentHandler
	accessHandler  *handlers.AccessHandler

	adminCourseHandler      *adminhandlers.CourseHandler
	adminEntitlementHandler *adminhandlers.EntitlementHandler
	adminOrderHandler       *adminhandlers.OrderHandler
	adminUserHandler        *adminhandlers.UserHandler

	// Kept for the scheduler wiring in the CLI.
	SweepExpiredUC   *entuc.SweepExpiredUseCase
	CleanupOrphansUC *entuc.CleanupOrphansUseCase
}

// NewRouter wires repositories, services, use cases and handlers.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	userRepo := repository.NewUserRepository(db, log)
	courseRepo := repository.NewCourseRepository(db, log)
	orderRepo := repository.NewOrderRepository(db, log)
	entitlementRepo := repository.NewEntitlementRepository(db, log)
	enrollmentRepo := repository.NewEnrollmentRepository(db, log)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	googleClient := auth.NewGoogleOAuthClient(auth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.Google.ClientID,
		ClientSecret: cfg.OAuth.Google.ClientSecret,
		RedirectURL:  cfg.OAuth.Google.RedirectURL,
	})
	emailService := email.NewSMTPEmailService(&cfg.Email, userRepo, log)
	qpayClient := payment.NewQPayClient(&cfg.QPay, log)
	renderer := markdown.NewGoldmarkRenderer()
	accessFacade := access.NewFacade(entitlementRepo, enrollmentRepo, courseRepo, log)
	checkAccessUC := access.NewCheckCourseAccessUseCase(courseRepo, accessFacade, log)
	resolver := identity.NewResolver(userRepo, log)

	registerUC := useruc.NewRegisterUseCase(userRepo, hasher, jwtService, emailService, log)
	loginUC := useruc.NewLoginUseCase(userRepo, hasher, jwtService, log)
	refreshUC := useruc.NewRefreshTokenUseCase(jwtService, log)
	googleUC := useruc.NewGoogleLoginUseCase(userRepo, googleClient, jwtService, log)
	profileUC := useruc.NewGetProfileUseCase(userRepo, log)
	listUsersUC := useruc.NewListUsersUseCase(userRepo, log)
	bulkDeleteUC := useruc.NewBulkDeleteUsersUseCase(userRepo, entitlementRepo, enrollmentRepo, log)

	catalogUC := courseuc.NewCatalogUseCase(courseRepo, accessFacade, renderer, log)
	completeLessonUC := courseuc.NewCompleteLessonUseCase(courseRepo, enrollmentRepo, accessFacade, log)
	manageCourseUC := courseuc.NewManageCourseUseCase(courseRepo, log)

	grantAccessUC := entuc.NewGrantAccessUseCase(entitlementRepo, log)
	revokeAccessUC := entuc.NewRevokeAccessUseCase(entitlementRepo, log)
	listEntitlementsUC := entuc.NewListEntitlementsUseCase(entitlementRepo, log)
	userEntitlementsUC := entuc.NewGetUserEntitlementsUseCase(entitlementRepo, log)
	sweepExpiredUC := entuc.NewSweepExpiredUseCase(entitlementRepo, log)
	cleanupOrphansUC := entuc.NewCleanupOrphansUseCase(entitlementRepo, courseRepo, log)

	createOrderUC := orderuc.NewCreateOrderUseCase(orderRepo, courseRepo, qpayClient, log)
	getOrderUC := orderuc.NewGetOrderUseCase(orderRepo, log)
	listOrdersUC := orderuc.NewListOrdersUseCase(orderRepo, log)
	listUserOrdersUC := orderuc.NewListUserOrdersUseCase(orderRepo, log)
	overrideOrderUC := orderuc.NewOverrideOrderStatusUseCase(orderRepo, grantAccessUC, log)

	handleCallbackUC := paymentuc.NewHandleCallbackUseCase(orderRepo, qpayClient, grantAccessUC, emailService, log)
	reconcileOrderUC := paymentuc.NewReconcileOrderUseCase(orderRepo, qpayClient, grantAccessUC, log)

	return &Router{
		engine:         engine,
		cfg:            cfg,
		logger:         log,
		authMiddleware: middleware.NewAuthMiddleware(jwtService, resolver, log),
		rateLimiter:    ratelimit.NewRedisRateLimiter(redisClient),

		authHandler:    handlers.NewAuthHandler(registerUC, loginUC, refreshUC, googleUC, profileUC, log),
		courseHandler:  handlers.NewCourseHandler(catalogUC, completeLessonUC, log),
		orderHandler:   handlers.NewOrderHandler(createOrderUC, getOrderUC, listUserOrdersUC, reconcileOrderUC, log),
		paymentHandler: handlers.NewPaymentHandler(handleCallbackUC, log),
		accessHandler:  handlers.NewAccessHandler(userEntitlementsUC, checkAccessUC, log),

		adminCourseHandler: adminhandlers.NewCourseHandler(manageCourseUC, log),
		adminEntitlementHandler: adminhandlers.NewEntitlementHandler(
			grantAccessUC, revokeAccessUC, listEntitlementsUC, userEntitlementsUC,
			sweepExpiredUC, cleanupOrphansUC, resolver, log,
		),
		adminOrderHandler: adminhandlers.NewOrderHandler(listOrdersUC, getOrderUC, overrideOrderUC, reconcileOrderUC, log),
		adminUserHandler:  adminhandlers.NewUserHandler(listUsersUC, bulkDeleteUC, log),

		SweepExpiredUC:   sweepExpiredUC,
		CleanupOrphansUC: cleanupOrphansUC,
	}
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

func healthCheck(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "ok"})
}
