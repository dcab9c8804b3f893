package http

import (
	"github.com/gin-gonic/gin"

	"bilig/internal/infrastructure/ratelimit"
	"bilig/internal/interfaces/http/middleware"
)

// authRateLimit throttles credential endpoints per client IP.
var authRateLimit = ratelimit.Config{
	RequestsPerMinute: 10,
	RequestsPerHour:   100,
}

// callbackRateLimit bounds the public webhook endpoint. Legitimate provider
// retries stay far below this.
var callbackRateLimit = ratelimit.Config{
	RequestsPerMinute: 120,
	RequestsPerHour:   2000,
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.Language())

	r.engine.GET("/health", healthCheck)

	api := r.engine.Group("/api/v1")

	r.setupAuthRoutes(api)
	r.setupCourseRoutes(api)
	r.setupOrderRoutes(api)
	r.setupPaymentRoutes(api)
	r.setupAdminRoutes(api)
}

func (r *Router) setupAuthRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		limited := middleware.RateLimit(r.rateLimiter, "auth", authRateLimit, r.logger)
		authGroup.POST("/register", limited, r.authHandler.Register)
		authGroup.POST("/login", limited, r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)

		authGroup.GET("/google/url", limited, r.authHandler.GoogleAuthURL)
		authGroup.GET("/google/callback", r.authHandler.GoogleCallback)

		authGroup.GET("/profile", r.authMiddleware.RequireAuth(), r.authHandler.Profile)
	}
}

func (r *Router) setupCourseRoutes(api *gin.RouterGroup) {
	courses := api.Group("/courses")
	{
		// Catalog and detail views are public; entitled callers get video
		// assets on top, so auth is optional.
		courses.GET("", r.authMiddleware.OptionalAuth(), r.courseHandler.List)
		courses.GET("/:course_id", r.authMiddleware.OptionalAuth(), r.courseHandler.Get)
		courses.GET("/:course_id/access", r.authMiddleware.OptionalAuth(), r.accessHandler.CheckAccess)
		courses.GET("/:course_id/lessons/:lesson_id/watch", r.authMiddleware.RequireAuth(), r.courseHandler.WatchLesson)
		courses.POST("/:course_id/lessons/:lesson_id/complete", r.authMiddleware.RequireAuth(), r.courseHandler.CompleteLesson)
	}

	me := api.Group("/me", r.authMiddleware.RequireAuth())
	{
		me.GET("/entitlements", r.accessHandler.MyEntitlements)
	}
}

func (r *Router) setupOrderRoutes(api *gin.RouterGroup) {
	orders := api.Group("/orders", r.authMiddleware.RequireAuth())
	{
		orders.POST("", r.orderHandler.Checkout)
		orders.GET("", r.orderHandler.List)
		orders.GET("/:order_no", r.orderHandler.Get)
		orders.POST("/:order_no/reconcile", r.orderHandler.Reconcile)
	}
}

func (r *Router) setupPaymentRoutes(api *gin.RouterGroup) {
	payments := api.Group("/payments")
	{
		payments.POST("/qpay/callback",
			middleware.RateLimit(r.rateLimiter, "qpay_callback", callbackRateLimit, r.logger),
			r.paymentHandler.QPayCallback)
		payments.GET("/qpay/callback",
			middleware.RateLimit(r.rateLimiter, "qpay_callback", callbackRateLimit, r.logger),
			r.paymentHandler.QPayCallback)
	}
}

func (r *Router) setupAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin", r.authMiddleware.RequireAuth(), middleware.AdminOnly())
	{
		admin.POST("/courses", r.adminCourseHandler.Create)
		admin.PUT("/courses/:course_id", r.adminCourseHandler.Update)
		admin.PUT("/courses/:course_id/status", r.adminCourseHandler.UpdateStatus)
		admin.DELETE("/courses/:course_id", r.adminCourseHandler.Delete)
		admin.POST("/courses/:course_id/lessons", r.adminCourseHandler.AddLesson)
		admin.DELETE("/courses/:course_id/lessons/:lesson_id", r.adminCourseHandler.RemoveLesson)

		admin.POST("/entitlements", r.adminEntitlementHandler.Grant)
		admin.POST("/entitlements/revoke", r.adminEntitlementHandler.Revoke)
		admin.GET("/entitlements", r.adminEntitlementHandler.List)
		admin.POST("/entitlements/sweep", r.adminEntitlementHandler.Sweep)
		admin.POST("/entitlements/cleanup", r.adminEntitlementHandler.CleanupOrphans)

		admin.GET("/orders", r.adminOrderHandler.List)
		admin.GET("/orders/:order_no", r.adminOrderHandler.Get)
		admin.PUT("/orders/:order_no/status", r.adminOrderHandler.OverrideStatus)
		admin.POST("/orders/:order_no/reconcile", r.adminOrderHandler.Reconcile)

		admin.GET("/users", r.adminUserHandler.List)
		admin.GET("/users/:user_id/entitlements", r.adminEntitlementHandler.ListForUser)
		admin.POST("/users/bulk-delete", r.adminUserHandler.BulkDelete)
	}
}
