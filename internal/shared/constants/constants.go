// Package constants defines application-wide constant values.
package constants

// Environment names
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Gin context keys set by middleware
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserSID  = "user_sid"
	ContextKeyUserRole = "user_role"
	ContextKeyEmail    = "user_email"
)

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Supported content languages
const (
	LangMongolian = "mn"
	LangEnglish   = "en"
)

// Database table names
const (
	TableUsers        = "users"
	TableCourses      = "courses"
	TableLessons      = "lessons"
	TableOrders       = "orders"
	TableEntitlements = "entitlements"
	TableEnrollments  = "enrollments"
)
