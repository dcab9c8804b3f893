package migration

import (
	"bilig/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persistence model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.CourseModel{},
		&models.LessonModel{},
		&models.OrderModel{},
		&models.EntitlementModel{},
		&models.EnrollmentModel{},
	}
}
