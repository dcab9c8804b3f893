package models

import (
	"time"

	"bilig/internal/shared/constants"
)

// EnrollmentModel represents the database persistence model for lesson
// progress. CompletedLessons is a JSON array of lesson SIDs.
type EnrollmentModel struct {
	ID               uint   `gorm:"primarykey"`
	UserID           uint   `gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID         uint   `gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CompletedLessons string `gorm:"type:text"`
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (EnrollmentModel) TableName() string {
	return constants.TableEnrollments
}
