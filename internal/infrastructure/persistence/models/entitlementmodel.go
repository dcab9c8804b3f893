package models

import (
	"time"

	"bilig/internal/shared/constants"
)

// EntitlementModel represents the database persistence model for
// entitlements. The (UserID, CourseID) pair is unique: repeated grants
// update the row instead of inserting a second one.
type EntitlementModel struct {
	ID         uint   `gorm:"primarykey"`
	SID        string `gorm:"uniqueIndex;not null;size:32"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_entitlements_user_course"`
	CourseID   uint   `gorm:"not null;uniqueIndex:idx_entitlements_user_course"`
	AccessType string `gorm:"not null;size:20"`
	Status     string `gorm:"not null;default:active;size:20;index"`
	GrantedAt  time.Time
	ExpiresAt  *time.Time `gorm:"index"`
	OrderID    *uint
	GrantedBy  *uint
	Notes      string `gorm:"size:500"`
	Version    int    `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (EntitlementModel) TableName() string {
	return constants.TableEntitlements
}
