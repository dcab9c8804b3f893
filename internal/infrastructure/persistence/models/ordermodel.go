package models

import (
	"time"

	"gorm.io/datatypes"

	"bilig/internal/shared/constants"
)

// OrderModel represents the database persistence model for orders.
// CallbackLog is a JSON array of raw webhook payloads, append-only.
type OrderModel struct {
	ID               uint   `gorm:"primarykey"`
	OrderNo          string `gorm:"uniqueIndex;not null;size:64"`
	UserID           uint   `gorm:"not null;index:idx_orders_user_course"`
	CourseID         uint   `gorm:"not null;index:idx_orders_user_course"`
	Amount           int64  `gorm:"not null"`
	Currency         string `gorm:"not null;default:MNT;size:8"`
	PaymentMethod    string `gorm:"not null;size:20"`
	Status           string `gorm:"not null;default:pending;size:20;index"`
	InvoiceID        *string `gorm:"uniqueIndex;size:128"`
	TransactionID    *string `gorm:"size:128"`
	CallbackLog      datatypes.JSON
	LastVerification datatypes.JSON
	PaidAt           *time.Time
	Version          int `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (OrderModel) TableName() string {
	return constants.TableOrders
}
