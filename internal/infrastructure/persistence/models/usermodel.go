// Package models holds the database persistence models. They are the
// anti-corruption layer between the domain aggregates and the schema.
package models

import (
	"time"

	"bilig/internal/shared/constants"
)

// UserModel represents the database persistence model for accounts.
type UserModel struct {
	ID           uint    `gorm:"primarykey"`
	SID          string  `gorm:"uniqueIndex;not null;size:32"`
	Email        string  `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash *string `gorm:"size:255"`
	Name         string  `gorm:"size:100"`
	Role         string  `gorm:"not null;default:user;size:20"`
	Status       string  `gorm:"not null;default:active;size:20"`
	Version      int     `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
