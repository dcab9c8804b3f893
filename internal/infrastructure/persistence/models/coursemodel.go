package models

import (
	"time"

	"bilig/internal/shared/constants"
)

// CourseModel represents the database persistence model for courses.
// Bilingual fields are stored as separate columns.
type CourseModel struct {
	ID            uint   `gorm:"primarykey"`
	SID           string `gorm:"uniqueIndex;not null;size:32"`
	TitleMN       string `gorm:"size:255"`
	TitleEN       string `gorm:"size:255"`
	DescriptionMN string `gorm:"type:text"`
	DescriptionEN string `gorm:"type:text"`
	Amount        int64  `gorm:"not null;default:0"`
	Currency      string `gorm:"not null;default:MNT;size:8"`
	Status        string `gorm:"not null;default:draft;size:20;index"`
	Version       int    `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Lessons []LessonModel `gorm:"foreignKey:CourseID"`
}

// TableName specifies the table name for GORM
func (CourseModel) TableName() string {
	return constants.TableCourses
}

// LessonModel represents the database persistence model for lessons.
type LessonModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"uniqueIndex;not null;size:32"`
	CourseID     uint   `gorm:"not null;index"`
	TitleMN      string `gorm:"size:255"`
	TitleEN      string `gorm:"size:255"`
	VideoAssetID string `gorm:"not null;size:128"`
	DurationSec  int    `gorm:"not null;default:0"`
	Position     int    `gorm:"not null;default:0"`
	FreePreview  bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (LessonModel) TableName() string {
	return constants.TableLessons
}
