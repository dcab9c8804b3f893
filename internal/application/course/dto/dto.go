// Package dto defines the request and response shapes of the course
// use cases.
package dto

import (
	"time"

	"bilig/internal/domain/course"
)

// BilingualField carries both language variants of a text field in
// admin requests.
type BilingualField struct {
	MN string `json:"mn"`
	EN string `json:"en"`
}

// CreateCourseRequest creates a draft course.
type CreateCourseRequest struct {
	Title       BilingualField `json:"title" binding:"required"`
	Description BilingualField `json:"description"`
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency"`
}

// UpdateCourseRequest updates course fields; nil fields are left unchanged.
type UpdateCourseRequest struct {
	CourseSID   string          `json:"-"`
	Title       *BilingualField `json:"title,omitempty"`
	Description *BilingualField `json:"description,omitempty"`
	Amount      *int64          `json:"amount,omitempty"`
	Currency    string          `json:"currency,omitempty"`
}

// AddLessonRequest appends a lesson to a course.
type AddLessonRequest struct {
	CourseSID    string         `json:"-"`
	Title        BilingualField `json:"title" binding:"required"`
	VideoAssetID string         `json:"video_asset_id" binding:"required"`
	DurationSec  int            `json:"duration_sec"`
	FreePreview  bool           `json:"free_preview"`
}

// LessonResponse is the API view of a lesson. VideoAssetID is only set
// when the requester may play the lesson.
type LessonResponse struct {
	SID          string  `json:"id"`
	Title        string  `json:"title"`
	DurationSec  int     `json:"duration_sec"`
	Position     int     `json:"position"`
	FreePreview  bool    `json:"free_preview"`
	VideoAssetID *string `json:"video_asset_id,omitempty"`
}

// CourseResponse is the API view of a course, localized to one language.
// DescriptionHTML is rendered and sanitized markdown.
type CourseResponse struct {
	SID             string            `json:"id"`
	Title           string            `json:"title"`
	DescriptionHTML string            `json:"description_html,omitempty"`
	Amount          int64             `json:"amount"`
	Currency        string            `json:"currency"`
	Free            bool              `json:"free"`
	Status          string            `json:"status"`
	LessonCount     int               `json:"lesson_count"`
	Lessons         []*LessonResponse `json:"lessons,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ToLessonResponse maps a lesson; the video asset is included only when
// withAsset is set.
func ToLessonResponse(l *course.Lesson, lang string, withAsset bool) *LessonResponse {
	resp := &LessonResponse{
		SID:         l.SID(),
		Title:       l.Title().In(lang),
		DurationSec: l.DurationSec(),
		Position:    l.Position(),
		FreePreview: l.IsFreePreview(),
	}
	if withAsset {
		asset := l.VideoAssetID()
		resp.VideoAssetID = &asset
	}
	return resp
}
