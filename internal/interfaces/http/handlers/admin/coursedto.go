package admin

import (
	"time"

	coursedto "bilig/internal/application/course/dto"
	"bilig/internal/domain/course"
)

// CourseResponse is the back-office view of a course. Unlike the public
// catalog it carries both language variants and the raw markdown source.
type CourseResponse struct {
	SID         string                   `json:"id"`
	Title       coursedto.BilingualField `json:"title"`
	Description coursedto.BilingualField `json:"description"`
	Amount      int64                    `json:"amount"`
	Currency    string                   `json:"currency"`
	Free        bool                     `json:"free"`
	Status      string                   `json:"status"`
	Lessons     []*LessonResponse        `json:"lessons"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// LessonResponse is the back-office view of a lesson.
type LessonResponse struct {
	SID          string                   `json:"id"`
	Title        coursedto.BilingualField `json:"title"`
	VideoAssetID string                   `json:"video_asset_id"`
	DurationSec  int                      `json:"duration_sec"`
	Position     int                      `json:"position"`
	FreePreview  bool                     `json:"free_preview"`
}

// ToCourseResponse maps a course aggregate to its back-office view.
func ToCourseResponse(c *course.Course) *CourseResponse {
	lessons := make([]*LessonResponse, 0, len(c.Lessons()))
	for _, l := range c.Lessons() {
		lessons = append(lessons, &LessonResponse{
			SID:          l.SID(),
			Title:        coursedto.BilingualField{MN: l.Title().MN, EN: l.Title().EN},
			VideoAssetID: l.VideoAssetID(),
			DurationSec:  l.DurationSec(),
			Position:     l.Position(),
			FreePreview:  l.IsFreePreview(),
		})
	}

	return &CourseResponse{
		SID:         c.SID(),
		Title:       coursedto.BilingualField{MN: c.Title().MN, EN: c.Title().EN},
		Description: coursedto.BilingualField{MN: c.Description().MN, EN: c.Description().EN},
		Amount:      c.Price().Amount(),
		Currency:    c.Price().Currency(),
		Free:        c.IsFree(),
		Status:      c.Status().String(),
		Lessons:     lessons,
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}
