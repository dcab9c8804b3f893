package course

import (
	"fmt"
	"time"

	vo "bilig/internal/domain/shared/valueobjects"
	"bilig/internal/shared/biztime"
	"bilig/internal/shared/id"
)

// Course is the catalog aggregate root.
type Course struct {
	courseID    uint
	sid         string
	title       BilingualText
	description BilingualText // markdown source; rendered and sanitized at the interface layer
	price       vo.Money
	status      Status
	lessons     []*Lesson
	createdAt   time.Time
	updatedAt   time.Time
	version     int
}

// Lesson is a video lesson within a course. VideoAssetID references the
// external streaming provider; it is only revealed to entitled accounts
// unless the lesson is marked as a free preview.
type Lesson struct {
	lessonID     uint
	sid          string
	title        BilingualText
	videoAssetID string
	durationSec  int
	position     int
	freePreview  bool
}

// NewCourse creates a draft course.
func NewCourse(title, description BilingualText, price vo.Money) (*Course, error) {
	if title.IsZero() {
		return nil, fmt.Errorf("course title is required")
	}
	if !price.IsPositive() && !price.IsZero() {
		return nil, fmt.Errorf("course price cannot be negative")
	}

	now := biztime.NowUTC()
	return &Course{
		sid:         id.MustGenerateWithPrefix(id.PrefixCourse, id.DefaultLength),
		title:       title,
		description: description,
		price:       price,
		status:      StatusDraft,
		createdAt:   now,
		updatedAt:   now,
		version:     1,
	}, nil
}

// ReconstructCourse rebuilds a course from persistence.
func ReconstructCourse(
	courseID uint,
	sid string,
	title, description BilingualText,
	price vo.Money,
	status Status,
	lessons []*Lesson,
	createdAt, updatedAt time.Time,
	version int,
) (*Course, error) {
	if courseID == 0 {
		return nil, fmt.Errorf("course ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid course status: %s", status)
	}

	return &Course{
		courseID:    courseID,
		sid:         sid,
		title:       title,
		description: description,
		price:       price,
		status:      status,
		lessons:     lessons,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}, nil
}

// ReconstructLesson rebuilds a lesson from persistence.
func ReconstructLesson(lessonID uint, sid string, title BilingualText, videoAssetID string, durationSec, position int, freePreview bool) *Lesson {
	return &Lesson{
		lessonID:     lessonID,
		sid:          sid,
		title:        title,
		videoAssetID: videoAssetID,
		durationSec:  durationSec,
		position:     position,
		freePreview:  freePreview,
	}
}

func (c *Course) ID() uint                   { return c.courseID }
func (c *Course) SID() string                { return c.sid }
func (c *Course) Title() BilingualText       { return c.title }
func (c *Course) Description() BilingualText { return c.description }
func (c *Course) Price() vo.Money            { return c.price }
func (c *Course) Status() Status             { return c.status }
func (c *Course) Lessons() []*Lesson         { return c.lessons }
func (c *Course) CreatedAt() time.Time       { return c.createdAt }
func (c *Course) UpdatedAt() time.Time       { return c.updatedAt }
func (c *Course) Version() int               { return c.version }

func (l *Lesson) ID() uint             { return l.lessonID }
func (l *Lesson) SID() string          { return l.sid }
func (l *Lesson) Title() BilingualText { return l.title }
func (l *Lesson) VideoAssetID() string { return l.videoAssetID }
func (l *Lesson) DurationSec() int     { return l.durationSec }
func (l *Lesson) Position() int        { return l.position }
func (l *Lesson) IsFreePreview() bool  { return l.freePreview }

// SetID sets the course ID after persistence.
func (c *Course) SetID(courseID uint) error {
	if c.courseID != 0 {
		return fmt.Errorf("course ID is already set")
	}
	if courseID == 0 {
		return fmt.Errorf("course ID cannot be zero")
	}
	c.courseID = courseID
	return nil
}

// IsFree reports whether the course requires no purchase.
func (c *Course) IsFree() bool {
	return c.price.IsZero()
}

// IsPurchasable reports whether checkout may be initiated for this course.
func (c *Course) IsPurchasable() bool {
	return c.status.IsPurchasable() && c.price.IsPositive()
}

// Publish makes a draft course visible and purchasable.
func (c *Course) Publish() error {
	if c.status == StatusActive {
		return nil
	}
	if c.status == StatusArchived {
		return fmt.Errorf("cannot publish archived course")
	}
	c.status = StatusActive
	c.touch()
	return nil
}

// Archive withdraws the course from sale. Existing entitlements are unaffected.
func (c *Course) Archive() error {
	if c.status == StatusArchived {
		return nil
	}
	c.status = StatusArchived
	c.touch()
	return nil
}

// UpdateTitle replaces the bilingual title.
func (c *Course) UpdateTitle(title BilingualText) error {
	if title.IsZero() {
		return fmt.Errorf("course title is required")
	}
	c.title = title
	c.touch()
	return nil
}

// UpdateDescription replaces the bilingual markdown description.
func (c *Course) UpdateDescription(description BilingualText) {
	c.description = description
	c.touch()
}

// UpdatePrice re-prices the course. Archived courses cannot be re-priced.
func (c *Course) UpdatePrice(price vo.Money) error {
	if c.status == StatusArchived {
		return fmt.Errorf("cannot re-price archived course")
	}
	if !price.IsPositive() && !price.IsZero() {
		return fmt.Errorf("course price cannot be negative")
	}
	c.price = price
	c.touch()
	return nil
}

// AddLesson appends a lesson at the end of the course.
func (c *Course) AddLesson(title BilingualText, videoAssetID string, durationSec int, freePreview bool) (*Lesson, error) {
	if title.IsZero() {
		return nil, fmt.Errorf("lesson title is required")
	}
	if videoAssetID == "" {
		return nil, fmt.Errorf("video asset ID is required")
	}

	lesson := &Lesson{
		sid:          id.MustGenerateWithPrefix(id.PrefixLesson, id.DefaultLength),
		title:        title,
		videoAssetID: videoAssetID,
		durationSec:  durationSec,
		position:     len(c.lessons) + 1,
		freePreview:  freePreview,
	}
	c.lessons = append(c.lessons, lesson)
	c.touch()
	return lesson, nil
}

// RemoveLesson deletes a lesson by SID and renumbers the remainder.
func (c *Course) RemoveLesson(lessonSID string) error {
	for i, lesson := range c.lessons {
		if lesson.sid == lessonSID {
			c.lessons = append(c.lessons[:i], c.lessons[i+1:]...)
			for j, rest := range c.lessons {
				rest.position = j + 1
			}
			c.touch()
			return nil
		}
	}
	return ErrLessonNotFound
}

// FindLesson returns the lesson with the given SID.
func (c *Course) FindLesson(lessonSID string) (*Lesson, bool) {
	for _, lesson := range c.lessons {
		if lesson.sid == lessonSID {
			return lesson, true
		}
	}
	return nil, false
}

func (c *Course) touch() {
	c.updatedAt = biztime.NowUTC()
	c.version++
}
