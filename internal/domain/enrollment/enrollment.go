// Package enrollment tracks lesson progress per account and course.
// A completed enrollment is a legacy access source: accounts that finished
// a course before the entitlement store existed keep their access.
package enrollment

import (
	"fmt"
	"time"

	"bilig/internal/shared/biztime"
)

// Enrollment is the progress record for one account in one course.
type Enrollment struct {
	enrollmentID     uint
	userID           uint
	courseID         uint
	completedLessons []string // lesson SIDs, in completion order
	completedAt      *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

// NewEnrollment starts tracking progress for a (user, course) pair.
func NewEnrollment(userID, courseID uint) (*Enrollment, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if courseID == 0 {
		return nil, fmt.Errorf("course ID is required")
	}

	now := biztime.NowUTC()
	return &Enrollment{
		userID:    userID,
		courseID:  courseID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructEnrollment rebuilds an enrollment from persistence.
func ReconstructEnrollment(enrollmentID, userID, courseID uint, completedLessons []string, completedAt *time.Time, createdAt, updatedAt time.Time) *Enrollment {
	return &Enrollment{
		enrollmentID:     enrollmentID,
		userID:           userID,
		courseID:         courseID,
		completedLessons: completedLessons,
		completedAt:      completedAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (e *Enrollment) ID() uint                   { return e.enrollmentID }
func (e *Enrollment) UserID() uint               { return e.userID }
func (e *Enrollment) CourseID() uint             { return e.courseID }
func (e *Enrollment) CompletedLessons() []string { return e.completedLessons }
func (e *Enrollment) CompletedAt() *time.Time    { return e.completedAt }
func (e *Enrollment) CreatedAt() time.Time       { return e.createdAt }
func (e *Enrollment) UpdatedAt() time.Time       { return e.updatedAt }

// SetID sets the enrollment ID after persistence.
func (e *Enrollment) SetID(enrollmentID uint) {
	e.enrollmentID = enrollmentID
}

// IsCompleted reports whether the whole course was finished.
func (e *Enrollment) IsCompleted() bool {
	return e.completedAt != nil
}

// CompleteLesson marks a lesson as done. Re-completing a lesson is a no-op.
// totalLessons is the current lesson count of the course; when every lesson
// is done the enrollment itself completes.
func (e *Enrollment) CompleteLesson(lessonSID string, totalLessons int) {
	for _, done := range e.completedLessons {
		if done == lessonSID {
			return
		}
	}
	e.completedLessons = append(e.completedLessons, lessonSID)
	now := biztime.NowUTC()
	if totalLessons > 0 && len(e.completedLessons) >= totalLessons && e.completedAt == nil {
		e.completedAt = &now
	}
	e.updatedAt = now
}
