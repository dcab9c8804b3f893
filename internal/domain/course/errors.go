package course

import "errors"

var (
	// ErrCourseNotFound is returned when a course is not found
	ErrCourseNotFound = errors.New("course not found")

	// ErrLessonNotFound is returned when a lesson is not found within a course
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrCourseNotPurchasable is returned when checkout is attempted for a
	// draft or archived course
	ErrCourseNotPurchasable = errors.New("course is not purchasable")
)
