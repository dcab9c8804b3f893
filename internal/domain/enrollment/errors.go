package enrollment

import "errors"

var (
	// ErrEnrollmentNotFound is returned when an enrollment is not found
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)
