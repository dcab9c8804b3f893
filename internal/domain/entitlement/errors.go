package entitlement

import "errors"

var (
	// ErrEntitlementNotFound is returned when an entitlement is not found
	ErrEntitlementNotFound = errors.New("entitlement not found")

	// ErrAccessDenied is returned when an account has no access to a course
	ErrAccessDenied = errors.New("access denied")
)
