// Package entitlement provides the course-access entitlement aggregate.
// An entitlement grants one account access to one course, optionally
// time-boxed. The (user, course) pair is unique; the canonical numeric
// account ID is the only identifier ever persisted.
package entitlement

// AccessType represents how the entitlement was obtained.
type AccessType string

const (
	// AccessTypePurchase indicates access granted by a paid order
	AccessTypePurchase AccessType = "purchase"
	// AccessTypeAdminGrant indicates access granted manually by an admin
	AccessTypeAdminGrant AccessType = "admin_grant"
	// AccessTypeFree indicates access to a free course
	AccessTypeFree AccessType = "free"
)

func (at AccessType) IsValid() bool {
	switch at {
	case AccessTypePurchase, AccessTypeAdminGrant, AccessTypeFree:
		return true
	default:
		return false
	}
}

func (at AccessType) String() string {
	return string(at)
}

// Status represents the stored status of an entitlement. The stored value
// can lag reality: an active record whose expiry has passed no longer
// grants access even before a sweep corrects it. Use EffectiveStatus for
// display and IsActive for access decisions.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusRevoked:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}
