package entitlement

import (
	"fmt"
	"time"

	"bilig/internal/shared/biztime"
	"bilig/internal/shared/id"
)

// Entitlement is the aggregate root recording that an account may access
// a course.
type Entitlement struct {
	entitlementID uint
	sid           string
	userID        uint
	courseID      uint
	accessType    AccessType
	status        Status
	grantedAt     time.Time
	expiresAt     *time.Time // nil means no expiration
	orderID       *uint      // originating paid order, when accessType is purchase
	grantedBy     *uint      // admin account, when accessType is admin_grant
	notes         string
	createdAt     time.Time
	updatedAt     time.Time
	version       int
}

// NewEntitlement creates an active entitlement.
func NewEntitlement(userID, courseID uint, accessType AccessType, expiresAt *time.Time, orderID, grantedBy *uint, notes string) (*Entitlement, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if courseID == 0 {
		return nil, fmt.Errorf("course ID is required")
	}
	if !accessType.IsValid() {
		return nil, fmt.Errorf("invalid access type: %s", accessType)
	}

	now := biztime.NowUTC()
	return &Entitlement{
		sid:        id.MustGenerateWithPrefix(id.PrefixEntitlement, id.DefaultLength),
		userID:     userID,
		courseID:   courseID,
		accessType: accessType,
		status:     StatusActive,
		grantedAt:  now,
		expiresAt:  expiresAt,
		orderID:    orderID,
		grantedBy:  grantedBy,
		notes:      notes,
		createdAt:  now,
		updatedAt:  now,
		version:    1,
	}, nil
}

// EntitlementReconstructParams carries persisted state for Reconstruct.
type EntitlementReconstructParams struct {
	ID         uint
	SID        string
	UserID     uint
	CourseID   uint
	AccessType AccessType
	Status     Status
	GrantedAt  time.Time
	ExpiresAt  *time.Time
	OrderID    *uint
	GrantedBy  *uint
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int
}

// ReconstructEntitlement rebuilds an entitlement from persistence.
func ReconstructEntitlement(p EntitlementReconstructParams) (*Entitlement, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("entitlement ID cannot be zero")
	}
	if p.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if p.CourseID == 0 {
		return nil, fmt.Errorf("course ID is required")
	}
	if !p.AccessType.IsValid() {
		return nil, fmt.Errorf("invalid access type: %s", p.AccessType)
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid entitlement status: %s", p.Status)
	}

	return &Entitlement{
		entitlementID: p.ID,
		sid:           p.SID,
		userID:        p.UserID,
		courseID:      p.CourseID,
		accessType:    p.AccessType,
		status:        p.Status,
		grantedAt:     p.GrantedAt,
		expiresAt:     p.ExpiresAt,
		orderID:       p.OrderID,
		grantedBy:     p.GrantedBy,
		notes:         p.Notes,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
		version:       p.Version,
	}, nil
}

func (e *Entitlement) ID() uint               { return e.entitlementID }
func (e *Entitlement) SID() string            { return e.sid }
func (e *Entitlement) UserID() uint           { return e.userID }
func (e *Entitlement) CourseID() uint         { return e.courseID }
func (e *Entitlement) AccessType() AccessType { return e.accessType }
func (e *Entitlement) Status() Status         { return e.status }
func (e *Entitlement) GrantedAt() time.Time   { return e.grantedAt }
func (e *Entitlement) ExpiresAt() *time.Time  { return e.expiresAt }
func (e *Entitlement) OrderID() *uint         { return e.orderID }
func (e *Entitlement) GrantedBy() *uint       { return e.grantedBy }
func (e *Entitlement) Notes() string          { return e.notes }
func (e *Entitlement) CreatedAt() time.Time   { return e.createdAt }
func (e *Entitlement) UpdatedAt() time.Time   { return e.updatedAt }
func (e *Entitlement) Version() int           { return e.version }

// SetID sets the entitlement ID after persistence.
func (e *Entitlement) SetID(entitlementID uint) error {
	if e.entitlementID != 0 {
		return fmt.Errorf("entitlement ID is already set")
	}
	if entitlementID == 0 {
		return fmt.Errorf("entitlement ID cannot be zero")
	}
	e.entitlementID = entitlementID
	return nil
}

// Refresh re-activates the entitlement for a repeated grant. Safe to call on
// any existing record regardless of status: a new grant always wins over an
// expired or revoked one.
func (e *Entitlement) Refresh(accessType AccessType, expiresAt *time.Time, orderID, grantedBy *uint, notes string) error {
	if !accessType.IsValid() {
		return fmt.Errorf("invalid access type: %s", accessType)
	}

	now := biztime.NowUTC()
	e.accessType = accessType
	e.status = StatusActive
	e.grantedAt = now
	e.expiresAt = expiresAt
	if orderID != nil {
		e.orderID = orderID
	}
	if grantedBy != nil {
		e.grantedBy = grantedBy
	}
	if notes != "" {
		e.notes = notes
	}
	e.updatedAt = now
	e.version++
	return nil
}

// Revoke marks the entitlement as revoked. Revoking twice is a no-op.
func (e *Entitlement) Revoke() {
	if e.status == StatusRevoked {
		return
	}
	e.status = StatusRevoked
	e.updatedAt = biztime.NowUTC()
	e.version++
}

// Expire marks the entitlement as expired. Expiring twice is a no-op;
// a revoked entitlement stays revoked.
func (e *Entitlement) Expire() {
	if e.status != StatusActive {
		return
	}
	e.status = StatusExpired
	e.updatedAt = biztime.NowUTC()
	e.version++
}

// IsActive reports whether the entitlement currently grants access.
// The expiry check happens on every call: a stored active status does not
// grant access past expiresAt, even before a sweep has corrected the row.
func (e *Entitlement) IsActive() bool {
	if e.status != StatusActive {
		return false
	}
	if e.expiresAt != nil && !biztime.NowUTC().Before(*e.expiresAt) {
		return false
	}
	return true
}

// IsExpiredByTime reports whether the expiry timestamp has passed,
// regardless of the stored status.
func (e *Entitlement) IsExpiredByTime() bool {
	return e.expiresAt != nil && !biztime.NowUTC().Before(*e.expiresAt)
}

// EffectiveStatus returns the status a reader should display: a stored
// active status with a past expiry reads as expired. The stored field is
// never trusted on its own.
func (e *Entitlement) EffectiveStatus() Status {
	if e.status == StatusActive && e.IsExpiredByTime() {
		return StatusExpired
	}
	return e.status
}
