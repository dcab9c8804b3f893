// Package dto defines the request and response shapes of the entitlement
// use cases.
package dto

import (
	"time"

	"bilig/internal/domain/entitlement"
)

// GrantAccessRequest asks for course access for an account. Granting to a
// pair that already has a record refreshes it instead of failing.
type GrantAccessRequest struct {
	UserID     uint    `json:"user_id" binding:"required" validate:"required"`
	CourseID   uint    `json:"course_id" binding:"required" validate:"required"`
	AccessType string  `json:"access_type" binding:"required" validate:"required"`
	ExpiresAt  *string `json:"expires_at,omitempty"` // RFC3339, omit for no expiry
	OrderID    *uint   `json:"order_id,omitempty"`
	GrantedBy  *uint   `json:"-"`
	Notes      string  `json:"notes,omitempty"`
}

// EntitlementResponse is the API view of an entitlement. Status is the
// effective status: a stored active record past its expiry reads as expired.
type EntitlementResponse struct {
	SID        string     `json:"id"`
	UserID     uint       `json:"user_id"`
	CourseID   uint       `json:"course_id"`
	AccessType string     `json:"access_type"`
	Status     string     `json:"status"`
	GrantedAt  time.Time  `json:"granted_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	OrderID    *uint      `json:"order_id,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// RevokeResult reports the outcome of a revoke. Revoked is false when the
// pair had no record to begin with; that is a no-op, not an error.
type RevokeResult struct {
	Revoked     bool                 `json:"revoked"`
	Entitlement *EntitlementResponse `json:"entitlement,omitempty"`
}

// SweepResult reports what an expiry sweep corrected.
type SweepResult struct {
	ExpiredCount int                       `json:"expired_count"`
	Pairs        []entitlement.ExpiredPair `json:"pairs,omitempty"`
}

// CleanupResult reports what the orphan cleanup removed.
type CleanupResult struct {
	DeletedCount    int64  `json:"deleted_count"`
	OrphanCourseIDs []uint `json:"orphan_course_ids,omitempty"`
}

// ToEntitlementResponse maps an entitlement to its API view.
func ToEntitlementResponse(e *entitlement.Entitlement) *EntitlementResponse {
	return &EntitlementResponse{
		SID:        e.SID(),
		UserID:     e.UserID(),
		CourseID:   e.CourseID(),
		AccessType: e.AccessType().String(),
		Status:     e.EffectiveStatus().String(),
		GrantedAt:  e.GrantedAt(),
		ExpiresAt:  e.ExpiresAt(),
		OrderID:    e.OrderID(),
		Notes:      e.Notes(),
		CreatedAt:  e.CreatedAt(),
		UpdatedAt:  e.UpdatedAt(),
	}
}
