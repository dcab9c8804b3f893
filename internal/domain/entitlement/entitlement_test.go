package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func activeEntitlement(t *testing.T, expiresAt *time.Time) *Entitlement {
	t.Helper()
	e, err := NewEntitlement(1, 2, AccessTypePurchase, expiresAt, nil, nil, "")
	require.NoError(t, err)
	return e
}

func timePtr(t time.Time) *time.Time { return &t }
func uintPtr(v uint) *uint           { return &v }

// =============================================================================
// Constructor
// =============================================================================

func TestNewEntitlement_ValidInput(t *testing.T) {
	orderID := uintPtr(42)
	e, err := NewEntitlement(1, 2, AccessTypePurchase, nil, orderID, nil, "")
	require.NoError(t, err)

	assert.Equal(t, StatusActive, e.Status())
	assert.Equal(t, AccessTypePurchase, e.AccessType())
	assert.Equal(t, uint(42), *e.OrderID())
	assert.Nil(t, e.ExpiresAt())
	assert.True(t, e.IsActive())
}

func TestNewEntitlement_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		userID     uint
		courseID   uint
		accessType AccessType
	}{
		{"zero user", 0, 2, AccessTypePurchase},
		{"zero course", 1, 0, AccessTypePurchase},
		{"invalid access type", 1, 2, AccessType("gift")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntitlement(tt.userID, tt.courseID, tt.accessType, nil, nil, nil, "")
			assert.Error(t, err)
		})
	}
}

// =============================================================================
// Lazy expiry
// =============================================================================

func TestEntitlement_IsActive_ExpiredByTime(t *testing.T) {
	// Stored status is still active but the expiry has passed:
	// access must be denied before any sweep has run.
	past := timePtr(time.Now().UTC().Add(-time.Hour))
	e := activeEntitlement(t, past)

	assert.Equal(t, StatusActive, e.Status())
	assert.False(t, e.IsActive())
	assert.True(t, e.IsExpiredByTime())
	assert.Equal(t, StatusExpired, e.EffectiveStatus())
}

func TestEntitlement_IsActive_FutureExpiry(t *testing.T) {
	future := timePtr(time.Now().UTC().Add(time.Hour))
	e := activeEntitlement(t, future)

	assert.True(t, e.IsActive())
	assert.Equal(t, StatusActive, e.EffectiveStatus())
}

func TestEntitlement_IsActive_NoExpiry(t *testing.T) {
	e := activeEntitlement(t, nil)
	assert.True(t, e.IsActive())
}

// =============================================================================
// Transitions
// =============================================================================

func TestEntitlement_Revoke_Idempotent(t *testing.T) {
	e := activeEntitlement(t, nil)

	e.Revoke()
	versionAfterFirst := e.Version()
	e.Revoke()

	assert.Equal(t, StatusRevoked, e.Status())
	assert.Equal(t, versionAfterFirst, e.Version())
	assert.False(t, e.IsActive())
}

func TestEntitlement_Expire_Idempotent(t *testing.T) {
	e := activeEntitlement(t, timePtr(time.Now().UTC().Add(-time.Minute)))

	e.Expire()
	versionAfterFirst := e.Version()
	e.Expire()

	assert.Equal(t, StatusExpired, e.Status())
	assert.Equal(t, versionAfterFirst, e.Version())
}

func TestEntitlement_Expire_DoesNotTouchRevoked(t *testing.T) {
	e := activeEntitlement(t, nil)
	e.Revoke()

	e.Expire()

	assert.Equal(t, StatusRevoked, e.Status())
}

func TestEntitlement_Refresh_ReactivatesRevoked(t *testing.T) {
	e := activeEntitlement(t, nil)
	e.Revoke()

	admin := uintPtr(9)
	err := e.Refresh(AccessTypeAdminGrant, nil, nil, admin, "manual re-grant")
	require.NoError(t, err)

	assert.Equal(t, StatusActive, e.Status())
	assert.Equal(t, AccessTypeAdminGrant, e.AccessType())
	assert.Equal(t, uint(9), *e.GrantedBy())
	assert.True(t, e.IsActive())
}

func TestEntitlement_Refresh_ClearsExpiry(t *testing.T) {
	past := timePtr(time.Now().UTC().Add(-time.Hour))
	e := activeEntitlement(t, past)
	require.False(t, e.IsActive())

	err := e.Refresh(AccessTypePurchase, nil, uintPtr(7), nil, "")
	require.NoError(t, err)

	assert.Nil(t, e.ExpiresAt())
	assert.True(t, e.IsActive())
	assert.Equal(t, uint(7), *e.OrderID())
}

func TestEntitlement_Refresh_KeepsOrderIDWhenNotProvided(t *testing.T) {
	e, err := NewEntitlement(1, 2, AccessTypePurchase, nil, uintPtr(7), nil, "")
	require.NoError(t, err)

	require.NoError(t, e.Refresh(AccessTypeAdminGrant, nil, nil, uintPtr(9), ""))

	require.NotNil(t, e.OrderID())
	assert.Equal(t, uint(7), *e.OrderID())
}
