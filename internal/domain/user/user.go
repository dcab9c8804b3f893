package user

import (
	"fmt"
	"time"

	"bilig/internal/shared/biztime"
	"bilig/internal/shared/id"
)

// User is the account aggregate root. The numeric ID is the canonical
// identifier used as the foreign key everywhere; the SID is the public
// identifier carried in tokens and URLs. Email is unique but is never
// used as a foreign key.
type User struct {
	id           uint
	sid          string
	email        Email
	passwordHash *string // nil for federated (OAuth) accounts
	name         string
	role         Role
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
	version      int
}

// NewUser creates an account registered with a password.
func NewUser(email Email, passwordHash, name string) (*User, error) {
	if email.IsZero() {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := biztime.NowUTC()
	return &User{
		sid:          id.MustGenerateWithPrefix(id.PrefixUser, id.DefaultLength),
		email:        email,
		passwordHash: &passwordHash,
		name:         name,
		role:         RoleUser,
		status:       StatusActive,
		createdAt:    now,
		updatedAt:    now,
		version:      1,
	}, nil
}

// NewOAuthUser creates an account from a federated sign-in. It carries no
// password hash; such accounts can only authenticate through the provider.
func NewOAuthUser(email Email, name string) (*User, error) {
	if email.IsZero() {
		return nil, fmt.Errorf("email is required")
	}

	now := biztime.NowUTC()
	return &User{
		sid:       id.MustGenerateWithPrefix(id.PrefixUser, id.DefaultLength),
		email:     email,
		name:      name,
		role:      RoleUser,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(
	userID uint,
	sid string,
	email Email,
	passwordHash *string,
	name string,
	role Role,
	status Status,
	createdAt, updatedAt time.Time,
	version int,
) (*User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &User{
		id:           userID,
		sid:          sid,
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		role:         role,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		version:      version,
	}, nil
}

func (u *User) ID() uint              { return u.id }
func (u *User) SID() string           { return u.sid }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() *string { return u.passwordHash }
func (u *User) Name() string          { return u.name }
func (u *User) Role() Role            { return u.role }
func (u *User) Status() Status        { return u.status }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
func (u *User) Version() int          { return u.version }

// SetID sets the user ID after persistence (used by repository after Create).
func (u *User) SetID(userID uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if userID == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = userID
	return nil
}

// IsOAuthOnly reports whether the account can only sign in via a provider.
func (u *User) IsOAuthOnly() bool {
	return u.passwordHash == nil
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.status == StatusActive
}

// ChangeRole updates the account role.
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.updatedAt = biztime.NowUTC()
	u.version++
	return nil
}

// ChangeName updates the display name.
func (u *User) ChangeName(name string) {
	u.name = name
	u.updatedAt = biztime.NowUTC()
	u.version++
}

// SetPasswordHash replaces the password hash (password change / reset).
func (u *User) SetPasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = &hash
	u.updatedAt = biztime.NowUTC()
	u.version++
	return nil
}

// MarkDeleted flags the account as deleted. Callers must cascade
// entitlement cleanup before persisting this transition.
func (u *User) MarkDeleted() {
	if u.status == StatusDeleted {
		return
	}
	u.status = StatusDeleted
	u.updatedAt = biztime.NowUTC()
	u.version++
}
