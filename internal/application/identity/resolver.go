// Package identity centralizes the mapping from request credentials to the
// canonical numeric account ID. Every access decision and every persisted
// foreign key goes through this resolver, so legacy rows keyed by email are
// handled in exactly one place.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"bilig/internal/domain/user"
	"bilig/internal/shared/logger"
)

// Resolution is the outcome of resolving an account reference.
type Resolution struct {
	UserID uint
	SID    string
	Email  string
	Role   user.Role
	Status user.Status

	// Inconsistent is set when the reference carried both a numeric ID and
	// an email and they point at different accounts. The numeric ID wins;
	// the mismatch is surfaced for the caller to log or reject on.
	Inconsistent bool
}

// Resolver turns external account references into canonical numeric IDs.
type Resolver struct {
	userRepo user.Repository
	logger   logger.Interface
}

// NewResolver creates an identity resolver.
func NewResolver(userRepo user.Repository, logger logger.Interface) *Resolver {
	return &Resolver{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ResolveByID resolves a canonical numeric account ID.
func (r *Resolver) ResolveByID(ctx context.Context, userID uint) (*Resolution, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	u, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	return resolutionFrom(u), nil
}

// ResolveBySID resolves a public short ID, the shape carried in JWT claims.
func (r *Resolver) ResolveBySID(ctx context.Context, sid string) (*Resolution, error) {
	if sid == "" {
		return nil, fmt.Errorf("user SID is required")
	}

	u, err := r.userRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	return resolutionFrom(u), nil
}

// ResolveReference resolves a loosely typed account reference as found in
// imported or legacy records: a numeric ID string, or an email address.
// When both are present the numeric ID is authoritative and a mismatching
// email marks the resolution inconsistent.
func (r *Resolver) ResolveReference(ctx context.Context, idRef, emailRef string) (*Resolution, error) {
	var byID *Resolution

	if idRef != "" {
		parsed, err := strconv.ParseUint(idRef, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed user reference %q: %w", idRef, err)
		}
		byID, err = r.ResolveByID(ctx, uint(parsed))
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
	}

	if byID != nil {
		if emailRef != "" && byID.Email != user.NormalizeEmail(emailRef) {
			r.logger.Warnw("account reference carries mismatching id and email",
				"user_id", byID.UserID,
				"reference_email", emailRef,
			)
			byID.Inconsistent = true
		}
		return byID, nil
	}

	if emailRef == "" {
		return nil, user.ErrUserNotFound
	}

	u, err := r.userRepo.GetByEmail(ctx, user.NormalizeEmail(emailRef))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	return resolutionFrom(u), nil
}

// Active reports whether the resolved account may authenticate.
func (r *Resolution) Active() bool {
	return r.Status == user.StatusActive
}

func resolutionFrom(u *user.User) *Resolution {
	return &Resolution{
		UserID: u.ID(),
		SID:    u.SID(),
		Email:  u.Email().String(),
		Role:   u.Role(),
		Status: u.Status(),
	}
}
