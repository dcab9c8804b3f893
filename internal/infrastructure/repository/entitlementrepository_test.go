package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilig/internal/domain/entitlement"
	"bilig/internal/shared/biztime"
	apperrors "bilig/internal/shared/errors"
)

func newEntitlement(t *testing.T, userID, courseID uint, expiresAt *time.Time) *entitlement.Entitlement {
	t.Helper()
	e, err := entitlement.NewEntitlement(userID, courseID, entitlement.AccessTypePurchase, expiresAt, nil, nil, "")
	require.NoError(t, err)
	return e
}

func TestEntitlementRepository_UniquePair(t *testing.T) {
	repo := NewEntitlementRepository(newTestDB(t), testLogger())
	ctx := context.Background()

	first := newEntitlement(t, 1, 10, nil)
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID())

	// Second insert for the same (user, course) pair must hit the unique
	// index so the caller can fall back to a refresh.
	second := newEntitlement(t, 1, 10, nil)
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicateError(err))

	// A different course for the same user is fine.
	other := newEntitlement(t, 1, 11, nil)
	require.NoError(t, repo.Create(ctx, other))
}

func TestEntitlementRepository_GetByUserAndCourse(t *testing.T) {
	repo := NewEntitlementRepository(newTestDB(t), testLogger())
	ctx := context.Background()

	created := newEntitlement(t, 7, 3, nil)
	require.NoError(t, repo.Create(ctx, created))

	found, err := repo.GetByUserAndCourse(ctx, 7, 3)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID(), found.ID())
	assert.Equal(t, entitlement.AccessTypePurchase, found.AccessType())

	missing, err := repo.GetByUserAndCourse(ctx, 7, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEntitlementRepository_UpdatePersistsRevocation(t *testing.T) {
	repo := NewEntitlementRepository(newTestDB(t), testLogger())
	ctx := context.Background()

	e := newEntitlement(t, 2, 5, nil)
	require.NoError(t, repo.Create(ctx, e))

	e.Revoke()
	require.NoError(t, repo.Update(ctx, e))

	found, err := repo.GetByUserAndCourse(ctx, 2, 5)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, entitlement.StatusRevoked, found.Status())
	assert.False(t, found.IsActive())
}

func TestEntitlementRepository_GetExpired(t *testing.T) {
	repo := NewEntitlementRepository(newTestDB(t), testLogger())
	ctx := context.Background()

	past := biztime.NowUTC().Add(-time.Hour)
	future := biztime.NowUTC().Add(time.Hour)

	overdue := newEntitlement(t, 1, 1, &past)
	stillValid := newEntitlement(t, 1, 2, &future)
	unlimited := newEntitlement(t, 1, 3, nil)
	otherUser := newEntitlement(t, 2, 1, &past)
	for _, e := range []*entitlement.Entitlement{overdue, stillValid, unlimited, otherUser} {
		require.NoError(t, repo.Create(ctx, e))
	}

	expired, err := repo.GetExpired(ctx, 0)
	require.NoError(t, err)
	require.Len(t, expired, 2)

	scoped, err := repo.GetExpired(ctx, 2)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, uint(2), scoped[0].UserID())

	// Once corrected, the row stops matching the sweep query.
	overdue.Expire()
	require.NoError(t, repo.Update(ctx, overdue))
	expired, err = repo.GetExpired(ctx, 0)
	require.NoError(t, err)
	require.Len(t, expired, 1)
}

func TestEntitlementRepository_DeleteByUser(t *testing.T) {
	repo := NewEntitlementRepository(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEntitlement(t, 4, 1, nil)))
	require.NoError(t, repo.Create(ctx, newEntitlement(t, 4, 2, nil)))
	require.NoError(t, repo.Create(ctx, newEntitlement(t, 5, 1, nil)))

	deleted, err := repo.DeleteByUser(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := repo.GetByUser(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	kept, err := repo.GetByUser(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestEntitlementRepository_OrphanCleanupQueries(t *testing.T) {
	repo := NewEntitlementRepository(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEntitlement(t, 1, 10, nil)))
	require.NoError(t, repo.Create(ctx, newEntitlement(t, 2, 10, nil)))
	require.NoError(t, repo.Create(ctx, newEntitlement(t, 1, 20, nil)))

	courseIDs, err := repo.DistinctCourseIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{10, 20}, courseIDs)

	deleted, err := repo.DeleteByCourseIDs(ctx, []uint{10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deleted, err = repo.DeleteByCourseIDs(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	courseIDs, err = repo.DistinctCourseIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{20}, courseIDs)
}

func TestEntitlementRepository_List(t *testing.T) {
	repo := NewEntitlementRepository(newTestDB(t), testLogger())
	ctx := context.Background()

	for i := uint(1); i <= 5; i++ {
		require.NoError(t, repo.Create(ctx, newEntitlement(t, i, 1, nil)))
	}

	page, total, err := repo.List(ctx, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 3)
	// Newest first.
	assert.Equal(t, uint(5), page[0].UserID())

	rest, _, err := repo.List(ctx, 3, 3)
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}
