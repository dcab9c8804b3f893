package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilig/internal/application/entitlement/dto"
	"bilig/internal/domain/course"
	"bilig/internal/domain/entitlement"
	"bilig/internal/shared/logger"
)

func grantWithExpiry(t *testing.T, uc *GrantAccessUseCase, userID, courseID uint, expiresAt time.Time) {
	t.Helper()
	ts := expiresAt.Format(time.RFC3339)
	_, err := uc.Execute(context.Background(), dto.GrantAccessRequest{
		UserID:     userID,
		CourseID:   courseID,
		AccessType: "purchase",
		ExpiresAt:  &ts,
	})
	require.NoError(t, err)
}

func TestSweepExpired_CorrectsOverdueRecords(t *testing.T) {
	repo := newMemEntitlementRepo()
	grant := NewGrantAccessUseCase(repo, logger.NewLogger())
	sweep := NewSweepExpiredUseCase(repo, logger.NewLogger())
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)
	grantWithExpiry(t, grant, 1, 10, past)
	grantWithExpiry(t, grant, 2, 20, past)
	grantWithExpiry(t, grant, 3, 30, future)

	result, err := sweep.Execute(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ExpiredCount)
	assert.Len(t, result.Pairs, 2)

	// Stored statuses are now corrected.
	e, _ := repo.GetByUserAndCourse(ctx, 1, 10)
	assert.Equal(t, entitlement.StatusExpired, e.Status())
	e, _ = repo.GetByUserAndCourse(ctx, 3, 30)
	assert.Equal(t, entitlement.StatusActive, e.Status())

	// A second sweep finds nothing left to do.
	result, err = sweep.Execute(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExpiredCount)
}

func TestSweepExpired_ScopedToUser(t *testing.T) {
	repo := newMemEntitlementRepo()
	grant := NewGrantAccessUseCase(repo, logger.NewLogger())
	sweep := NewSweepExpiredUseCase(repo, logger.NewLogger())
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Minute)
	grantWithExpiry(t, grant, 1, 10, past)
	grantWithExpiry(t, grant, 2, 20, past)

	result, err := sweep.Execute(ctx, 1)
	require.NoError(t, err)

	require.Equal(t, 1, result.ExpiredCount)
	assert.Equal(t, uint(1), result.Pairs[0].UserID)

	other, _ := repo.GetByUserAndCourse(ctx, 2, 20)
	assert.Equal(t, entitlement.StatusActive, other.Status())
}

type stubCourseRepo struct {
	existing map[uint]bool
}

func (r *stubCourseRepo) Create(ctx context.Context, c *course.Course) error { return nil }
func (r *stubCourseRepo) Update(ctx context.Context, c *course.Course) error { return nil }
func (r *stubCourseRepo) Delete(ctx context.Context, courseID uint) error    { return nil }
func (r *stubCourseRepo) GetByID(ctx context.Context, courseID uint) (*course.Course, error) {
	return nil, nil
}
func (r *stubCourseRepo) GetBySID(ctx context.Context, sid string) (*course.Course, error) {
	return nil, nil
}
func (r *stubCourseRepo) List(ctx context.Context, status course.Status, offset, limit int) ([]*course.Course, int64, error) {
	return nil, 0, nil
}
func (r *stubCourseRepo) ExistingIDs(ctx context.Context, courseIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool)
	for _, courseID := range courseIDs {
		if r.existing[courseID] {
			out[courseID] = true
		}
	}
	return out, nil
}

func TestCleanupOrphans_RemovesDanglingRecords(t *testing.T) {
	repo := newMemEntitlementRepo()
	grant := NewGrantAccessUseCase(repo, logger.NewLogger())
	ctx := context.Background()

	_, err := grant.Execute(ctx, dto.GrantAccessRequest{UserID: 1, CourseID: 10, AccessType: "purchase"})
	require.NoError(t, err)
	_, err = grant.Execute(ctx, dto.GrantAccessRequest{UserID: 2, CourseID: 99, AccessType: "purchase"})
	require.NoError(t, err)

	courses := &stubCourseRepo{existing: map[uint]bool{10: true}}
	cleanup := NewCleanupOrphansUseCase(repo, courses, logger.NewLogger())

	result, err := cleanup.Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.DeletedCount)
	assert.Equal(t, []uint{99}, result.OrphanCourseIDs)

	kept, _ := repo.GetByUserAndCourse(ctx, 1, 10)
	assert.NotNil(t, kept)
	gone, _ := repo.GetByUserAndCourse(ctx, 2, 99)
	assert.Nil(t, gone)
}
