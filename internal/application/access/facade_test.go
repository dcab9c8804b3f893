package access

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilig/internal/domain/course"
	"bilig/internal/domain/enrollment"
	"bilig/internal/domain/entitlement"
	vo "bilig/internal/domain/shared/valueobjects"
	"bilig/internal/shared/logger"
)

type stubEntitlementRepo struct {
	ent *entitlement.Entitlement
}

func (r *stubEntitlementRepo) Create(ctx context.Context, e *entitlement.Entitlement) error {
	return nil
}
func (r *stubEntitlementRepo) Update(ctx context.Context, e *entitlement.Entitlement) error {
	return nil
}
func (r *stubEntitlementRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*entitlement.Entitlement, error) {
	return r.ent, nil
}
func (r *stubEntitlementRepo) GetByUser(ctx context.Context, userID uint) ([]*entitlement.Entitlement, error) {
	return nil, nil
}
func (r *stubEntitlementRepo) List(ctx context.Context, offset, limit int) ([]*entitlement.Entitlement, int64, error) {
	return nil, 0, nil
}
func (r *stubEntitlementRepo) GetExpired(ctx context.Context, userID uint) ([]*entitlement.Entitlement, error) {
	return nil, nil
}
func (r *stubEntitlementRepo) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}
func (r *stubEntitlementRepo) DeleteByCourseIDs(ctx context.Context, courseIDs []uint) (int64, error) {
	return 0, nil
}
func (r *stubEntitlementRepo) DistinctCourseIDs(ctx context.Context) ([]uint, error) {
	return nil, nil
}

type stubEnrollmentRepo struct {
	completed bool
}

func (r *stubEnrollmentRepo) Create(ctx context.Context, e *enrollment.Enrollment) error { return nil }
func (r *stubEnrollmentRepo) Update(ctx context.Context, e *enrollment.Enrollment) error { return nil }
func (r *stubEnrollmentRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*enrollment.Enrollment, error) {
	return nil, nil
}
func (r *stubEnrollmentRepo) GetByUser(ctx context.Context, userID uint) ([]*enrollment.Enrollment, error) {
	return nil, nil
}
func (r *stubEnrollmentRepo) HasCompleted(ctx context.Context, userID, courseID uint) (bool, error) {
	return r.completed, nil
}
func (r *stubEnrollmentRepo) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}

type stubCourseRepo struct {
	course *course.Course
}

func (r *stubCourseRepo) Create(ctx context.Context, c *course.Course) error { return nil }
func (r *stubCourseRepo) Update(ctx context.Context, c *course.Course) error { return nil }
func (r *stubCourseRepo) Delete(ctx context.Context, courseID uint) error    { return nil }
func (r *stubCourseRepo) GetByID(ctx context.Context, courseID uint) (*course.Course, error) {
	return r.course, nil
}
func (r *stubCourseRepo) GetBySID(ctx context.Context, sid string) (*course.Course, error) {
	return r.course, nil
}
func (r *stubCourseRepo) List(ctx context.Context, status course.Status, offset, limit int) ([]*course.Course, int64, error) {
	return nil, 0, nil
}
func (r *stubCourseRepo) ExistingIDs(ctx context.Context, courseIDs []uint) (map[uint]bool, error) {
	return nil, nil
}

func paidCourse(t *testing.T) *course.Course {
	t.Helper()
	c, err := course.ReconstructCourse(
		10, "crs_test",
		course.BilingualText{MN: "Го хэл", EN: "Go"},
		course.BilingualText{},
		vo.NewMoney(50000, "MNT"),
		course.StatusActive,
		nil,
		time.Now().UTC(), time.Now().UTC(), 1,
	)
	require.NoError(t, err)
	return c
}

func freeCourse(t *testing.T) *course.Course {
	t.Helper()
	c, err := course.ReconstructCourse(
		10, "crs_free",
		course.BilingualText{MN: "Үнэгүй"},
		course.BilingualText{},
		vo.NewMoney(0, "MNT"),
		course.StatusActive,
		nil,
		time.Now().UTC(), time.Now().UTC(), 1,
	)
	require.NoError(t, err)
	return c
}

func activeEntitlement(t *testing.T, expiresAt *time.Time) *entitlement.Entitlement {
	t.Helper()
	e, err := entitlement.NewEntitlement(1, 10, entitlement.AccessTypePurchase, expiresAt, nil, nil, "")
	require.NoError(t, err)
	return e
}

func newTestFacade(ent *entitlement.Entitlement, c *course.Course, completed bool) *Facade {
	return NewFacade(
		&stubEntitlementRepo{ent: ent},
		&stubEnrollmentRepo{completed: completed},
		&stubCourseRepo{course: c},
		logger.NewLogger(),
	)
}

func TestHasAccess_ActiveEntitlement(t *testing.T) {
	f := newTestFacade(activeEntitlement(t, nil), paidCourse(t), false)

	d, err := f.HasAccess(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, SourceEntitlement, d.Source)
}

func TestHasAccess_ExpiredEntitlementDenied(t *testing.T) {
	// Stored status is active but the expiry already passed; no sweep ran.
	past := time.Now().UTC().Add(-time.Hour)
	f := newTestFacade(activeEntitlement(t, &past), paidCourse(t), false)

	d, err := f.HasAccess(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestHasAccess_FreeCourse(t *testing.T) {
	f := newTestFacade(nil, freeCourse(t), false)

	d, err := f.HasAccess(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, SourceFreeCourse, d.Source)
}

func TestHasAccess_CompletedEnrollment(t *testing.T) {
	f := newTestFacade(nil, paidCourse(t), true)

	d, err := f.HasAccess(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, SourceEnrollment, d.Source)
}

func TestHasAccess_NoSource(t *testing.T) {
	f := newTestFacade(nil, paidCourse(t), false)

	d, err := f.HasAccess(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, SourceNone, d.Source)
}

func TestCanWatchLesson_FreePreviewOpenToAll(t *testing.T) {
	c := paidCourse(t)
	_, err := c.AddLesson(course.BilingualText{MN: "Танилцуулга"}, "mux-asset-1", 300, true)
	require.NoError(t, err)
	preview := c.Lessons()[0]

	f := newTestFacade(nil, c, false)

	d, err := f.CanWatchLesson(context.Background(), 0, 10, preview.SID())
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestCanWatchLesson_PaidLessonRequiresAccess(t *testing.T) {
	c := paidCourse(t)
	_, err := c.AddLesson(course.BilingualText{MN: "Хичээл"}, "mux-asset-2", 600, false)
	require.NoError(t, err)
	lesson := c.Lessons()[0]

	f := newTestFacade(nil, c, false)

	d, err := f.CanWatchLesson(context.Background(), 1, 10, lesson.SID())
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}
