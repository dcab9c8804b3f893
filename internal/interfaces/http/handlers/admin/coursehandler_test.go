package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coursedto "bilig/internal/application/course/dto"
	"bilig/internal/domain/course"
	vo "bilig/internal/domain/shared/valueobjects"
	"bilig/internal/interfaces/http/handlers/testutil"
	"bilig/internal/shared/errors"
)

type mockManageCourseUC struct {
	course  *course.Course
	err     error
	lastReq interface{}
}

func (m *mockManageCourseUC) Create(ctx context.Context, request coursedto.CreateCourseRequest) (*course.Course, error) {
	m.lastReq = request
	return m.course, m.err
}

func (m *mockManageCourseUC) Update(ctx context.Context, request coursedto.UpdateCourseRequest) (*course.Course, error) {
	m.lastReq = request
	return m.course, m.err
}

func (m *mockManageCourseUC) Publish(ctx context.Context, courseSID string) (*course.Course, error) {
	return m.course, m.err
}

func (m *mockManageCourseUC) Archive(ctx context.Context, courseSID string) (*course.Course, error) {
	return m.course, m.err
}

func (m *mockManageCourseUC) Delete(ctx context.Context, courseSID string) error {
	return m.err
}

func (m *mockManageCourseUC) AddLesson(ctx context.Context, request coursedto.AddLessonRequest) (*course.Course, error) {
	m.lastReq = request
	return m.course, m.err
}

func (m *mockManageCourseUC) RemoveLesson(ctx context.Context, courseSID, lessonSID string) (*course.Course, error) {
	return m.course, m.err
}

func draftCourse(t *testing.T) *course.Course {
	t.Helper()
	price := vo.NewMoney(150000, "MNT")
	c, err := course.NewCourse(
		course.BilingualText{MN: "Го хэлний үндэс", EN: "Go Fundamentals"},
		course.BilingualText{MN: "# Тайлбар", EN: "# Description"},
		price,
	)
	require.NoError(t, err)
	require.NoError(t, c.SetID(3))
	return c
}

func TestCourseHandler_Create(t *testing.T) {
	uc := &mockManageCourseUC{course: draftCourse(t)}
	h := NewCourseHandler(uc, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/courses", gin.H{
		"title":    gin.H{"mn": "Го хэлний үндэс", "en": "Go Fundamentals"},
		"amount":   150000,
		"currency": "MNT",
	})
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data CourseResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Go Fundamentals", resp.Data.Title.EN)
	assert.Equal(t, "draft", resp.Data.Status)
}

func TestCourseHandler_UpdateStatusPublishes(t *testing.T) {
	published := draftCourse(t)
	lesson, err := published.AddLesson(course.BilingualText{MN: "Эхлэл"}, "asset-1", 300, true)
	require.NoError(t, err)
	require.NotNil(t, lesson)
	require.NoError(t, published.Publish())

	uc := &mockManageCourseUC{course: published}
	h := NewCourseHandler(uc, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/admin/courses/crs_1/status", gin.H{
		"status": "active",
	})
	testutil.SetURLParam(c, "course_id", "crs_1")
	h.UpdateStatus(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data CourseResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "active", resp.Data.Status)
}

func TestCourseHandler_UpdateStatusRejectsUnknown(t *testing.T) {
	h := NewCourseHandler(&mockManageCourseUC{}, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/admin/courses/crs_1/status", gin.H{
		"status": "hidden",
	})
	testutil.SetURLParam(c, "course_id", "crs_1")
	h.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseHandler_AddLesson(t *testing.T) {
	withLesson := draftCourse(t)
	_, err := withLesson.AddLesson(course.BilingualText{MN: "Эхлэл", EN: "Intro"}, "asset-1", 300, false)
	require.NoError(t, err)

	uc := &mockManageCourseUC{course: withLesson}
	h := NewCourseHandler(uc, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/courses/crs_1/lessons", gin.H{
		"title":          gin.H{"mn": "Эхлэл", "en": "Intro"},
		"video_asset_id": "asset-1",
		"duration_sec":   300,
	})
	testutil.SetURLParam(c, "course_id", "crs_1")
	h.AddLesson(c)

	require.Equal(t, http.StatusCreated, w.Code)
	req, ok := uc.lastReq.(coursedto.AddLessonRequest)
	require.True(t, ok)
	assert.Equal(t, "crs_1", req.CourseSID)

	var resp struct {
		Data CourseResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Lessons, 1)
	assert.Equal(t, "asset-1", resp.Data.Lessons[0].VideoAssetID)
}

func TestCourseHandler_DeleteConflict(t *testing.T) {
	uc := &mockManageCourseUC{err: errors.NewConflictError("course has paid orders")}
	h := NewCourseHandler(uc, discardLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/v1/admin/courses/crs_1", nil)
	testutil.SetURLParam(c, "course_id", "crs_1")
	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
