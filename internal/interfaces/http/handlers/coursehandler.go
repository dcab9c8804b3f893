package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bilig/internal/domain/user"
	"bilig/internal/interfaces/http/middleware"
	"bilig/internal/shared/constants"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

// CourseHandler serves the public catalog, lesson playback and lesson
// progress endpoints.
type CourseHandler struct {
	catalogUC        catalogUseCase
	completeLessonUC completeLessonUseCase
	logger           logger.Interface
}

func NewCourseHandler(
	catalogUC catalogUseCase,
	completeLessonUC completeLessonUseCase,
	logger logger.Interface,
) *CourseHandler {
	return &CourseHandler{
		catalogUC:        catalogUC,
		completeLessonUC: completeLessonUC,
		logger:           logger,
	}
}

// List serves the catalog page. The status filter is honored for admins
// only; everyone else sees active courses.
func (h *CourseHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	isAdmin := requesterIsAdmin(c)

	courses, total, err := h.catalogUC.List(
		c.Request.Context(),
		c.Query("status"),
		isAdmin,
		middleware.Lang(c),
		pagination.Offset(),
		pagination.PageSize,
	)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "",
		utils.NewListResponse(courses, total, pagination.Page, pagination.PageSize))
}

// Get serves the course detail view with its lesson list.
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.catalogUC.Get(
		c.Request.Context(),
		c.Param("course_id"),
		requesterID(c),
		requesterIsAdmin(c),
		middleware.Lang(c),
	)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", course)
}

// WatchLesson resolves the playable video asset for a lesson.
func (h *CourseHandler) WatchLesson(c *gin.Context) {
	lesson, err := h.catalogUC.WatchLesson(
		c.Request.Context(),
		c.Param("course_id"),
		c.Param("lesson_id"),
		requesterID(c),
		middleware.Lang(c),
	)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", lesson)
}

// CompleteLesson marks a lesson finished for the authenticated account.
func (h *CourseHandler) CompleteLesson(c *gin.Context) {
	userID := requesterID(c)
	if userID == 0 {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	progress, err := h.completeLessonUC.Execute(
		c.Request.Context(),
		userID,
		c.Param("course_id"),
		c.Param("lesson_id"),
	)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "lesson completed", progress)
}

// requesterID returns the authenticated account ID, or zero for anonymous
// requests.
func requesterID(c *gin.Context) uint {
	if v, exists := c.Get(constants.ContextKeyUserID); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func requesterIsAdmin(c *gin.Context) bool {
	return c.GetString(constants.ContextKeyUserRole) == user.RoleAdmin.String()
}
