package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coursedto "bilig/internal/application/course/dto"
	"bilig/internal/domain/course"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

// CourseHandler serves the course back office.
type CourseHandler struct {
	manageUC manageCourseUseCase
	logger   logger.Interface
}

func NewCourseHandler(manageUC manageCourseUseCase, logger logger.Interface) *CourseHandler {
	return &CourseHandler{
		manageUC: manageUC,
		logger:   logger,
	}
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req coursedto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.manageUC.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Warnw("course creation failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "course created", ToCourseResponse(created))
}

func (h *CourseHandler) Update(c *gin.Context) {
	var req coursedto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	req.CourseSID = c.Param("course_id")

	updated, err := h.manageUC.Update(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "course updated", ToCourseResponse(updated))
}

// UpdateStatusRequest moves a course through its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active archived"`
}

// UpdateStatus publishes or archives a course.
func (h *CourseHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	courseSID := c.Param("course_id")
	var (
		updated *course.Course
		err     error
	)
	if req.Status == "active" {
		updated, err = h.manageUC.Publish(c.Request.Context(), courseSID)
	} else {
		updated, err = h.manageUC.Archive(c.Request.Context(), courseSID)
	}
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "course status updated", ToCourseResponse(updated))
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.manageUC.Delete(c.Request.Context(), c.Param("course_id")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "course deleted", nil)
}

func (h *CourseHandler) AddLesson(c *gin.Context) {
	var req coursedto.AddLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	req.CourseSID = c.Param("course_id")

	updated, err := h.manageUC.AddLesson(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "lesson added", ToCourseResponse(updated))
}

func (h *CourseHandler) RemoveLesson(c *gin.Context) {
	updated, err := h.manageUC.RemoveLesson(c.Request.Context(), c.Param("course_id"), c.Param("lesson_id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "lesson removed", ToCourseResponse(updated))
}
