package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"

	"corso/internal/models/request_models"
	"corso/internal/services"
	"corso/pkg/utils"
)

type CourseController struct {
	courseService services.CourseServiceInterface
}

func NewCourseController(courseService services.CourseServiceInterface) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// GenerateCourse godoc
// @Summary Generate an optimized course
// @Description Build an ordered visit itinerary from 3-6 saved places, with travel legs, arrival times and an optimization score
// @Tags Courses
// @Accept json
// @Produce json
// @Param request body request_models.GenerateCourseRequest true "Candidate places, optional start point/time, transport mode"
// @Success 200 {object} response_models.Course
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /courses/generate [post]
func (cc *CourseController) GenerateCourse(c *gin.Context) {
	var req request_models.GenerateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	course, err := cc.courseService.GenerateCourse(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, course, "Course generated successfully")
}

// ScoreCourse godoc
// @Summary Score a user-supplied ordering
// @Description Compare a manually ordered sequence of places against the optimal ordering of the same set
// @Tags Courses
// @Accept json
// @Produce json
// @Param request body request_models.ScoreCourseRequest true "Ordered places, optional start point, transport mode"
// @Success 200 {object} response_models.CourseScore
// @Security BearerAuth
// @Router /courses/score [post]
func (cc *CourseController) ScoreCourse(c *gin.Context) {
	var req request_models.ScoreCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	score, err := cc.courseService.ScoreCourse(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, score, "Course scored successfully")
}

// SaveCourse godoc
// @Summary Save a generated course
// @Description Persist a generated course under a user-chosen name and description
// @Tags Courses
// @Accept json
// @Produce json
// @Param request body request_models.SaveCourseRequest true "Course content with name and description"
// @Success 200 {object} response_models.SavedCourseResponse
// @Security BearerAuth
// @Router /courses/save [post]
func (cc *CourseController) SaveCourse(c *gin.Context) {
	var req request_models.SaveCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	saved, err := cc.courseService.SaveCourse(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, saved, "Course saved successfully")
}

func (cc *CourseController) ListSavedCourses(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "5")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.HandleServiceError(c, utils.ErrInvalidPage)
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.HandleServiceError(c, utils.ErrInvalidPageSize)
		return
	}

	userID := c.GetString("user_id")

	courses, err := cc.courseService.ListSavedCourses(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, courses, "Courses fetched successfully")
}

func (cc *CourseController) GetSavedCourse(c *gin.Context) {
	courseID := c.Param("courseId")
	if courseID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Course ID is required")
		return
	}

	userID := c.GetString("user_id")

	course, err := cc.courseService.GetSavedCourse(c.Request.Context(), userID, courseID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, course, "Course fetched successfully")
}

func (cc *CourseController) DeleteSavedCourse(c *gin.Context) {
	courseID := c.Param("courseId")
	if courseID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Course ID is required")
		return
	}

	userID := c.GetString("user_id")

	if err := cc.courseService.DeleteSavedCourse(c.Request.Context(), userID, courseID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Course deleted successfully")
}
