package public

import (
	"strconv"

	"github.com/coursehub-next/internal/http/response"
	"github.com/coursehub-next/internal/repository"
	"github.com/coursehub-next/internal/service"

	"github.com/gin-gonic/gin"
)

var courseErrorRules = []mappedHandlerError{
	{target: service.ErrCourseNotFound, code: response.CodeNotFound, msg: "课程不存在"},
}

// ListCourses 课程列表
func (h *Handler) ListCourses(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)
	levelID, _ := strconv.ParseUint(c.Query("level_id"), 10, 32)

	filter := repository.CourseListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: uint(categoryID),
		LevelID:    uint(levelID),
		Search:     c.Query("search"),
	}
	courses, total, err := h.CourseService.ListCourses(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取课程列表失败", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"courses": courses}, response.BuildPagination(page, pageSize, total))
}

// GetCourse 课程详情
func (h *Handler) GetCourse(c *gin.Context) {
	courseID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "课程 ID 无效")
		return
	}

	detail, err := h.CourseService.GetCourseDetail(courseID)
	if err != nil {
		respondWithMappedError(c, err, courseErrorRules, response.CodeInternal, "获取课程详情失败")
		return
	}
	response.Success(c, gin.H{"course": detail})
}

// ListCourseLessons 课程课时列表，报名后才返回内容字段
func (h *Handler) ListCourseLessons(c *gin.Context) {
	courseID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "课程 ID 无效")
		return
	}

	lessons, err := h.LessonService.ListCourseLessons(courseID, optionalUserID(c))
	if err != nil {
		respondWithMappedError(c, err, courseErrorRules, response.CodeInternal, "获取课时列表失败")
		return
	}
	response.Success(c, gin.H{"lessons": lessons})
}

var lessonErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "课时不存在"},
	{target: service.ErrNotEnrolled, code: response.CodeForbidden, msg: "报名后才能学习课时"},
}

// GetLesson 课时内容
func (h *Handler) GetLesson(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "未登录")
		return
	}
	lessonID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "课时 ID 无效")
		return
	}

	lesson, err := h.LessonService.GetLesson(lessonID, userID)
	if err != nil {
		respondWithMappedError(c, err, lessonErrorRules, response.CodeInternal, "获取课时失败")
		return
	}
	response.Success(c, gin.H{"lesson": lesson})
}
