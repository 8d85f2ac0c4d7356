package public

import (
	"github.com/coursehub-next/internal/http/response"
	"github.com/coursehub-next/internal/repository"
	"github.com/coursehub-next/internal/service"

	"github.com/gin-gonic/gin"
)

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrCourseNotFound, code: response.CodeNotFound, msg: "课程不存在"},
	{target: service.ErrNotEnrolled, code: response.CodeForbidden, msg: "报名后才能评价"},
	{target: service.ErrAlreadyReviewed, code: response.CodeConflict, msg: "已评价过该课程"},
	{target: service.ErrRatingInvalid, code: response.CodeBadRequest, msg: "评分须在 1-5 之间"},
}

// ListCourseReviews 课程评价列表
func (h *Handler) ListCourseReviews(c *gin.Context) {
	courseID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "课程 ID 无效")
		return
	}
	page, pageSize := parsePageQuery(c)

	filter := repository.ReviewListFilter{
		Page:     page,
		PageSize: pageSize,
		CourseID: courseID,
	}
	reviews, total, err := h.CourseReviewService.ListCourseReviews(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取评价列表失败", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"reviews": reviews}, response.BuildPagination(page, pageSize, total))
}

// CreateCourseReview 提交课程评价
func (h *Handler) CreateCourseReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "未登录")
		return
	}
	courseID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "课程 ID 无效")
		return
	}

	var input service.CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "参数无效", err)
		return
	}

	review, err := h.CourseReviewService.CreateReview(userID, courseID, input)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "提交评价失败")
		return
	}
	response.Success(c, gin.H{"review": review})
}
