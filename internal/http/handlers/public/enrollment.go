package public

import (
	"github.com/coursehub-next/internal/http/response"
	"github.com/coursehub-next/internal/repository"
	"github.com/coursehub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMyCourses 我的课程（报名记录）
func (h *Handler) ListMyCourses(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "未登录")
		return
	}
	page, pageSize := parsePageQuery(c)

	filter := repository.EnrollmentListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	}
	enrollments, total, err := h.EnrollmentService.ListMyCourses(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取我的课程失败", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"enrollments": enrollments}, response.BuildPagination(page, pageSize, total))
}

// GetPaymentStatus 查询某课程的购买状态。
// 前端在发起转账后轮询此接口，等待对账完成。
func (h *Handler) GetPaymentStatus(c *gin.Context) {
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

	paid, err := h.PaymentService.CheckPaymentStatus(c.Request.Context(), userID, courseID)
	if err != nil {
		respondError(c, response.CodeInternal, "查询支付状态失败", err)
		return
	}
	response.Success(c, gin.H{"paid": paid})
}

var enrollmentErrorRules = []mappedHandlerError{
	{target: service.ErrNotEnrolled, code: response.CodeNotFound, msg: "尚未报名该课程"},
}

// GetMyEnrollment 我在某课程的报名记录（含订单）
func (h *Handler) GetMyEnrollment(c *gin.Context) {
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

	enrollment, err := h.EnrollmentService.GetEnrollment(userID, courseID)
	if err != nil {
		respondWithMappedError(c, err, enrollmentErrorRules, response.CodeInternal, "获取报名记录失败")
		return
	}
	response.Success(c, gin.H{"enrollment": enrollment})
}
