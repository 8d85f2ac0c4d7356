package public

import (
	"github.com/coursehub-next/internal/http/response"
	"github.com/coursehub-next/internal/repository"
	"github.com/coursehub-next/internal/service"

	"github.com/gin-gonic/gin"
)

var complaintErrorRules = []mappedHandlerError{
	{target: service.ErrCourseNotFound, code: response.CodeNotFound, msg: "课程不存在"},
	{target: service.ErrNotEnrolled, code: response.CodeForbidden, msg: "报名后才能投诉"},
}

// CreateComplaint 提交课程投诉
func (h *Handler) CreateComplaint(c *gin.Context) {
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

	var input service.CreateComplaintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "参数无效", err)
		return
	}

	complaint, err := h.ComplaintService.CreateComplaint(userID, courseID, input)
	if err != nil {
		respondWithMappedError(c, err, complaintErrorRules, response.CodeInternal, "提交投诉失败")
		return
	}
	response.Success(c, gin.H{"complaint": complaint})
}

// ListMyComplaints 我的投诉列表
func (h *Handler) ListMyComplaints(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "未登录")
		return
	}
	page, pageSize := parsePageQuery(c)

	filter := repository.ComplaintListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   c.Query("status"),
	}
	complaints, total, err := h.ComplaintService.ListMyComplaints(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取投诉列表失败", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"complaints": complaints}, response.BuildPagination(page, pageSize, total))
}
