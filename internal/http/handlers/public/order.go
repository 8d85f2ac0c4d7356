package public

import (
	"github.com/coursehub-next/internal/http/response"
	"github.com/coursehub-next/internal/repository"
	"github.com/coursehub-next/internal/service"

	"github.com/gin-gonic/gin"
)

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "订单不存在"},
}

// ListMyOrders 我的订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "未登录")
		return
	}
	page, pageSize := parsePageQuery(c)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   c.Query("status"),
	}
	orders, total, err := h.OrderService.ListUserOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取订单列表失败", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.BuildPagination(page, pageSize, total))
}

// GetMyOrder 我的订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "未登录")
		return
	}
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "订单 ID 无效")
		return
	}

	order, err := h.OrderService.GetUserOrder(orderID, userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "获取订单失败")
		return
	}
	response.Success(c, gin.H{"order": order})
}
