package public

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// getUserID 从 gin 上下文读取鉴权中间件写入的用户 ID
func getUserID(c *gin.Context) (uint, bool) {
	value, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// optionalUserID 可选登录场景，未登录返回 0
func optionalUserID(c *gin.Context) uint {
	id, ok := getUserID(c)
	if !ok {
		return 0
	}
	return id
}

// parseUintParam 解析路径参数中的正整数 ID
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parsePageQuery 解析分页查询参数
func parsePageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
