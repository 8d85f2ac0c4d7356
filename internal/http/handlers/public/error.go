package public

import (
	"errors"

	"github.com/coursehub-next/internal/http/response"
	"github.com/coursehub-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLog 提供携带 request_id 的日志实例
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.S().With("request_id", id)
		}
	}
	return logger.S()
}

// respondError 返回错误响应，并在有原始错误时记录日志
func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", code,
			"message", msg,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}
