package public

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/coursehub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// BankWebhook 银行转账回调。
//
// 响应只有三种：确认与拒绝都返回 200 {"success": true/false}，
// 密钥不匹配返回 401，存储故障返回 500 让网关重发。
// 拒绝的具体原因只记日志，不回传给网关。
func (h *Handler) BankWebhook(c *gin.Context) {
	log := requestLog(c)

	if apiKey := strings.TrimSpace(h.Config.Webhook.APIKey); apiKey != "" {
		provided := extractWebhookAPIKey(c)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			log.Warnw("bank_webhook_unauthorized", "client_ip", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"success": false})
			return
		}
	}

	var input service.BankWebhookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warnw("bank_webhook_payload_invalid", "client_ip", c.ClientIP(), "error", err)
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	accepted, err := h.PaymentService.HandleBankWebhook(input)
	if err != nil {
		log.Errorw("bank_webhook_handle_failed", "transaction_id", input.TransactionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": accepted})
}

// extractWebhookAPIKey 兼容 "Apikey xxx" 与裸 token 两种回调鉴权头
func extractWebhookAPIKey(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Apikey") {
		return strings.TrimSpace(parts[1])
	}
	return header
}
