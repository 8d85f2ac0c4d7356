package public

import (
	"github.com/coursehub-next/internal/http/response"
	"github.com/coursehub-next/internal/service"

	"github.com/gin-gonic/gin"
)

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrEmailTaken, code: response.CodeConflict, msg: "邮箱已被注册"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "邮箱或密码错误"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: "账号已被禁用"},
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "参数无效", err)
		return
	}

	user, err := h.UserAuthService.Register(input)
	if err != nil {
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "注册失败")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// LoginRequest 登录参数
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数无效", err)
		return
	}

	user, token, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "登录失败")
		return
	}
	response.Success(c, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me 当前登录用户信息
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "未登录")
		return
	}

	user, err := h.UserAuthService.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取用户信息失败", err)
		return
	}
	response.Success(c, gin.H{"user": user})
}
