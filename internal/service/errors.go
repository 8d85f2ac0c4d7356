package service

import "errors"

// 业务错误定义，由 handler 层映射为统一响应码。
var (
	ErrNotFound             = errors.New("资源不存在")
	ErrEmailTaken           = errors.New("邮箱已被注册")
	ErrInvalidCredentials   = errors.New("邮箱或密码错误")
	ErrUserDisabled         = errors.New("账号已被禁用")
	ErrCourseNotFound       = errors.New("课程不存在")
	ErrOrderNotFound        = errors.New("订单不存在")
	ErrNotEnrolled          = errors.New("尚未报名该课程")
	ErrAlreadyEnrolled      = errors.New("已报名该课程")
	ErrAlreadyReviewed      = errors.New("已评价过该课程")
	ErrRatingInvalid        = errors.New("评分超出范围")
	ErrReconcileFailed      = errors.New("对账写入失败")

	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
	ErrInvalidEmail              = errors.New("邮箱地址无效")
)
