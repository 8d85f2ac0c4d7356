package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
)

// 支付方式常量
const (
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodPaypal       = "paypal"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCrypto       = "crypto"
)

// 支付状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// 银行流水方向常量
const (
	TransferDirectionIn  = "in"
	TransferDirectionOut = "out"
)

// 课程状态常量
const (
	CourseStatusDraft           = "draft"
	CourseStatusPublished       = "published"
	CourseStatusArchived        = "archived"
	CourseStatusPendingApproval = "pending_approval"
	CourseStatusRejected        = "rejected"
)

// 投诉状态常量
const (
	ComplaintStatusOpen     = "open"
	ComplaintStatusResolved = "resolved"
	ComplaintStatusClosed   = "closed"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskEnrollmentEmail = "enrollment:email"
)
