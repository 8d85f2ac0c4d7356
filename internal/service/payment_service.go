package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/coursehub-next/internal/cache"
	"github.com/coursehub-next/internal/constants"
	"github.com/coursehub-next/internal/logger"
	"github.com/coursehub-next/internal/models"
	"github.com/coursehub-next/internal/queue"
	"github.com/coursehub-next/internal/repository"

	"gorm.io/gorm"
)

// 内部拒绝原因，仅用于日志，不对外暴露
const (
	rejectNotInbound         = "not_inbound"
	rejectContentUnparseable = "content_unparseable"
	rejectCourseNotFound     = "course_not_found"
	rejectUserNotFound       = "user_not_found"
	rejectAlreadyEnrolled    = "already_enrolled"
	rejectInsufficientAmount = "insufficient_amount"
)

// BankWebhookInput 银行转账回调载荷
type BankWebhookInput struct {
	TransactionID   int64        `json:"id"`
	Gateway         string       `json:"gateway"`
	TransactionDate string       `json:"transactionDate"`
	AccountNumber   string       `json:"accountNumber"`
	Code            string       `json:"code"`
	Content         string       `json:"content"`
	TransferType    string       `json:"transferType"`
	TransferAmount  models.Money `json:"transferAmount"`
	Accumulated     models.Money `json:"accumulated"`
	SubAccount      string       `json:"subAccount"`
	ReferenceCode   string       `json:"referenceCode"`
	Description     string       `json:"description"`
}

// PaymentService 银行转账对账服务
type PaymentService struct {
	courseRepo     repository.CourseRepository
	userRepo       repository.UserRepository
	orderRepo      repository.OrderRepository
	enrollmentRepo repository.EnrollmentRepository
	queueClient    queue.Enqueuer
}

// NewPaymentService 创建对账服务
func NewPaymentService(
	courseRepo repository.CourseRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	enrollmentRepo repository.EnrollmentRepository,
	queueClient queue.Enqueuer,
) *PaymentService {
	return &PaymentService{
		courseRepo:     courseRepo,
		userRepo:       userRepo,
		orderRepo:      orderRepo,
		enrollmentRepo: enrollmentRepo,
		queueClient:    queueClient,
	}
}

// HandleBankWebhook 处理银行转账回调，完成一笔转账的对账。
//
// 返回值语义：
//   - (true, nil)  转账被确认，订单与报名已原子写入
//   - (false, nil) 转账被拒绝（方向不对、附言无法解析、实体不存在、
//     重复报名、金额不足），拒绝不是错误，网关不应重发
//   - (false, err) 存储层故障，调用方应返回 5xx 让网关重发
func (s *PaymentService) HandleBankWebhook(input BankWebhookInput) (bool, error) {
	log := logger.S().With(
		"transaction_id", input.TransactionID,
		"gateway", input.Gateway,
		"reference_code", input.ReferenceCode,
	)
	log.Infow("payment_callback_received",
		"transfer_type", input.TransferType,
		"amount", input.TransferAmount.String(),
	)

	// 只处理入账。方向比较不区分大小写。
	if !strings.EqualFold(strings.TrimSpace(input.TransferType), constants.TransferDirectionIn) {
		log.Infow("payment_callback_rejected", "reason", rejectNotInbound)
		return false, nil
	}

	intent, ok := parseTransferIntent(input.Content)
	if !ok {
		log.Infow("payment_callback_rejected", "reason", rejectContentUnparseable)
		return false, nil
	}
	log = log.With("course_id", intent.CourseID, "user_id", intent.UserID)

	course, err := s.courseRepo.GetByID(intent.CourseID)
	if err != nil {
		log.Errorw("payment_callback_course_query_failed", "error", err)
		return false, err
	}
	if course == nil {
		log.Infow("payment_callback_rejected", "reason", rejectCourseNotFound)
		return false, nil
	}

	user, err := s.userRepo.GetByID(intent.UserID)
	if err != nil {
		log.Errorw("payment_callback_user_query_failed", "error", err)
		return false, err
	}
	if user == nil {
		log.Infow("payment_callback_rejected", "reason", rejectUserNotFound)
		return false, nil
	}

	// 事务外先行探测，拦截绝大多数重复回调
	enrolled, err := s.enrollmentRepo.ExistsByUserAndCourse(intent.UserID, intent.CourseID)
	if err != nil {
		log.Errorw("payment_callback_enrollment_query_failed", "error", err)
		return false, err
	}
	if enrolled {
		log.Infow("payment_callback_rejected", "reason", rejectAlreadyEnrolled)
		return false, nil
	}

	price := course.EffectivePrice()
	if input.TransferAmount.Decimal.LessThan(price.Decimal) {
		log.Infow("payment_callback_rejected",
			"reason", rejectInsufficientAmount,
			"amount", input.TransferAmount.String(),
			"price", price.String(),
		)
		return false, nil
	}

	now := time.Now()
	order := &models.Order{
		UserID:        intent.UserID,
		TotalAmount:   price,
		Status:        constants.OrderStatusCompleted,
		PaymentMethod: constants.PaymentMethodBankTransfer,
		PaymentStatus: constants.PaymentStatusCompleted,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		enrollmentRepo := s.enrollmentRepo.WithTx(tx)

		// 事务内复查，与唯一索引共同保证并发下至多一条报名
		exists, err := enrollmentRepo.ExistsByUserAndCourse(intent.UserID, intent.CourseID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyEnrolled
		}

		details := []models.OrderDetail{
			{CourseID: intent.CourseID, Price: price},
		}
		if err := s.orderRepo.WithTx(tx).Create(order, details); err != nil {
			return err
		}

		return enrollmentRepo.Create(&models.CourseEnrollment{
			UserID:         intent.UserID,
			CourseID:       intent.CourseID,
			OrderID:        order.ID,
			EnrollmentDate: now,
		})
	})
	if err != nil {
		// 并发竞争的败方会在复查或唯一索引处撞上重复，按重复报名拒绝
		if errors.Is(err, ErrAlreadyEnrolled) || isDuplicateKeyError(err) {
			log.Infow("payment_callback_rejected", "reason", rejectAlreadyEnrolled)
			return false, nil
		}
		log.Errorw("payment_callback_persist_failed", "error", err)
		return false, ErrReconcileFailed
	}

	log.Infow("payment_callback_confirmed",
		"order_id", order.ID,
		"total_amount", price.String(),
	)
	cache.SetEnrollmentPaid(context.Background(), intent.UserID, intent.CourseID)
	s.enqueueEnrollmentEmail(order.ID, user, course)
	return true, nil
}

// CheckPaymentStatus 查询用户是否已购买课程。
// 前端在转账后轮询此接口，已购状态走缓存减少回源。
func (s *PaymentService) CheckPaymentStatus(ctx context.Context, userID, courseID uint) (bool, error) {
	if cache.GetEnrollmentPaid(ctx, userID, courseID) {
		return true, nil
	}
	paid, err := s.enrollmentRepo.ExistsByUserAndCourse(userID, courseID)
	if err != nil {
		return false, err
	}
	if paid {
		cache.SetEnrollmentPaid(ctx, userID, courseID)
	}
	return paid, nil
}

// enqueueEnrollmentEmail 提交报名确认邮件任务，失败只记日志不影响对账结果
func (s *PaymentService) enqueueEnrollmentEmail(orderID uint, user *models.User, course *models.Course) {
	if s.queueClient == nil {
		return
	}
	task, err := queue.NewEnrollmentEmailTask(queue.EnrollmentEmailPayload{
		UserID:      user.ID,
		CourseID:    course.ID,
		OrderID:     orderID,
		Email:       user.Email,
		CourseTitle: course.Title,
	})
	if err != nil {
		logger.S().Warnw("enrollment_email_task_build_failed", "error", err, "order_id", orderID)
		return
	}
	if _, err := s.queueClient.Enqueue(task); err != nil {
		logger.S().Warnw("enrollment_email_enqueue_failed", "error", err, "order_id", orderID)
	}
}

// isDuplicateKeyError 识别唯一索引冲突。
// 各方言的翻译并不总是生效，兜底匹配错误文本。
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key")
}
