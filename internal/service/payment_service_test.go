package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coursehub-next/internal/constants"
	"github.com/coursehub-next/internal/models"
	"github.com/coursehub-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPaymentServiceTest(t *testing.T) (*PaymentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payment_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Order{},
		&models.OrderDetail{},
		&models.CourseEnrollment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	courseRepo := repository.NewCourseRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	svc := NewPaymentService(courseRepo, userRepo, orderRepo, enrollmentRepo, nil)

	return svc, db
}

func money(t *testing.T, amount string) models.Money {
	t.Helper()
	m, err := models.NewMoneyFromString(amount)
	if err != nil {
		t.Fatalf("parse money %q failed: %v", amount, err)
	}
	return m
}

func moneyPtr(t *testing.T, amount string) *models.Money {
	t.Helper()
	m := money(t, amount)
	return &m
}

func seedUserAndCourse(t *testing.T, db *gorm.DB, price, discount string) (*models.User, *models.Course) {
	t.Helper()
	user := &models.User{
		Email:        fmt.Sprintf("student_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hash",
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	course := &models.Course{
		Title:    "Go 从入门到实战",
		Price:    money(t, price),
		SellerID: 99,
		Status:   constants.CourseStatusPublished,
	}
	if discount != "" {
		course.DiscountPrice = moneyPtr(t, discount)
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course failed: %v", err)
	}
	return user, course
}

func bankInput(courseID, userID uint, transferType, amount string, t *testing.T) BankWebhookInput {
	t.Helper()
	return BankWebhookInput{
		TransactionID:  12345,
		Gateway:        "MBBank",
		AccountNumber:  "0359123456",
		Content:        fmt.Sprintf("MBVCB.7777.COURSE%dUSER%d.CT tu khach", courseID, userID),
		TransferType:   transferType,
		TransferAmount: money(t, amount),
		ReferenceCode:  "FT25100001",
	}
}

func TestHandleBankWebhookConfirmsTransfer(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	user, course := seedUserAndCourse(t, db, "100.00", "80.00")

	accepted, err := svc.HandleBankWebhook(bankInput(course.ID, user.ID, "in", "80.00", t))
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if !accepted {
		t.Fatalf("expected transfer to be accepted")
	}

	var order models.Order
	if err := db.Preload("Details").Where("user_id = ?", user.ID).First(&order).Error; err != nil {
		t.Fatalf("fetch order failed: %v", err)
	}
	if order.Status != constants.OrderStatusCompleted {
		t.Fatalf("expected completed order, got %s", order.Status)
	}
	if order.PaymentMethod != constants.PaymentMethodBankTransfer {
		t.Fatalf("expected bank_transfer method, got %s", order.PaymentMethod)
	}
	if order.PaymentStatus != constants.PaymentStatusCompleted {
		t.Fatalf("expected completed payment status, got %s", order.PaymentStatus)
	}
	if !order.TotalAmount.Decimal.Equal(decimal.RequireFromString("80.00")) {
		t.Fatalf("expected total 80.00, got %s", order.TotalAmount.String())
	}
	if len(order.Details) != 1 || order.Details[0].CourseID != course.ID {
		t.Fatalf("unexpected order details: %+v", order.Details)
	}
	if !order.Details[0].Price.Decimal.Equal(decimal.RequireFromString("80.00")) {
		t.Fatalf("expected detail price 80.00, got %s", order.Details[0].Price.String())
	}

	var enrollment models.CourseEnrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error; err != nil {
		t.Fatalf("fetch enrollment failed: %v", err)
	}
	if enrollment.OrderID != order.ID {
		t.Fatalf("enrollment linked to order %d, want %d", enrollment.OrderID, order.ID)
	}
	if enrollment.EnrollmentDate.IsZero() {
		t.Fatalf("expected enrollment date to be set")
	}
}

func TestHandleBankWebhookReplayRejected(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	user, course := seedUserAndCourse(t, db, "100.00", "")

	accepted, err := svc.HandleBankWebhook(bankInput(course.ID, user.ID, "in", "100.00", t))
	if err != nil || !accepted {
		t.Fatalf("first transfer: accepted=%v err=%v", accepted, err)
	}

	// 网关重发同一笔转账，拒绝但不报错
	accepted, err = svc.HandleBankWebhook(bankInput(course.ID, user.ID, "in", "100.00", t))
	if err != nil {
		t.Fatalf("replay returned error: %v", err)
	}
	if accepted {
		t.Fatalf("expected replay to be rejected")
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 1 {
		t.Fatalf("expected exactly 1 order, got %d", orderCount)
	}
	var enrollmentCount int64
	if err := db.Model(&models.CourseEnrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&enrollmentCount).Error; err != nil {
		t.Fatalf("count enrollments failed: %v", err)
	}
	if enrollmentCount != 1 {
		t.Fatalf("expected exactly 1 enrollment, got %d", enrollmentCount)
	}
}

func TestHandleBankWebhookAmountBoundary(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	user, course := seedUserAndCourse(t, db, "100.00", "80.00")

	// 差一分钱也不行
	accepted, err := svc.HandleBankWebhook(bankInput(course.ID, user.ID, "in", "79.99", t))
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if accepted {
		t.Fatalf("expected underpaid transfer to be rejected")
	}

	// 正好等于生效价格可以
	accepted, err = svc.HandleBankWebhook(bankInput(course.ID, user.ID, "in", "80.00", t))
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if !accepted {
		t.Fatalf("expected exact amount to be accepted")
	}
}

func TestHandleBankWebhookOverpaymentAccepted(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	user, course := seedUserAndCourse(t, db, "100.00", "")

	accepted, err := svc.HandleBankWebhook(bankInput(course.ID, user.ID, "in", "150.00", t))
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if !accepted {
		t.Fatalf("expected overpayment to be accepted")
	}

	// 订单金额记生效价格而非转账金额
	var order models.Order
	if err := db.Where("user_id = ?", user.ID).First(&order).Error; err != nil {
		t.Fatalf("fetch order failed: %v", err)
	}
	if !order.TotalAmount.Decimal.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected total 100.00, got %s", order.TotalAmount.String())
	}
}

func TestHandleBankWebhookDiscountNotBelowPriceIgnored(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	user, course := seedUserAndCourse(t, db, "100.00", "100.00")

	// 优惠价未低于原价时不生效，按原价对账
	accepted, err := svc.HandleBankWebhook(bankInput(course.ID, user.ID, "in", "99.99", t))
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if accepted {
		t.Fatalf("expected transfer below list price to be rejected")
	}

	accepted, err = svc.HandleBankWebhook(bankInput(course.ID, user.ID, "in", "100.00", t))
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if !accepted {
		t.Fatalf("expected list price transfer to be accepted")
	}
}

func TestHandleBankWebhookDirection(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	user, course := seedUserAndCourse(t, db, "100.00", "")

	accepted, err := svc.HandleBankWebhook(bankInput(course.ID, user.ID, "out", "100.00", t))
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if accepted {
		t.Fatalf("expected outbound transfer to be rejected")
	}

	// 方向比较不区分大小写
	accepted, err = svc.HandleBankWebhook(bankInput(course.ID, user.ID, "IN", "100.00", t))
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if !accepted {
		t.Fatalf("expected uppercase inbound transfer to be accepted")
	}
}

func TestHandleBankWebhookUnparseableContent(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	user, course := seedUserAndCourse(t, db, "100.00", "")

	input := bankInput(course.ID, user.ID, "in", "100.00", t)
	input.Content = "chuyen tien an trua"
	accepted, err := svc.HandleBankWebhook(input)
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if accepted {
		t.Fatalf("expected unparseable content to be rejected")
	}
}

func TestHandleBankWebhookUnknownEntities(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	user, course := seedUserAndCourse(t, db, "100.00", "")

	accepted, err := svc.HandleBankWebhook(bankInput(9999, user.ID, "in", "100.00", t))
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if accepted {
		t.Fatalf("expected unknown course to be rejected")
	}

	accepted, err = svc.HandleBankWebhook(bankInput(course.ID, 9999, "in", "100.00", t))
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if accepted {
		t.Fatalf("expected unknown user to be rejected")
	}
}

func TestHandleBankWebhookExistingEnrollmentRejected(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	user, course := seedUserAndCourse(t, db, "100.00", "")

	// 此前已通过其他渠道写入的报名记录同样拦截重复购买
	enrollment := &models.CourseEnrollment{
		UserID:         user.ID,
		CourseID:       course.ID,
		OrderID:        777,
		EnrollmentDate: time.Now(),
	}
	if err := db.Create(enrollment).Error; err != nil {
		t.Fatalf("seed enrollment failed: %v", err)
	}

	accepted, err := svc.HandleBankWebhook(bankInput(course.ID, user.ID, "in", "100.00", t))
	if err != nil {
		t.Fatalf("HandleBankWebhook error: %v", err)
	}
	if accepted {
		t.Fatalf("expected already enrolled user to be rejected")
	}
}

func TestHandleBankWebhookConcurrentDeliveries(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	user, course := seedUserAndCourse(t, db, "100.00", "")

	// 网关并发投递同一笔转账，事务内复查与唯一索引保证恰好一次确认
	const deliveries = 8
	input := bankInput(course.ID, user.ID, "in", "100.00", t)

	var wg sync.WaitGroup
	var acceptedCount int64
	errCh := make(chan error, deliveries)
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			accepted, err := svc.HandleBankWebhook(input)
			if err != nil {
				errCh <- err
				return
			}
			if accepted {
				atomic.AddInt64(&acceptedCount, 1)
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("concurrent delivery returned error: %v", err)
	}

	if acceptedCount != 1 {
		t.Fatalf("expected exactly 1 accepted delivery, got %d", acceptedCount)
	}
	var orderCount int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 1 {
		t.Fatalf("expected exactly 1 order, got %d", orderCount)
	}
	var enrollmentCount int64
	if err := db.Model(&models.CourseEnrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&enrollmentCount).Error; err != nil {
		t.Fatalf("count enrollments failed: %v", err)
	}
	if enrollmentCount != 1 {
		t.Fatalf("expected exactly 1 enrollment, got %d", enrollmentCount)
	}
}

func TestCheckPaymentStatus(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	user, course := seedUserAndCourse(t, db, "50.00", "")
	ctx := context.Background()

	paid, err := svc.CheckPaymentStatus(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("CheckPaymentStatus error: %v", err)
	}
	if paid {
		t.Fatalf("expected unpaid before transfer")
	}

	accepted, err := svc.HandleBankWebhook(bankInput(course.ID, user.ID, "in", "50.00", t))
	if err != nil || !accepted {
		t.Fatalf("transfer: accepted=%v err=%v", accepted, err)
	}

	paid, err = svc.CheckPaymentStatus(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("CheckPaymentStatus error: %v", err)
	}
	if !paid {
		t.Fatalf("expected paid after confirmed transfer")
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	if !isDuplicateKeyError(gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey to be recognized")
	}
	if !isDuplicateKeyError(fmt.Errorf("UNIQUE constraint failed: course_enrollments.user_id")) {
		t.Fatalf("expected sqlite unique violation text to be recognized")
	}
	if !isDuplicateKeyError(fmt.Errorf(`duplicate key value violates unique constraint "idx_enrollments_user_course"`)) {
		t.Fatalf("expected postgres unique violation text to be recognized")
	}
	if isDuplicateKeyError(nil) {
		t.Fatalf("nil is not a duplicate key error")
	}
	if isDuplicateKeyError(fmt.Errorf("connection refused")) {
		t.Fatalf("unrelated error misclassified")
	}
}
