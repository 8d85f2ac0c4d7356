package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/coursehub-next/internal/constants"
	"github.com/coursehub-next/internal/logger"
	"github.com/coursehub-next/internal/provider"
	"github.com/coursehub-next/internal/queue"
	"github.com/coursehub-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(constants.TaskEnrollmentEmail, c.handleEnrollmentEmail)
}

func (c *Consumer) handleEnrollmentEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_enrollment_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.EnrollmentEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_enrollment_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.UserID == 0 {
		logger.Debugw("worker_enrollment_email_skip_invalid_payload",
			"order_id", payload.OrderID, "user_id", payload.UserID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_enrollment_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_enrollment_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	receiverEmail := strings.TrimSpace(payload.Email)
	if receiverEmail == "" {
		user, err := c.UserRepo.GetByID(payload.UserID)
		if err != nil {
			logger.Warnw("worker_enrollment_email_fetch_user_failed", "user_id", payload.UserID, "error", err)
			return err
		}
		if user != nil {
			receiverEmail = strings.TrimSpace(user.Email)
		}
	}
	if receiverEmail == "" {
		logger.Debugw("worker_enrollment_email_skip_empty_receiver", "order_id", order.ID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_enrollment_email_skip_email_service_nil", "order_id", order.ID)
		return nil
	}

	input := service.EnrollmentEmailInput{
		CourseTitle: payload.CourseTitle,
		OrderID:     order.ID,
		Amount:      order.TotalAmount,
	}
	if err := c.EmailService.SendEnrollmentEmail(receiverEmail, input); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailServiceDisabled),
			errors.Is(err, service.ErrEmailServiceNotConfigured):
			logger.Debugw("worker_enrollment_email_skip_disabled", "order_id", order.ID)
			return nil
		case errors.Is(err, service.ErrInvalidEmail):
			logger.Debugw("worker_enrollment_email_skip_invalid_receiver", "order_id", order.ID)
			return nil
		default:
			logger.Warnw("worker_enrollment_email_send_failed",
				"order_id", order.ID,
				"receiver_email", receiverEmail,
				"error", err,
			)
			return err
		}
	}
	return nil
}
