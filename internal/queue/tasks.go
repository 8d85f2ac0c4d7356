package queue

import (
	"encoding/json"

	"github.com/coursehub-next/internal/constants"

	"github.com/hibiken/asynq"
)

// EnrollmentEmailPayload 报名确认邮件任务载荷
type EnrollmentEmailPayload struct {
	UserID      uint   `json:"user_id"`
	CourseID    uint   `json:"course_id"`
	OrderID     uint   `json:"order_id"`
	Email       string `json:"email"`
	CourseTitle string `json:"course_title"`
}

// NewEnrollmentEmailTask 构造报名确认邮件任务
func NewEnrollmentEmailTask(payload EnrollmentEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskEnrollmentEmail, data,
		asynq.Queue(constants.QueueDefault),
		asynq.MaxRetry(5),
	), nil
}
