package queue

import (
	"encoding/json"

	"github.com/brasscraft-shop/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlacedEmail 下单确认邮件任务
	TaskOrderPlacedEmail = constants.TaskOrderPlacedEmail
	// TaskOrderStatusEmail 订单状态变更邮件任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskPreorderStatusEmail 预订单状态变更邮件任务
	TaskPreorderStatusEmail = constants.TaskPreorderStatusEmail
	// TaskPasswordResetEmail 密码重置邮件任务
	TaskPasswordResetEmail = constants.TaskPasswordResetEmail
)

// OrderPlacedEmailPayload 下单确认邮件任务载荷
type OrderPlacedEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// PreorderStatusEmailPayload 预订单状态邮件任务载荷
type PreorderStatusEmailPayload struct {
	PreorderID uint   `json:"preorder_id"`
	Status     string `json:"status"`
}

// PasswordResetEmailPayload 密码重置邮件任务载荷
type PasswordResetEmailPayload struct {
	UserID uint   `json:"user_id"`
	Token  string `json:"token"`
}

// NewOrderPlacedEmailTask 创建下单确认邮件任务
func NewOrderPlacedEmailTask(payload OrderPlacedEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlacedEmail, body), nil
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewPreorderStatusEmailTask 创建预订单状态邮件任务
func NewPreorderStatusEmailTask(payload PreorderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPreorderStatusEmail, body), nil
}

// NewPasswordResetEmailTask 创建密码重置邮件任务
func NewPasswordResetEmailTask(payload PasswordResetEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPasswordResetEmail, body), nil
}
