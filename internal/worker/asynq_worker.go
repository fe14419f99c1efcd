package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/brasscraft-shop/internal/logger"
	"github.com/brasscraft-shop/internal/provider"
	"github.com/brasscraft-shop/internal/queue"
	"github.com/brasscraft-shop/internal/service"

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
	mux.HandleFunc(queue.TaskOrderPlacedEmail, c.handleOrderPlacedEmail)
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskPreorderStatusEmail, c.handlePreorderStatusEmail)
	mux.HandleFunc(queue.TaskPasswordResetEmail, c.handlePasswordResetEmail)
}

func (c *Consumer) handleOrderPlacedEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderPlacedEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_placed_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_placed_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if c.EmailService == nil || !c.EmailService.Enabled() {
		logger.Debugw("worker_order_placed_email_skip_email_disabled", "order_id", order.ID)
		return nil
	}

	var sendErr error
	if err := c.EmailService.SendOrderPlacedAdminEmail(order); err != nil {
		if errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_placed_admin_email_skip_no_admin_email", "order_id", order.ID)
		} else {
			logger.Warnw("worker_order_placed_admin_email_send_failed",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"error", err,
			)
			sendErr = err
		}
	}
	if err := c.EmailService.SendOrderPlacedEmail(order); err != nil {
		logger.Warnw("worker_order_placed_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", order.RecipientEmail,
			"error", err,
		)
		return err
	}
	return sendErr
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if c.EmailService == nil || !c.EmailService.Enabled() {
		logger.Debugw("worker_order_status_email_skip_email_disabled", "order_id", order.ID)
		return nil
	}

	status := payload.Status
	if status == "" {
		status = order.Status
	}
	if err := c.EmailService.SendOrderStatusEmail(order, status); err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", order.RecipientEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handlePreorderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.PreorderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_preorder_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.PreorderID == 0 {
		return nil
	}

	preorder, err := c.PreorderRepo.GetByID(payload.PreorderID)
	if err != nil {
		logger.Warnw("worker_preorder_status_email_fetch_failed", "preorder_id", payload.PreorderID, "error", err)
		return err
	}
	if preorder == nil {
		logger.Debugw("worker_preorder_status_email_skip_not_found", "preorder_id", payload.PreorderID)
		return nil
	}
	if c.EmailService == nil || !c.EmailService.Enabled() {
		logger.Debugw("worker_preorder_status_email_skip_email_disabled", "preorder_id", preorder.ID)
		return nil
	}

	status := payload.Status
	if status == "" {
		status = preorder.Status
	}
	if err := c.EmailService.SendPreorderStatusEmail(preorder, status); err != nil {
		logger.Warnw("worker_preorder_status_email_send_failed",
			"preorder_id", preorder.ID,
			"preorder_no", preorder.PreorderNo,
			"receiver_email", preorder.ContactEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handlePasswordResetEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.PasswordResetEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_password_reset_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || payload.Token == "" {
		return nil
	}

	user, err := c.UserRepo.GetByID(payload.UserID)
	if err != nil {
		logger.Warnw("worker_password_reset_email_fetch_user_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	if user == nil {
		logger.Debugw("worker_password_reset_email_skip_user_not_found", "user_id", payload.UserID)
		return nil
	}
	if c.EmailService == nil || !c.EmailService.Enabled() {
		logger.Debugw("worker_password_reset_email_skip_email_disabled", "user_id", user.ID)
		return nil
	}

	if err := c.EmailService.SendPasswordResetEmail(user, payload.Token); err != nil {
		logger.Warnw("worker_password_reset_email_send_failed",
			"user_id", user.ID,
			"receiver_email", user.Email,
			"error", err,
		)
		return err
	}
	return nil
}
