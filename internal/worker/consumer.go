package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/boutique-next/internal/constants"
	"github.com/boutique-next/internal/logger"
	"github.com/boutique-next/internal/provider"
	"github.com/boutique-next/internal/queue"
	"github.com/boutique-next/internal/service"

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
	mux.HandleFunc(queue.TaskOrderEmail, c.handleOrderEmail)
}

func (c *Consumer) handleOrderEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_email_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.OrderID) == "" {
		logger.Debugw("worker_order_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_email_skip_email_service_nil", "order_id", order.ID)
		return nil
	}

	audience := strings.ToLower(strings.TrimSpace(payload.Audience))
	var receiverEmail string
	switch audience {
	case constants.EmailAudienceAdmin:
		receiverEmail = strings.TrimSpace(c.Config.Order.OperatorEmail)
	default:
		audience = constants.EmailAudienceClient
		receiverEmail = strings.TrimSpace(order.CustomerEmail)
	}
	if receiverEmail == "" {
		logger.Debugw("worker_order_email_skip_empty_receiver", "order_id", order.ID, "audience", audience)
		return nil
	}

	if audience == constants.EmailAudienceAdmin {
		err = c.EmailService.SendOperatorNotice(receiverEmail, order)
	} else {
		err = c.EmailService.SendOrderConfirmation(receiverEmail, order)
	}
	if err != nil {
		// 邮件服务关闭或未配置时丢弃任务，配置后也无法补发历史邮件
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_email_skip_service_unavailable", "order_id", order.ID, "error", err)
			return nil
		}
		logger.Warnw("worker_order_email_send_failed",
			"order_id", order.ID,
			"audience", audience,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}
	return nil
}
