package queue

import (
	"encoding/json"

	"github.com/boutique-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderEmail 下单成功后的邮件通知任务
	TaskOrderEmail = constants.TaskOrderEmail
)

// OrderEmailPayload 订单邮件任务载荷。
// Audience 区分客户确认邮件与运营方新订单通知。
type OrderEmailPayload struct {
	OrderID  string `json:"order_id"`
	Audience string `json:"audience"`
}

// NewOrderEmailTask 创建订单邮件任务
func NewOrderEmailTask(payload OrderEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderEmail, body), nil
}
