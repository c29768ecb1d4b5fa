package queue

import (
	"encoding/json"

	"github.com/pizzaorder-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
)

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}
