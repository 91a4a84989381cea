package queue

import (
	"encoding/json"

	"github.com/kitlane/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderTimeoutCancel 超时取消任务
	TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel
	// TaskDiscountExpireSweep 过期折扣规则停用任务
	TaskDiscountExpireSweep = constants.TaskDiscountExpireSweep
)

// OrderTimeoutCancelPayload 超时取消任务载荷
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// DiscountExpireSweepPayload 过期规则停用任务载荷
type DiscountExpireSweepPayload struct{}

// NewOrderTimeoutCancelTask 创建超时取消任务
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderTimeoutCancel, body), nil
}

// NewDiscountExpireSweepTask 创建过期规则停用任务
func NewDiscountExpireSweepTask() (*asynq.Task, error) {
	body, err := json.Marshal(DiscountExpireSweepPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDiscountExpireSweep, body), nil
}
