package service

import (
	"strings"
	"time"

	"github.com/kitlane/internal/constants"
)

// allowedTransitions 订单状态机：pending → processing → shipped →
// delivered 的主线，pending/processing/shipped 均可转入 cancelled。
// delivered 与 cancelled 为终态，退款只是 cancelled 上的标记位。
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCancelled: {},
}

// CanTransition 判断订单状态迁移是否合法
func CanTransition(from, to string) bool {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	if from == to {
		return false
	}
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// statusTimestamps 返回迁移目标状态应附带写入的时间字段
func statusTimestamps(to string, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"updated_at": now,
	}
	switch to {
	case constants.OrderStatusShipped:
		updates["shipped_at"] = now
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCancelled:
		updates["canceled_at"] = now
	}
	return updates
}
