package queue

import (
	"encoding/json"
	"testing"
)

func TestNewOrderTimeoutCancelTask(t *testing.T) {
	task, err := NewOrderTimeoutCancelTask(OrderTimeoutCancelPayload{OrderID: 42})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskOrderTimeoutCancel {
		t.Fatalf("task type want %s got %s", TaskOrderTimeoutCancel, task.Type())
	}

	var payload OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.OrderID != 42 {
		t.Fatalf("order id want 42 got %d", payload.OrderID)
	}
}

func TestNewDiscountExpireSweepTask(t *testing.T) {
	task, err := NewDiscountExpireSweepTask()
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskDiscountExpireSweep {
		t.Fatalf("task type want %s got %s", TaskDiscountExpireSweep, task.Type())
	}
}

func TestClientDisabledIsNoOp(t *testing.T) {
	var client *Client

	if client.Enabled() {
		t.Fatalf("nil client must report disabled")
	}
	if err := client.EnqueueOrderTimeoutCancel(OrderTimeoutCancelPayload{OrderID: 1}, 0); err != nil {
		t.Fatalf("nil client enqueue must be a no-op, got %v", err)
	}
	if err := client.EnqueueDiscountExpireSweep(0); err != nil {
		t.Fatalf("nil client enqueue must be a no-op, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("nil client close must be a no-op, got %v", err)
	}
}
