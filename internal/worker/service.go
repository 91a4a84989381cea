package worker

import (
	"context"
	"errors"
	"time"

	"github.com/kitlane/internal/config"
	"github.com/kitlane/internal/logger"
	"github.com/kitlane/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	discountSweepInterval = time.Minute
	expiredOrderBatch     = 100
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil {
		go s.runMaintenanceLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runMaintenanceLoop 周期性停用过期规则并兜底取消超时订单。
// 队列任务丢失（如 Redis 清库）时由此保证最终一致。
func (s *Service) runMaintenanceLoop(ctx context.Context) {
	if s == nil || s.consumer == nil {
		return
	}
	runOnce := func() {
		now := time.Now()
		if s.consumer.DiscountService != nil {
			if _, err := s.consumer.DiscountService.DeactivateExpiredRules(now); err != nil {
				logger.Warnw("worker_discount_sweep_failed", "error", err)
			}
		}
		if s.consumer.OrderService != nil && s.consumer.OrderRepo != nil {
			expired, err := s.consumer.OrderRepo.ListExpiredPending(now, expiredOrderBatch)
			if err != nil {
				logger.Warnw("worker_expired_order_scan_failed", "error", err)
				return
			}
			for _, order := range expired {
				if err := s.consumer.OrderService.CancelTimeout(order.ID); err != nil {
					logger.Warnw("worker_expired_order_cancel_failed", "order_id", order.ID, "error", err)
				}
			}
		}
	}
	runOnce()

	ticker := time.NewTicker(discountSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
