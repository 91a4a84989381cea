package app

import (
	"context"
	"errors"
	"net/http"
)

// HTTPService 商城 API 组件，把 gin 引擎包装成可被 Runner 托管的组件。
// Stop 走 http.Server 的优雅停机，等待在途请求完成。
type HTTPService struct {
	name   string
	server *http.Server
}

// NewHTTPService 创建商城 API 组件
func NewHTTPService(addr string, handler http.Handler) *HTTPService {
	return &HTTPService{
		name: "storefront-api",
		server: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
	}
}

// Name 组件名称
func (s *HTTPService) Name() string {
	if s == nil || s.name == "" {
		return "storefront-api"
	}
	return s.name
}

// Start 启动监听，正常停机时不作为错误返回
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅停机
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
