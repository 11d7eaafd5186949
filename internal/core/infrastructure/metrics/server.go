// Package metrics 通过HTTP暴露Prometheus指标
//
// 📊 **指标端点**：
//   - {path}（默认 /metrics）：进程内已注册的全部指标
//   - /healthz：存活检查
//
// 监听地址为空时服务不启动；端口被占用时降级为禁用，不影响节点启动。
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	metricsconfig "github.com/weisyn/sha3pow/internal/config/metrics"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
)

// Server 指标HTTP服务
type Server struct {
	options  *metricsconfig.MetricsOptions
	gatherer prometheus.Gatherer
	logger   log.Logger

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewServer 创建指标服务，gatherer 为 nil 时使用默认注册表
func NewServer(options *metricsconfig.MetricsOptions, gatherer prometheus.Gatherer, logger log.Logger) *Server {
	if options == nil {
		options = metricsconfig.New(nil).GetOptions()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = logimpl.NewNop()
	}
	return &Server{options: options, gatherer: gatherer, logger: logger}
}

// Start 启动指标服务
func (s *Server) Start(ctx context.Context) error {
	if s.options.ListenAddr == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return nil
	}

	// 先创建 listener，避免在 goroutine 中失败却仍输出"已启动"日志
	listener, err := net.Listen("tcp", s.options.ListenAddr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			s.logger.Warnf("指标服务已禁用（地址被占用）: %s", s.options.ListenAddr)
		} else {
			s.logger.Warnf("指标服务已禁用（监听 %s 失败）: %v", s.options.ListenAddr, err)
		}
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(s.options.Path, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.listener = listener
	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  s.options.ReadTimeout,
		WriteTimeout: s.options.WriteTimeout,
	}

	server := s.server
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Errorf("指标服务异常: %v", err)
		}
	}()

	s.logger.Infof("指标服务已启动: http://%s%s", listener.Addr(), s.options.Path)
	return nil
}

// Stop 停止指标服务
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// Addr 返回实际监听地址，未启动时返回空字符串
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
