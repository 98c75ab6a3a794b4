package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/voxbridge/api/handlers"
	"github.com/BaSui01/voxbridge/config"
	"github.com/BaSui01/voxbridge/internal/metrics"
	"github.com/BaSui01/voxbridge/internal/server"
	"github.com/BaSui01/voxbridge/service"
	"github.com/BaSui01/voxbridge/web"
)

// =============================================================================
// 🖥️ Server 结构
// =============================================================================

// Server 是 VoxBridge 的主服务器
type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	facade    *service.Facade
	collector *metrics.Collector
	handler   http.Handler

	// 服务器管理器
	httpManager    *server.Manager
	metricsManager *server.Manager
}

// ServerOption 配置 Server
type ServerOption func(*serverOptions)

type serverOptions struct {
	collector   *metrics.Collector
	serviceOpts []service.Option
}

// WithCollector 使用外部创建的指标收集器
func WithCollector(c *metrics.Collector) ServerOption {
	return func(o *serverOptions) { o.collector = c }
}

// WithServiceOptions 透传给 service.New 的选项
func WithServiceOptions(opts ...service.Option) ServerOption {
	return func(o *serverOptions) { o.serviceOpts = append(o.serviceOpts, opts...) }
}

// NewServer 构建服务器：门面、handlers、路由与中间件链
func NewServer(cfg *config.Config, logger *zap.Logger, opts ...ServerOption) (*Server, error) {
	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.collector == nil {
		o.collector = metrics.NewCollector("voxbridge", logger)
	}

	facade := service.New(cfg, logger,
		append([]service.Option{service.WithRecorder(o.collector)}, o.serviceOpts...)...)

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		facade:    facade,
		collector: o.collector,
	}

	mux, err := s.routes()
	if err != nil {
		_ = facade.Close()
		return nil, err
	}

	s.handler = Chain(mux,
		Recovery(logger),
		RequestID(),
		OTelTracing(),
		SecurityHeaders(cfg.Web.AllowEmbedding),
		RequestLogger(logger),
		MetricsMiddleware(o.collector),
		CORS(cfg.Server.CORSAllowedOrigins),
		BodyLimit(cfg.Server.MaxBodyBytes),
	)

	return s, nil
}

// Handler 返回完整的 HTTP 处理链
func (s *Server) Handler() http.Handler {
	return s.handler
}

// =============================================================================
// 🌐 路由
// =============================================================================

func (s *Server) routes() (*http.ServeMux, error) {
	normalizer := handlers.NewErrorNormalizer(s.cfg.Web.Locale)

	indexHandler, err := handlers.NewIndexHandler(web.Templates(), s.cfg.Web.Title, s.logger)
	if err != nil {
		return nil, fmt.Errorf("init index handler: %w", err)
	}
	translatorHandler := handlers.NewTranslatorHandler(s.facade, normalizer, s.logger)
	speechHandler := handlers.NewSpeechHandler(s.facade, normalizer, s.collector, s.logger)

	healthHandler := handlers.NewHealthHandler(
		handlers.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit},
		[]handlers.Capability{
			{
				Name:    service.CapabilityTranslation,
				Present: s.facade.HasTranslator(),
				Probe: func(ctx context.Context) error {
					_, err := s.facade.ListModels(ctx)
					return err
				},
			},
			{
				Name:    service.CapabilitySpeech,
				Present: s.facade.HasSpeech(),
				Probe: func(ctx context.Context) error {
					_, err := s.facade.ListVoices(ctx)
					return err
				},
			},
		},
		s.logger,
	)

	mux := http.NewServeMux()

	// 前端页面
	mux.HandleFunc("GET /{$}", indexHandler.HandleIndex)
	mux.Handle("GET /static/", handlers.NewStaticHandler("/static/", web.Static(s.cfg.Web.StaticDir)))

	// 翻译
	mux.HandleFunc("GET /api/models", translatorHandler.HandleModels)
	mux.HandleFunc("POST /api/identify", translatorHandler.HandleIdentify)
	mux.HandleFunc("GET /api/identifiable_languages", translatorHandler.HandleIdentifiableLanguages)
	mux.HandleFunc("POST /api/translate", translatorHandler.HandleTranslate)

	// 语音
	mux.HandleFunc("GET /api/voces", speechHandler.HandleVoices)
	mux.HandleFunc("GET /api/sintetizar", speechHandler.HandleSynthesize)

	// 健康检查与版本
	mux.HandleFunc("GET /health", healthHandler.HandleLive)
	mux.HandleFunc("GET /healthz", healthHandler.HandleLive)
	mux.HandleFunc("GET /ready", healthHandler.HandleReady)
	mux.HandleFunc("GET /readyz", healthHandler.HandleReady)
	mux.HandleFunc("GET /version", healthHandler.HandleVersion)

	// 未配置独立端口时，指标挂在业务端口上
	if s.cfg.Server.MetricsPort == 0 {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	return mux, nil
}

// =============================================================================
// 🚀 运行与关闭
// =============================================================================

// Run 启动 HTTP 与 Metrics 服务器，阻塞直到 ctx 结束或任一服务异常退出
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		if err := s.facade.Close(); err != nil {
			s.logger.Warn("service close error", zap.Error(err))
		}
	}()

	s.httpManager = server.NewManager("http", s.handler,
		server.ConfigFromServer(s.cfg.Server, s.cfg.Server.HTTPPort), s.logger)
	if err := s.httpManager.Start(); err != nil {
		return fmt.Errorf("start HTTP server: %w", err)
	}

	if s.cfg.Server.MetricsPort != 0 {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("GET /metrics", promhttp.Handler())
		s.metricsManager = server.NewManager("metrics", metricsMux,
			server.ConfigFromServer(s.cfg.Server, s.cfg.Server.MetricsPort), s.logger)
		if err := s.metricsManager.Start(); err != nil {
			_ = s.httpManager.Shutdown(context.WithoutCancel(ctx))
			return fmt.Errorf("start metrics server: %w", err)
		}
	}

	s.logger.Info("All servers started",
		zap.Int("http_port", s.cfg.Server.HTTPPort),
		zap.Int("metrics_port", s.cfg.Server.MetricsPort),
		zap.Bool("translation", s.facade.HasTranslator()),
		zap.Bool("speech", s.facade.HasSpeech()),
	)

	// 任一服务退出都会取消 gctx，从而带动另一个优雅关闭
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.httpManager.Wait(gctx) })
	if s.metricsManager != nil {
		g.Go(func() error { return s.metricsManager.Wait(gctx) })
	}

	err := g.Wait()
	s.logger.Info("Graceful shutdown completed")
	return err
}
