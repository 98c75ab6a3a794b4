package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// 🏥 存活与就绪
// =============================================================================

// probeTimeout 单次就绪探测的上限
const probeTimeout = 5 * time.Second

// CapabilityState 上游能力在就绪报告中的状态
type CapabilityState string

const (
	// StatePresent 已配置且探测通过
	StatePresent CapabilityState = "present"
	// StateAbsent 未配置凭证，不影响就绪
	StateAbsent CapabilityState = "absent"
	// StateFailing 已配置但探测失败
	StateFailing CapabilityState = "failing"
)

// Capability 一项上游能力（translation / speech）及其探测方法
type Capability struct {
	Name    string
	Present bool
	Probe   func(ctx context.Context) error
}

// BuildInfo 构建信息，由 /version 返回
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

// LivenessStatus /health 与 /healthz 的响应
type LivenessStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// CapabilityReport 单项能力的就绪结果
type CapabilityReport struct {
	State   CapabilityState `json:"state"`
	Error   string          `json:"error,omitempty"`
	Latency string          `json:"latency,omitempty"`
}

// ReadinessStatus /ready 与 /readyz 的响应
type ReadinessStatus struct {
	Ready        bool                        `json:"ready"`
	Timestamp    time.Time                   `json:"timestamp"`
	Capabilities map[string]CapabilityReport `json:"capabilities"`
}

// HealthHandler 存活、就绪与版本处理器
type HealthHandler struct {
	build        BuildInfo
	capabilities []Capability
	started      time.Time
	logger       *zap.Logger
}

// NewHealthHandler 创建处理器，capabilities 按注册顺序探测
func NewHealthHandler(build BuildInfo, capabilities []Capability, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		build:        build,
		capabilities: capabilities,
		started:      time.Now(),
		logger:       logger.With(zap.String("component", "health_handler")),
	}
}

// HandleLive 处理 GET /health 与 /healthz，进程在运行即返回 200
func (h *HealthHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, LivenessStatus{
		Status:    "ok",
		Version:   h.build.Version,
		Uptime:    time.Since(h.started).Truncate(time.Second).String(),
		Timestamp: time.Now(),
	})
}

// HandleReady 处理 GET /ready 与 /readyz
// 任一已配置能力探测失败时返回 503。
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	status := h.Readiness(r.Context())
	if !status.Ready {
		WriteJSON(w, http.StatusServiceUnavailable, status)
		return
	}
	WriteJSON(w, http.StatusOK, status)
}

// HandleVersion 处理 GET /version
func (h *HealthHandler) HandleVersion(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.build)
}

// Readiness 并发探测所有已配置能力
func (h *HealthHandler) Readiness(ctx context.Context) ReadinessStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		reports = make(map[string]CapabilityReport, len(h.capabilities))
		g       errgroup.Group
	)
	for _, c := range h.capabilities {
		g.Go(func() error {
			report := h.probe(ctx, c)
			mu.Lock()
			reports[c.Name] = report
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	ready := true
	for _, report := range reports {
		if report.State == StateFailing {
			ready = false
		}
	}
	return ReadinessStatus{
		Ready:        ready,
		Timestamp:    time.Now(),
		Capabilities: reports,
	}
}

func (h *HealthHandler) probe(ctx context.Context, c Capability) CapabilityReport {
	if !c.Present {
		return CapabilityReport{State: StateAbsent}
	}
	if c.Probe == nil {
		return CapabilityReport{State: StatePresent}
	}

	start := time.Now()
	err := c.Probe(ctx)
	latency := time.Since(start)
	if err != nil {
		h.logger.Warn("capability probe failed",
			zap.String("capability", c.Name),
			zap.Duration("latency", latency),
			zap.Error(err),
		)
		return CapabilityReport{State: StateFailing, Error: err.Error(), Latency: latency.String()}
	}
	return CapabilityReport{State: StatePresent, Latency: latency.String()}
}
