package transport

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/mee-pdn/go-mee/config"
	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/internal/core/transport/http"
	"github.com/mee-pdn/go-mee/internal/core/transport/memory"
	"github.com/mee-pdn/go-mee/internal/core/transport/ws"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
	"github.com/mee-pdn/go-mee/pkg/types"
)

var logger = log.Logger("core/transport")

// Kind 生效的传输类型
type Kind string

// Binder 可在进程内直接注册入站处理器的传输
//
// 只有 memory 传输实现；http/ws 的入站路径由控制面 HTTP 服务承担。
type Binder interface {
	Bind(profile types.ProfileName, handler interfaces.InboundHandler) func()
}

// Params Transport 模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config   `optional:"true"`
	Metrics    *metrics.Metrics `optional:"true"`

	// Hub 调用方共享的进程内中继；未提供时按配置新建
	Hub *memory.Hub `optional:"true"`
}

// Result Transport 模块提供的结果
type Result struct {
	fx.Out

	Transport interfaces.Transport
	Binder    Binder
	Kind      Kind
}

// Module 返回 Transport Fx 模块
//
// 提供:
//   - interfaces.Transport: 按 transport.kind 选择的传输（启用指标时带包装）
//   - Binder: memory 传输的入站绑定，其它传输为 nil
//   - Kind: 生效的传输类型
func Module() fx.Option {
	return fx.Module("transport",
		fx.Provide(ProvideTransport),
	)
}

// ProvideTransport 按配置创建传输
func ProvideTransport(p Params) (Result, error) {
	cfg := config.DefaultTransportConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Transport
	}

	t, binder, err := New(cfg, p.Hub)
	if err != nil {
		return Result{}, err
	}

	logger.Info("传输已创建", "kind", cfg.Kind, "baseURL", cfg.BaseURL)
	return Result{
		Transport: Instrument(t, cfg.Kind, p.Metrics),
		Binder:    binder,
		Kind:      Kind(cfg.Kind),
	}, nil
}

// New 按配置创建未包装的传输
//
// hub 仅用于 memory 类型，为 nil 时新建一个以 cfg.MemoryHub 命名的中继。
func New(cfg config.TransportConfig, hub *memory.Hub) (interfaces.Transport, Binder, error) {
	switch cfg.Kind {
	case config.TransportHTTP:
		return http.New(
			http.WithBaseURL(cfg.BaseURL),
			http.WithSendTimeout(cfg.SendTimeout.Duration()),
		), nil, nil

	case config.TransportWebSocket:
		opts := []ws.Option{ws.WithDialTimeout(cfg.DialTimeout.Duration())}
		// 未配置 base_url 时仍可拨出，但 Ticket 返回 ErrNotBound
		if cfg.BaseURL != "" {
			opts = append(opts, ws.WithBaseURL(cfg.BaseURL))
		}
		t, err := ws.New(opts...)
		if err != nil {
			return nil, nil, err
		}
		return t, nil, nil

	case config.TransportMemory:
		if hub == nil {
			hub = memory.NewHub(cfg.MemoryHub, cfg.MailboxSize)
		} else if cfg.MemoryHub != "" && hub.Name() != cfg.MemoryHub {
			return nil, nil, fmt.Errorf("%w: %q != %q", ErrHubMismatch, hub.Name(), cfg.MemoryHub)
		}
		t := memory.New(hub)
		return t, t, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}
