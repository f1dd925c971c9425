package api

import (
	"context"

	"go.uber.org/fx"

	"github.com/mee-pdn/go-mee/config"
	"github.com/mee-pdn/go-mee/internal/core/did"
	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/internal/core/transport"
	"github.com/mee-pdn/go-mee/internal/protocol/connections"
	"github.com/mee-pdn/go-mee/internal/protocol/inbox"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
)

// ModuleInput 模块输入
type ModuleInput struct {
	fx.In

	Node        interfaces.Node
	Inbox       *inbox.Service
	Identity    did.LocalIdentity
	Kind        transport.Kind
	Connections *connections.Registry `optional:"true"`
	Metrics     *metrics.Metrics      `optional:"true"`
	UnifiedCfg  *config.Config        `optional:"true"`
}

// ModuleOutput 模块输出
type ModuleOutput struct {
	fx.Out

	Server *Server
}

// ProvideServer 提供控制面服务
func ProvideServer(in ModuleInput) (ModuleOutput, error) {
	apiCfg := config.DefaultAPIConfig()
	if in.UnifiedCfg != nil {
		apiCfg = in.UnifiedCfg.API
	}

	s, err := New(Config{
		Addr:              apiCfg.ListenAddr,
		Node:              in.Node,
		Inbox:             in.Inbox,
		Connections:       in.Connections,
		Identity:          in.Identity,
		Metrics:           in.Metrics,
		WebSocket:         in.Kind == transport.Kind(config.TransportWebSocket),
		CORSOrigins:       apiCfg.CORSOrigins,
		ReadHeaderTimeout: apiCfg.ReadHeaderTimeout.Duration(),
		ShutdownTimeout:   apiCfg.ShutdownTimeout.Duration(),
	})
	if err != nil {
		return ModuleOutput{}, err
	}
	return ModuleOutput{Server: s}, nil
}

// Module 返回控制面 fx 模块
//
// 配置的监听地址为空时，OnStart 不监听，服务只通过 Handler 使用。
func Module() fx.Option {
	return fx.Module("api",
		fx.Provide(ProvideServer),
		fx.Invoke(func(lc fx.Lifecycle, s *Server) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return s.Start(ctx)
				},
				OnStop: func(_ context.Context) error {
					return s.Stop()
				},
			})
		}),
	)
}
