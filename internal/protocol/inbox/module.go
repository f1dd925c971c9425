package inbox

import (
	"context"

	"go.uber.org/fx"

	"github.com/mee-pdn/go-mee/config"
	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/internal/core/transport"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// Params Inbox 模块依赖参数
type Params struct {
	fx.In

	Store      interfaces.KVStore
	UnifiedCfg *config.Config   `optional:"true"`
	Metrics    *metrics.Metrics `optional:"true"`
	Binder     transport.Binder `optional:"true"`
}

// Module 返回 Inbox Fx 模块
//
// 提供 *Service。传输支持进程内绑定（memory）时，
// OnStart 把本节点 Profile 的入站消息接到 Deliver，OnStop 解除。
func Module() fx.Option {
	return fx.Module("inbox",
		fx.Provide(ProvideService),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideService 按配置创建收件箱服务
func ProvideService(p Params) (*Service, error) {
	var opts []Option
	if p.UnifiedCfg != nil && p.UnifiedCfg.API.InboxRate > 0 {
		opts = append(opts, WithRateLimit(p.UnifiedCfg.API.InboxRate, p.UnifiedCfg.API.InboxBurst))
	}
	return New(p.Store, p.Metrics, opts...)
}

type lifecycleParams struct {
	fx.In

	LC         fx.Lifecycle
	Service    *Service
	UnifiedCfg *config.Config   `optional:"true"`
	Binder     transport.Binder `optional:"true"`
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(p lifecycleParams) {
	if p.Binder == nil || p.UnifiedCfg == nil || p.UnifiedCfg.Node.Profile == "" {
		return
	}
	profile := types.ProfileName(p.UnifiedCfg.Node.Profile)

	var unbind func()
	p.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			unbind = p.Binder.Bind(profile, p.Service.Deliver)
			logger.Info("收件箱已绑定到进程内传输", "profile", profile)
			return nil
		},
		OnStop: func(_ context.Context) error {
			if unbind != nil {
				unbind()
			}
			return nil
		},
	})
}
