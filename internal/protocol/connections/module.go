package connections

import (
	"context"

	"go.uber.org/fx"

	"github.com/mee-pdn/go-mee/config"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// Params Connections 模块依赖参数
type Params struct {
	fx.In

	LC         fx.Lifecycle
	Transport  interfaces.Transport
	UnifiedCfg *config.Config `optional:"true"`
}

// Module 返回 Connections Fx 模块
func Module() fx.Option {
	return fx.Module("connections",
		fx.Provide(ProvideRegistry),
	)
}

// ProvideRegistry 创建注册表，节点停止时关闭全部连接
func ProvideRegistry(p Params) (*Registry, error) {
	var local types.ProfileName
	if p.UnifiedCfg != nil {
		local = types.ProfileName(p.UnifiedCfg.Node.Profile)
	}

	r, err := New(p.Transport, local)
	if err != nil {
		return nil, err
	}

	p.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return r.CloseAll()
		},
	})
	return r, nil
}
