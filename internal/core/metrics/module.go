package metrics

import (
	"go.uber.org/fx"

	"github.com/mee-pdn/go-mee/config"
)

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Module 返回 metrics 的 Fx 模块
//
// 配置关闭指标时提供 nil *Metrics，各组件的 Observe 调用退化为空操作。
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideMetrics),
	)
}

// ProvideMetrics 按配置创建指标集合
func ProvideMetrics(p Params) *Metrics {
	if p.UnifiedCfg != nil && !p.UnifiedCfg.API.EnableMetrics {
		return nil
	}
	return New()
}
