package mee

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/mee-pdn/go-mee/internal/api"
	"github.com/mee-pdn/go-mee/internal/core/did"
	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/internal/core/storage"
	"github.com/mee-pdn/go-mee/internal/core/transport"
	"github.com/mee-pdn/go-mee/internal/protocol/connections"
	"github.com/mee-pdn/go-mee/internal/protocol/inbox"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
)

var fxLogger = log.Logger("mee/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. Core: Metrics → Storage → DID → Transport
//  2. Protocol: Inbox → Connections
//  3. Node 组件注入
//  4. API（依赖 Node）
func buildFxApp(o *options, node *Node) *fx.App {
	modules := []fx.Option{
		// 配置注入
		fx.Supply(o.config),

		// Node 门面作为 interfaces.Node 提供给控制面
		fx.Provide(func() interfaces.Node { return node }),

		// 核心模块
		metrics.Module(),
		storage.Module(),
		did.Module(),
		transport.Module(),

		// 协议模块
		inbox.Module(),
		connections.Module(),
	}

	// 可选注入
	if o.hub != nil {
		modules = append(modules, fx.Supply(o.hub))
	}
	if o.didHTTPClient != nil {
		modules = append(modules, fx.Supply(fx.Annotated{
			Name:   "did_http_client",
			Target: o.didHTTPClient,
		}))
	}

	// Node 组件注入（先于 API，使 API 构造时 Node 已完整）
	modules = append(modules, fx.Invoke(injectNodeComponents(node)))

	// 控制面
	modules = append(modules,
		api.Module(),
		fx.Invoke(injectAPIServer(node)),
	)

	// 用户扩展
	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	// Fx 事件日志：默认静默
	modules = append(modules, fx.WithLogger(func() fxevent.Logger {
		if o.config.Log.FxEvents {
			if l, err := zap.NewDevelopment(); err == nil {
				return &fxevent.ZapLogger{Logger: l}
			}
			fxLogger.Warn("创建 Fx 事件日志失败，改为静默")
		}
		return &fxevent.ZapLogger{Logger: zap.NewNop()}
	}))

	return fx.New(modules...)
}

// ════════════════════════════════════════════════════════════════════════════
// 组件注入辅助函数
// ════════════════════════════════════════════════════════════════════════════

// nodeInjectParams Node 组件注入参数
type nodeInjectParams struct {
	fx.In

	// 核心组件（必需）
	Transport  interfaces.Transport
	DIDManager interfaces.DIDManager
	Store      interfaces.KVStore
	Identity   did.LocalIdentity
	Inbox      *inbox.Service

	// 可选组件
	Connections *connections.Registry `optional:"true"`
	Metrics     *metrics.Metrics      `optional:"true"`
}

// injectNodeComponents 创建 Node 组件注入函数
func injectNodeComponents(node *Node) interface{} {
	return func(params nodeInjectParams) {
		node.transport = params.Transport
		node.didManager = params.DIDManager
		node.store = params.Store
		node.identity = params.Identity
		node.inbox = params.Inbox
		node.conns = params.Connections
		node.metrics = params.Metrics
	}
}

// apiInjectParams 控制面注入参数
type apiInjectParams struct {
	fx.In

	Server *api.Server
}

// injectAPIServer 取出控制面服务
func injectAPIServer(node *Node) interface{} {
	return func(params apiInjectParams) {
		node.api = params.Server
	}
}
