// Package transport 组装节点的传输层
//
// 传输负责三件事：为本地 Profile 签发票据、对远端票据打开会话、
// 在会话上交换消息。三种实现位于子包：
//
//   - http: 推送式，票据 <base_url>/profiles/<profile>/inbox，会话无入站路径
//   - ws: 双向，票据 ws(s)://<host>/profiles/<profile>/ws，首次收发时拨号
//   - memory: 进程内存储转发中继，票据 mem://<hub>/<profile>
//
// # Fx 模块集成
//
//	app := fx.New(
//	    fx.Supply(cfg),
//	    metrics.Module(),
//	    transport.Module(),
//	    fx.Invoke(func(t interfaces.Transport) {
//	        ticket, _ := t.Ticket(ctx, "alice")
//	    }),
//	)
//
// 启用指标时，提供的 interfaces.Transport 经过 Instrument 包装，
// 记录会话打开次数和发送耗时。
//
// 公共接口：pkg/interfaces/transport.go
package transport
