// Package ws 实现 WebSocket 双向传输
//
// 票据：
//
//	ws(s)://<host>/profiles/<profile>/ws
//
// OpenSession 只校验票据，首次 Send/Recv 时才拨号。每条消息是一个
// JSON 文本帧 {"from", "kind", "body_b64"}。服务端收到 ping 后以自己的
// Profile 回送一个内容相同的 ping，因此客户端可以用 Send + Recv 测活。
//
// 服务端由 Server 承载，控制面把 /profiles/{name}/ws 路由到 Server.ServeHTTP。
package ws
