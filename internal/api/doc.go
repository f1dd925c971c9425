// Package api 提供节点的控制面 HTTP 服务
//
// 端点：
//   - GET    /live                         - 存活检查
//   - GET    /metrics                      - Prometheus 指标（启用时）
//   - GET    /demo/ticket                  - 本节点票据
//   - GET    /demo/identity                - 本节点 DID 与验证方法
//   - GET    /demo/inbox                   - 收件箱条目
//   - POST   /demo/send/ping               - 对票据发送一次 ping
//   - POST   /demo/connections             - 打开连接
//   - GET    /demo/connections             - 列出连接
//   - POST   /demo/connections/{id}/send   - 在连接上发送
//   - DELETE /demo/connections/{id}        - 关闭连接
//   - POST   /profiles/{name}/inbox        - 入站投递（HTTP 传输）
//   - GET    /profiles/{name}/ws           - 入站投递（WebSocket 传输）
//
// 默认绑定到 127.0.0.1，不暴露到网络。
package api
