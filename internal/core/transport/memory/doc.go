// Package memory 实现进程内存储转发传输
//
// 同一 Hub 上的各个 Profile 各有一个信箱。票据：
//
//	mem://<hub>/<profile>
//
// 发送把消息交给对方：对方已 Bind 入站处理器时直接调用处理器，
// 否则放入对方信箱，等待 Bind 或 Recv 取走。
// 会话是双向的：Recv 从本地 Profile 的信箱取消息。
//
// Hub 需要显式创建并在节点之间传递，不存在全局注册表。
package memory
