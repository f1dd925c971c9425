// Package inbox 实现节点收件箱
//
// 收到的消息以 types.InboxItem 的 JSON 数组形式保存在
// (inbox, items) 下，按到达顺序追加。追加是「读-改-写」，
// 由服务内部的互斥锁串行化，并发投递不会丢失条目。
//
// 可选的按发送方限速基于 golang.org/x/time/rate，
// 超过速率的投递返回 ErrRateLimited，收件箱保持不变。
package inbox
