// Package connections 管理控制面打开的出站会话
//
// 每个会话以 uuid 标识，调用方可以在同一会话上多次发送，
// 直到显式关闭。节点停止时关闭全部会话。
package connections
