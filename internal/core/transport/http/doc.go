// Package http 实现 HTTP 推送传输
//
// 票据是对方收件箱的绝对 URL：
//
//	<base_url>/profiles/<profile>/inbox
//
// 会话只负责把消息 POST 到该 URL，请求体为
// {"from", "kind", "body_b64"}。HTTP 推送没有入站路径，
// Recv 总是返回 (nil, nil)。
package http
