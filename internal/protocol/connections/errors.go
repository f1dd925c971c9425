package connections

import "errors"

// 错误定义
var (
	// ErrNotFound 连接不存在
	ErrNotFound = errors.New("connections: not found")

	// ErrNilTransport 传输为 nil
	ErrNilTransport = errors.New("connections: transport is nil")
)
