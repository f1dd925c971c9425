package transport

import "errors"

var (
	// ErrUnknownKind 未知的传输类型
	ErrUnknownKind = errors.New("transport: unknown kind")

	// ErrHubMismatch 提供的中继名与配置不一致
	ErrHubMismatch = errors.New("transport: memory hub name mismatch")
)
