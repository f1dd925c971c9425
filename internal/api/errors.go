package api

import "errors"

// 错误定义
var (
	// ErrNilNode Node 为 nil
	ErrNilNode = errors.New("api: node is nil")

	// ErrNilInbox 收件箱为 nil
	ErrNilInbox = errors.New("api: inbox is nil")

	// ErrMissingField 投递请求缺少必填字段
	ErrMissingField = errors.New("api: missing required field")
)
