package web

import "errors"

// did:web 错误定义
var (
	// ErrEmptyDomain 域名为空
	ErrEmptyDomain = errors.New("did:web: empty domain")

	// ErrInvalidDomain 域名包含非法字符
	ErrInvalidDomain = errors.New("did:web: invalid domain")

	// ErrIDMismatch 文档 id 与请求的 DID 不一致
	ErrIDMismatch = errors.New("did:web: document id does not match")
)
