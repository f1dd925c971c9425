package interfaces

import (
	"errors"
	"fmt"
)

// ════════════════════════════════════════════════════════════════════════════
//                              身份错误
// ════════════════════════════════════════════════════════════════════════════

// DIDErrorKind 身份错误分类
type DIDErrorKind int

const (
	// DIDErrOther 未分类错误
	DIDErrOther DIDErrorKind = iota

	// DIDErrMethod 不支持的创建参数变体
	DIDErrMethod

	// DIDErrResolve 解析过程无法完成
	DIDErrResolve

	// DIDErrNotFound 标识符不存在
	DIDErrNotFound

	// DIDErrInvalid 标识符或参数格式错误
	DIDErrInvalid
)

// String 返回错误分类的字符串表示
func (k DIDErrorKind) String() string {
	switch k {
	case DIDErrMethod:
		return "method"
	case DIDErrResolve:
		return "resolve"
	case DIDErrNotFound:
		return "not_found"
	case DIDErrInvalid:
		return "invalid"
	default:
		return "other"
	}
}

// DIDError 身份子系统错误
type DIDError struct {
	Kind DIDErrorKind
	Msg  string
	Err  error
}

// Error 实现 error 接口
func (e *DIDError) Error() string {
	var prefix string
	switch e.Kind {
	case DIDErrMethod:
		prefix = "DID method error"
	case DIDErrResolve:
		prefix = "DID resolve error"
	case DIDErrNotFound:
		prefix = "not found"
	case DIDErrInvalid:
		prefix = "invalid"
	default:
		prefix = "other"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Msg)
}

// Unwrap 返回底层错误
func (e *DIDError) Unwrap() error {
	return e.Err
}

// NewDIDError 创建身份错误
func NewDIDError(kind DIDErrorKind, msg string) *DIDError {
	return &DIDError{Kind: kind, Msg: msg}
}

// WrapDIDError 包装底层错误为身份错误
func WrapDIDError(kind DIDErrorKind, msg string, err error) *DIDError {
	return &DIDError{Kind: kind, Msg: msg, Err: err}
}

// IsDIDError 检查 err 链中是否包含指定分类的身份错误
func IsDIDError(err error, kind DIDErrorKind) bool {
	var de *DIDError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// ════════════════════════════════════════════════════════════════════════════
//                              存储 / 传输错误
// ════════════════════════════════════════════════════════════════════════════

// StoreError 存储 I/O 错误
//
// 契约不要求更细的分类，调用者仅通过消息文本区分。
type StoreError struct {
	Op  string
	Err error
}

// Error 实现 error 接口
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

// Unwrap 返回底层错误
func (e *StoreError) Unwrap() error {
	return e.Err
}

// TransportError 传输 I/O 错误
type TransportError struct {
	Op  string
	Err error
}

// Error 实现 error 接口
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

// Unwrap 返回底层错误
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError 创建传输错误
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// 传输层公共错误
var (
	// ErrInvalidTicket 票据无法被当前传输解释
	ErrInvalidTicket = errors.New("invalid ticket")

	// ErrSessionClosed 会话已关闭
	ErrSessionClosed = errors.New("session closed")

	// ErrNotBound 传输尚未绑定到网络端点
	ErrNotBound = errors.New("transport not bound")
)
