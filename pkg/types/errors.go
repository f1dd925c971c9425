// Package types 定义 mee 的基础类型
//
// 本文件定义所有公共错误类型。
package types

import "errors"

// ============================================================================
//                              ID 相关错误
// ============================================================================

var (
	// ErrEmptyNodeID 空节点 ID
	ErrEmptyNodeID = errors.New("empty node ID")

	// ErrEmptyProfile 空 Profile 名称
	ErrEmptyProfile = errors.New("empty profile name")

	// ErrEmptyTicket 空票据
	ErrEmptyTicket = errors.New("empty ticket")
)

// ============================================================================
//                              线格式错误
// ============================================================================

// ErrInvalidBody body_b64 不是合法的 base64
var ErrInvalidBody = errors.New("invalid body_b64")
