package types

import "strings"

// ============================================================================
//                              NodeID - 节点标识
// ============================================================================

// NodeID 节点实例的稳定标识符（不透明字符串）
type NodeID string

// EmptyNodeID 空节点ID
const EmptyNodeID NodeID = ""

// NodeIDFromDID 从 DID 派生 NodeID
//
// DID 为空（或仅含空白）时返回 ErrEmptyNodeID，保证由 DID 构造的 NodeID 非空。
func NodeIDFromDID(did DID) (NodeID, error) {
	s := strings.TrimSpace(did.String())
	if s == "" {
		return EmptyNodeID, ErrEmptyNodeID
	}
	return NodeID(s), nil
}

// String 返回 NodeID 的字符串表示
func (id NodeID) String() string {
	return string(id)
}

// ShortString 返回 NodeID 的短字符串表示（日志使用）
func (id NodeID) ShortString() string {
	s := string(id)
	if len(s) > 16 {
		return s[:16]
	}
	return s
}

// IsEmpty 检查 NodeID 是否为空
func (id NodeID) IsEmpty() bool {
	return id == EmptyNodeID
}

// ============================================================================
//                              UserID - 用户标识
// ============================================================================

// UserID 拥有节点的用户/账户标识
//
// 可选：节点可以没有 UserID。
type UserID string

// String 返回 UserID 的字符串表示
func (id UserID) String() string {
	return string(id)
}

// IsEmpty 检查 UserID 是否为空
func (id UserID) IsEmpty() bool {
	return id == ""
}
