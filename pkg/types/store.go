package types

// Namespace 存储命名空间
type Namespace string

// String 返回 Namespace 的字符串表示
func (n Namespace) String() string {
	return string(n)
}

// Key 存储键
type Key string

// String 返回 Key 的字符串表示
func (k Key) String() string {
	return string(k)
}

// Value 存储值
type Value string

// String 返回 Value 的字符串表示
func (v Value) String() string {
	return string(v)
}

// 节点状态使用的约定命名空间
const (
	// NamespaceInbox 收件箱
	NamespaceInbox Namespace = "inbox"

	// NamespaceIdentity 身份信息（本地 DID 等）
	NamespaceIdentity Namespace = "identity"
)

// 约定键
const (
	// KeyInboxItems 收件箱条目列表（JSON 数组）
	KeyInboxItems Key = "items"

	// KeyLocalDID 本地 DID
	KeyLocalDID Key = "did"
)
