package types

import "strings"

// didPrefix DID 字符串前缀
const didPrefix = "did:"

// ============================================================================
//                              DID - 去中心化标识符
// ============================================================================

// DID 去中心化标识符，格式 did:<method>:<method-specific-id>
type DID string

// String 返回完整 DID 字符串
func (d DID) String() string {
	return string(d)
}

// Method 从 did: 前缀派生方法标记
//
// 格式错误的字符串返回 UnknownMethod("")，永不返回错误。
func (d DID) Method() DIDMethod {
	rest, ok := strings.CutPrefix(string(d), didPrefix)
	if !ok {
		return UnknownMethod("")
	}
	method, _, _ := strings.Cut(rest, ":")
	if method == "" {
		return UnknownMethod("")
	}
	return ParseDIDMethod(method)
}

// MethodSpecificID 返回 method 之后的部分
//
// 格式错误时返回空字符串。
func (d DID) MethodSpecificID() string {
	rest, ok := strings.CutPrefix(string(d), didPrefix)
	if !ok {
		return ""
	}
	_, id, found := strings.Cut(rest, ":")
	if !found {
		return ""
	}
	return id
}

// IsValid 检查 DID 语法是否有效（method 与 method-specific-id 均非空）
func (d DID) IsValid() bool {
	return d.Method().String() != "" && d.MethodSpecificID() != ""
}

// URL 以 fragment 构造 DIDURL
func (d DID) URL(fragment string) DIDURL {
	if fragment == "" {
		return DIDURL(d)
	}
	return DIDURL(string(d) + "#" + fragment)
}

// ============================================================================
//                              DIDMethod - DID 方法
// ============================================================================

// methodKind 方法变体标记
type methodKind uint8

const (
	methodUnknown methodKind = iota
	methodKey
	methodWeb
	methodPeer
)

// DIDMethod DID 方法（开放枚举）
//
// 已知方法为 Key/Web/Peer，其余字符串保存在 Unknown 变体中。
// 零值为 UnknownMethod("")。
type DIDMethod struct {
	kind methodKind
	raw  string
}

// 已知方法
var (
	// MethodKey did:key
	MethodKey = DIDMethod{kind: methodKey}
	// MethodWeb did:web
	MethodWeb = DIDMethod{kind: methodWeb}
	// MethodPeer did:peer
	MethodPeer = DIDMethod{kind: methodPeer}
)

// UnknownMethod 构造未知方法变体，原样保留字符串
func UnknownMethod(s string) DIDMethod {
	return DIDMethod{kind: methodUnknown, raw: s}
}

// ParseDIDMethod 从字符串解析方法
//
// ParseDIDMethod(s).String() == s 对任意 s 成立。
func ParseDIDMethod(s string) DIDMethod {
	switch s {
	case "key":
		return MethodKey
	case "web":
		return MethodWeb
	case "peer":
		return MethodPeer
	default:
		return UnknownMethod(s)
	}
}

// String 返回方法的字符串形式
func (m DIDMethod) String() string {
	switch m.kind {
	case methodKey:
		return "key"
	case methodWeb:
		return "web"
	case methodPeer:
		return "peer"
	default:
		return m.raw
	}
}

// IsUnknown 是否为未知变体
func (m DIDMethod) IsUnknown() bool {
	return m.kind == methodUnknown
}

// MarshalText 实现 encoding.TextMarshaler
func (m DIDMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (m *DIDMethod) UnmarshalText(b []byte) error {
	*m = ParseDIDMethod(string(b))
	return nil
}

// ============================================================================
//                              DIDURL - 带 fragment 的 DID
// ============================================================================

// DIDURL DID 加可选 fragment（did:...#frag）
type DIDURL string

// String 返回完整字符串
func (u DIDURL) String() string {
	return string(u)
}

// DID 去除第一个 # 及其后的内容
func (u DIDURL) DID() DID {
	d, _, _ := strings.Cut(string(u), "#")
	return DID(d)
}

// Fragment 返回第一个 # 之后的内容
//
// 没有 # 时 ok 为 false。
func (u DIDURL) Fragment() (fragment string, ok bool) {
	_, frag, found := strings.Cut(string(u), "#")
	return frag, found
}
