package types

// ============================================================================
//                              ProfileName / Ticket
// ============================================================================

// ProfileName 节点在传输命名空间内的可寻址标签
type ProfileName string

// String 返回 ProfileName 的字符串表示
func (p ProfileName) String() string {
	return string(p)
}

// Ticket 传输层签发的可达性令牌
//
// 只对签发它的传输有意义，调用者应将其视为不透明字符串。
type Ticket string

// String 返回 Ticket 的字符串表示
func (t Ticket) String() string {
	return string(t)
}

// ============================================================================
//                              MessageKind - 消息类型
// ============================================================================

type kindTag uint8

const (
	kindUnknown kindTag = iota
	kindPing
	kindText
	kindCaps
)

// MessageKind 消息的语义类型（开放枚举）
//
// 未识别的类型原样保留在 Unknown 变体中，而不是被拒绝。
type MessageKind struct {
	tag kindTag
	raw string
}

// 已知消息类型
var (
	// KindPing 存活探测
	KindPing = MessageKind{tag: kindPing}
	// KindText 文本消息
	KindText = MessageKind{tag: kindText}
	// KindCaps 能力声明
	KindCaps = MessageKind{tag: kindCaps}
)

// UnknownKind 构造未知消息类型
func UnknownKind(s string) MessageKind {
	return MessageKind{tag: kindUnknown, raw: s}
}

// ParseMessageKind 从字符串解析消息类型
func ParseMessageKind(s string) MessageKind {
	switch s {
	case "ping":
		return KindPing
	case "text":
		return KindText
	case "caps":
		return KindCaps
	default:
		return UnknownKind(s)
	}
}

// String 返回消息类型的字符串形式
func (k MessageKind) String() string {
	switch k.tag {
	case kindPing:
		return "ping"
	case kindText:
		return "text"
	case kindCaps:
		return "caps"
	default:
		return k.raw
	}
}

// IsUnknown 是否为未知变体
func (k MessageKind) IsUnknown() bool {
	return k.tag == kindUnknown
}

// MarshalText 实现 encoding.TextMarshaler
func (k MessageKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (k *MessageKind) UnmarshalText(b []byte) error {
	*k = ParseMessageKind(string(b))
	return nil
}

// ============================================================================
//                              Message - 消息
// ============================================================================

// Message 点对点通信的一个单元
//
// Body 是不透明二进制，编码/分帧由传输负责。
type Message struct {
	// From 发送方 Profile
	From ProfileName

	// Kind 消息类型
	Kind MessageKind

	// Body 原始消息体
	Body []byte
}

// NewMessage 创建消息（复制 body）
func NewMessage(from ProfileName, kind MessageKind, body []byte) Message {
	return Message{
		From: from,
		Kind: kind,
		Body: append([]byte(nil), body...),
	}
}
