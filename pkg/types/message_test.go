package types

import "testing"

// TestMessageKind_RoundTrip 测试消息类型往返
func TestMessageKind_RoundTrip(t *testing.T) {
	known := map[string]MessageKind{
		"ping": KindPing,
		"text": KindText,
		"caps": KindCaps,
	}
	for s, want := range known {
		got := ParseMessageKind(s)
		if got != want {
			t.Errorf("ParseMessageKind(%q) = %v, want %v", s, got, want)
		}
		if got.String() != s {
			t.Errorf("ParseMessageKind(%q).String() = %q", s, got.String())
		}
		if got.IsUnknown() {
			t.Errorf("ParseMessageKind(%q).IsUnknown() = true", s)
		}
	}

	for _, s := range []string{"pong", "file-offer", "PING", "x"} {
		got := ParseMessageKind(s)
		if !got.IsUnknown() {
			t.Errorf("ParseMessageKind(%q) 应为 Unknown", s)
		}
		if got.String() != s {
			t.Errorf("未知类型应原样保留: got %q, want %q", got.String(), s)
		}
	}
}

func TestNewMessage_CopiesBody(t *testing.T) {
	body := []byte("hello")
	msg := NewMessage("bob", KindText, body)
	body[0] = 'j'

	if string(msg.Body) != "hello" {
		t.Errorf("NewMessage 应复制 body, got %q", msg.Body)
	}
	if msg.From != "bob" || msg.Kind != KindText {
		t.Errorf("NewMessage 字段不匹配: %+v", msg)
	}
}

func TestMessageKind_TextMarshal(t *testing.T) {
	var k MessageKind
	if err := k.UnmarshalText([]byte("caps")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if k != KindCaps {
		t.Errorf("UnmarshalText = %v", k)
	}
	b, _ := UnknownKind("custom").MarshalText()
	if string(b) != "custom" {
		t.Errorf("MarshalText = %q", b)
	}
}
