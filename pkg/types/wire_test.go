package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestInboxItem_FromMessage(t *testing.T) {
	item := InboxItemFromMessage(NewMessage("bob", KindPing, nil))
	if item.From != "bob" || item.Kind != "ping" || item.BodyB64 != "" {
		t.Errorf("InboxItemFromMessage() = %+v", item)
	}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"from":"bob","kind":"ping","body_b64":""}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestInboxItem_Message(t *testing.T) {
	msg, err := InboxItem{From: "carol", Kind: "x-custom", BodyB64: "aGk="}.Message()
	if err != nil {
		t.Fatalf("Message() error = %v", err)
	}
	if msg.From != "carol" || string(msg.Body) != "hi" {
		t.Errorf("Message() = %+v", msg)
	}
	if !msg.Kind.IsUnknown() || msg.Kind.String() != "x-custom" {
		t.Errorf("Kind = %q, want unknown x-custom", msg.Kind)
	}
}

func TestInboxItem_InvalidBase64(t *testing.T) {
	_, err := InboxItem{From: "bob", Kind: "ping", BodyB64: "!!!"}.Message()
	if !errors.Is(err, ErrInvalidBody) {
		t.Errorf("Message() error = %v, want ErrInvalidBody", err)
	}
}
