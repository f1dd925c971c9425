package types

import (
	"errors"
	"testing"
)

func TestNodeID(t *testing.T) {
	t.Run("NodeIDFromDID", func(t *testing.T) {
		tests := []struct {
			name    string
			input   DID
			want    NodeID
			wantErr bool
		}{
			{"valid", "did:key:z6Mkabc", "did:key:z6Mkabc", false},
			{"empty", "", EmptyNodeID, true},
			{"whitespace", "   ", EmptyNodeID, true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := NodeIDFromDID(tt.input)
				if (err != nil) != tt.wantErr {
					t.Fatalf("NodeIDFromDID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				}
				if tt.wantErr && !errors.Is(err, ErrEmptyNodeID) {
					t.Errorf("NodeIDFromDID(%q) error = %v, want ErrEmptyNodeID", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("NodeIDFromDID(%q) = %q, want %q", tt.input, got, tt.want)
				}
			})
		}
	})

	t.Run("ShortString", func(t *testing.T) {
		id := NodeID("did:key:z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK")
		if got := id.ShortString(); got != "did:key:z6MkhaXg" {
			t.Errorf("ShortString() = %q", got)
		}
		if got := NodeID("short").ShortString(); got != "short" {
			t.Errorf("短 ID 应原样返回, got %q", got)
		}
	})

	t.Run("IsEmpty", func(t *testing.T) {
		if !EmptyNodeID.IsEmpty() {
			t.Error("EmptyNodeID.IsEmpty() = false, want true")
		}
		if NodeID("x").IsEmpty() {
			t.Error("NodeID(\"x\").IsEmpty() = true, want false")
		}
	})
}

func TestUserID(t *testing.T) {
	if !UserID("").IsEmpty() {
		t.Error("UserID(\"\").IsEmpty() = false")
	}
	if UserID("alice").String() != "alice" {
		t.Error("UserID.String() mismatch")
	}
}
