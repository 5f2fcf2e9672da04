package protocol

import (
	"bytes"
	"testing"
)

func TestParseChatMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"plain message", "hello world"},
		{"empty message", ""},
		{"slash command", "/give Steve diamond 64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteString(&buf, tt.message); err != nil {
				t.Fatalf("WriteString() error = %v", err)
			}
			got, err := ParseChatMessage(&buf)
			if err != nil {
				t.Fatalf("ParseChatMessage() error = %v", err)
			}
			if got.Message != tt.message {
				t.Errorf("Message = %q, want %q", got.Message, tt.message)
			}
		})
	}
}

func TestParseChatMessageIncompleteData(t *testing.T) {
	_, err := ParseChatMessage(bytes.NewReader(nil))
	if err == nil {
		t.Error("expected error for empty reader, got nil")
	}
}

func TestCreateChatMessagePacket(t *testing.T) {
	pkt := CreateChatMessagePacket("hi")
	if pkt.ID != C2SChatMessage {
		t.Fatalf("ID = %#x, want %#x", pkt.ID, C2SChatMessage)
	}
	msg, err := ParseChatMessage(bytes.NewReader(pkt.Payload))
	if err != nil {
		t.Fatalf("ParseChatMessage() error = %v", err)
	}
	if msg.Message != "hi" {
		t.Errorf("Message = %q, want %q", msg.Message, "hi")
	}
}
