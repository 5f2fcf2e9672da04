package protocol

import (
	"bytes"
	"testing"
)

func buildLoginStartPayload(username string) []byte {
	buf := &bytes.Buffer{}
	_ = WriteString(buf, username)
	return buf.Bytes()
}

func TestParseLoginStart(t *testing.T) {
	tests := []struct {
		name     string
		username string
	}{
		{"typical username", "Steve"},
		{"single character", "A"},
		{"sixteen characters", "Player1234567890"},
		{"contains underscore", "Player_123"},
		{"empty username", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := buildLoginStartPayload(tt.username)
			reader := bytes.NewReader(payload)

			loginStart, err := ParseLoginStart(reader)
			if err != nil {
				t.Fatalf("ParseLoginStart() error = %v", err)
			}
			if loginStart.Username != tt.username {
				t.Errorf("Username = %q, want %q", loginStart.Username, tt.username)
			}
		})
	}
}

func TestParseLoginStartErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"empty input", []byte{}},
		{"only string length", []byte{0x05}},
		{
			"truncated username",
			func() []byte {
				buf := &bytes.Buffer{}
				_ = WriteVarint(buf, 10)
				buf.WriteString("ABC")
				return buf.Bytes()
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := bytes.NewReader(tt.payload)
			if _, err := ParseLoginStart(reader); err == nil {
				t.Error("ParseLoginStart() expected error, got nil")
			}
		})
	}
}

func TestParseLoginStartRealPacket(t *testing.T) {
	payload := []byte{
		0x05,                    // username length = 5
		'S', 't', 'e', 'v', 'e', // "Steve"
	}

	reader := bytes.NewReader(payload)
	loginStart, err := ParseLoginStart(reader)
	if err != nil {
		t.Fatalf("ParseLoginStart() error = %v", err)
	}
	if loginStart.Username != "Steve" {
		t.Errorf("Username = %q, want %q", loginStart.Username, "Steve")
	}
}
