package protocol

import (
	"bytes"
	"io"
)

// ChatMessage is the serverbound chat packet (0x03). Protocol 754 predates
// the signed-chat system introduced in 1.19; a player's message, including
// slash commands (the client sends those through this same packet), is a
// single length-prefixed string.
type ChatMessage struct {
	Message string
}

func ParseChatMessage(r io.Reader) (*ChatMessage, error) {
	message, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	return &ChatMessage{Message: message}, nil
}

func CreateChatMessagePacket(msg string) *Packet {
	var buf bytes.Buffer
	_ = WriteString(&buf, msg)
	return &Packet{
		ID:      C2SChatMessage,
		Payload: buf.Bytes(),
	}
}
