package protocol

import (
	"bytes"
	"io"
)

// ChatPosition selects where the client renders a clientbound chat message.
type ChatPosition byte

const (
	ChatPositionChat ChatPosition = iota
	ChatPositionSystem
	ChatPositionGameInfo
)

// ClientChatMessage is the clientbound chat packet (0x0E): a raw JSON chat
// component, a render position, and the UUID of the sender (the zero UUID
// for messages with no player author, e.g. server broadcasts).
type ClientChatMessage struct {
	JSONData string
	Position ChatPosition
	Sender   UUID
}

func WriteClientChatMessage(w io.Writer, msg ClientChatMessage) error {
	if err := WriteString(w, msg.JSONData); err != nil {
		return err
	}
	if err := WriteByte(w, byte(msg.Position)); err != nil {
		return err
	}
	return WriteUUID(w, msg.Sender)
}

func ReadClientChatMessage(r io.Reader) (*ClientChatMessage, error) {
	jsonData, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	position, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	sender, err := ReadUUID(r)
	if err != nil {
		return nil, err
	}
	return &ClientChatMessage{
		JSONData: jsonData,
		Position: ChatPosition(position),
		Sender:   sender,
	}, nil
}

// NewSystemChatPacket builds a plain-text system broadcast (no sender).
func NewSystemChatPacket(jsonData string) *Packet {
	var buf bytes.Buffer
	_ = WriteClientChatMessage(&buf, ClientChatMessage{
		JSONData: jsonData,
		Position: ChatPositionSystem,
	})
	return &Packet{ID: S2CChatMessage, Payload: buf.Bytes()}
}

// NewPlayerChatPacket builds a player-authored chat line for broadcast.
func NewPlayerChatPacket(jsonData string, sender UUID) *Packet {
	var buf bytes.Buffer
	_ = WriteClientChatMessage(&buf, ClientChatMessage{
		JSONData: jsonData,
		Position: ChatPositionChat,
		Sender:   sender,
	})
	return &Packet{ID: S2CChatMessage, Payload: buf.Bytes()}
}
