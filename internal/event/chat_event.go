package event

import (
	"log/slog"

	"github.com/voxborne/mcserver/internal/protocol"
)

// SourceType distinguishes where a chat event originated, so subscribers can
// tell a broadcast system message from a player's own chat line.
type SourceType int

const (
	SourceSystem SourceType = iota
	SourcePlayer
	SourcePlayerSend
	SourcePlayerCmd
)

func (st SourceType) String() string {
	switch st {
	case SourceSystem:
		return "System"
	case SourcePlayer:
		return "Player"
	case SourcePlayerSend:
		return "PlayerSend"
	case SourcePlayerCmd:
		return "PlayerCmd"
	default:
		return "Unknown"
	}
}

// Event names published on the shared Bus by the handler boundary.
const (
	TopicJoin          = "player.join"
	TopicLeave         = "player.leave"
	TopicChat          = "player.chat"
	TopicStatusRequest = "status.request"
)

// ChatEvent carries a single chat line, published on TopicChat.
type ChatEvent struct {
	Username string
	UUID     protocol.UUID
	Message  string
	Source   SourceType
}

func NewChatEvent(username string, uuid protocol.UUID, message string, source SourceType) *ChatEvent {
	return &ChatEvent{
		Username: username,
		UUID:     uuid,
		Message:  message,
		Source:   source,
	}
}

// JoinEvent is published on TopicJoin once a connection reaches Play state.
type JoinEvent struct {
	Username string
	UUID     protocol.UUID
}

// LeaveEvent is published on TopicLeave when a player's connection closes.
type LeaveEvent struct {
	Username string
	UUID     protocol.UUID
	Reason   string
}

// StatusRequestEvent is published on TopicStatusRequest before the default
// status response is sent, letting a subscriber observe (not alter) pings.
type StatusRequestEvent struct {
	RemoteAddr string
}

// LogChatEvent is a HandlerFunc suitable for Bus.Subscribe(TopicChat, ...);
// it logs every chat line at info level.
func LogChatEvent(raw any) {
	evt, ok := raw.(*ChatEvent)
	if !ok {
		slog.Error("event: unexpected payload for chat topic", "type", raw)
		return
	}
	slog.Info("chat", "username", evt.Username, "uuid", evt.UUID.String(), "message", evt.Message, "source", evt.Source.String())
}
