// Package handler implements the handler boundary: the narrow deliver/send/
// broadcast contract between a connection's reader and the rest of the
// server. It owns no socket state itself — it looks up connections through
// a Directory and publishes domain events onto a shared event.Bus.
package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/voxborne/mcserver/internal/conn"
	"github.com/voxborne/mcserver/internal/connerr"
	"github.com/voxborne/mcserver/internal/event"
	"github.com/voxborne/mcserver/internal/protocol"
	"github.com/voxborne/mcserver/internal/registry"
)

// Directory is the subset of the session manager the handler boundary
// needs: connection lookup and broadcast, without exposing the full
// accept-loop/lifecycle surface.
type Directory interface {
	Broadcast(pkt *protocol.Packet, lossy bool, except string)
}

// Handler implements conn.Handler: it classifies every Play-state packet
// registry.Default() knows about and turns it into either a reply, an event
// publication, or both. Unknown ids are logged and skipped, never fatal.
type Handler struct {
	table *registry.Table
	bus   *event.Bus
	dir   Directory
}

func New(table *registry.Table, bus *event.Bus, dir Directory) *Handler {
	return &Handler{table: table, bus: bus, dir: dir}
}

// Deliver is called by a Connection's read loop for every decoded Play-state
// packet; loginGate handles Handshaking/Status/Login itself and only reaches
// here once a connection has reached Play.
func (h *Handler) Deliver(c *conn.Connection, pkt protocol.Packet) error {
	state := c.State().Get()
	desc, known := h.table.Lookup(state, registry.Serverbound, pkt.ID)
	if !known {
		slog.Debug("skipping unknown packet", "conn", c.ID(), "state", state, "id", fmt.Sprintf("%#x", pkt.ID))
		return nil
	}

	switch desc.Name {
	case "ChatMessage":
		return h.handleChat(c, pkt)
	default:
		// Recognized but not acted on at this layer (movement, digging, etc.
		// belong to gameplay systems out of this engine's scope).
		return nil
	}
}

// Closed is called once both the read and write loops of c have stopped.
func (h *Handler) Closed(c *conn.Connection, cause *connerr.Error) {
	if c.Username() == "" {
		return
	}
	reason := "disconnected"
	if cause != nil {
		reason = cause.Reason
	}
	h.bus.Publish(event.TopicLeave, &event.LeaveEvent{
		Username: c.Username(),
		UUID:     c.UUID(),
		Reason:   reason,
	})
}

func (h *Handler) handleChat(c *conn.Connection, pkt protocol.Packet) error {
	msg, err := protocol.ParseChatMessage(bytes.NewReader(pkt.Payload))
	if err != nil {
		return connerr.Wrap(connerr.Malformed, err, "parse chat message")
	}
	h.bus.Publish(event.TopicChat, event.NewChatEvent(c.Username(), c.UUID(), msg.Message, event.SourcePlayer))

	body, err := json.Marshal(chatComponent{Text: fmt.Sprintf("<%s> %s", c.Username(), msg.Message)})
	if err != nil {
		return connerr.Wrap(connerr.Io, err, "marshal chat component")
	}
	h.dir.Broadcast(protocol.NewPlayerChatPacket(string(body), c.UUID()), false, "")
	return nil
}

type chatComponent struct {
	Text string `json:"text"`
}
