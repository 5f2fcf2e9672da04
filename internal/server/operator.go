package server

import (
	"encoding/json"

	"github.com/voxborne/mcserver/internal/console"
	"github.com/voxborne/mcserver/internal/protocol"
)

// NewConsole builds the admin console for srv, wiring it through the
// ConsoleOperator adapter.
func NewConsole(srv *Server) *console.Console {
	return console.New(ConsoleOperator{Server: srv})
}

// ConsoleOperator adapts a Server to console.Operator. The two Broadcast
// contracts differ in kind, not just signature: handler.Directory's
// Broadcast moves an already-encoded packet between connections, while the
// console's Broadcast takes an operator's plain-text message and must first
// turn it into a chat packet. Go cannot overload Broadcast on Server itself,
// so the console is handed this adapter instead of the Server directly.
type ConsoleOperator struct {
	*Server
}

func (o ConsoleOperator) Broadcast(message string) {
	body, err := json.Marshal(chatComponent{Text: message})
	if err != nil {
		return
	}
	o.Server.Broadcast(protocol.NewSystemChatPacket(string(body)), false, "")
}

type chatComponent struct {
	Text string `json:"text"`
}
