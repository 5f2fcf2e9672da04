// Package server is the session manager: the single acceptor that binds the
// listening port, the connection-id -> Connection map, the player-identifier
// index populated at LoginSuccess, and the connection cap and duplicate-login
// eviction policy described for the session manager.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/voxborne/mcserver/internal/auth"
	"github.com/voxborne/mcserver/internal/conn"
	"github.com/voxborne/mcserver/internal/event"
	"github.com/voxborne/mcserver/internal/handler"
	"github.com/voxborne/mcserver/internal/mccrypto"
	"github.com/voxborne/mcserver/internal/protocol"
	"github.com/voxborne/mcserver/internal/registry"
)

// Options configures a Server. Zero values fall back to config.Defaults()'s
// numbers via the caller (cmd/mcserver wires config.Config into this).
type Options struct {
	ListenAddr           string
	MaxPlayers           int
	OnlineMode           bool
	CompressionThreshold int32
	KeepAliveInterval    time.Duration
	KeepAliveTimeout     time.Duration
	MOTD                 string
	ProtocolVersion      int32
	ProtocolName         string

	// StatusJSON builds the server-list-ping response body given the
	// current player count. Supplied by the caller so cmd/mcserver can
	// shape it without this package depending on an encoding choice.
	StatusJSON func(onlinePlayers int, maxPlayers int, motd string) string
}

// Server is the session manager described for §4.5: one acceptor, a
// connection map, a player index, and a cap enforced at login.
type Server struct {
	opts    Options
	table   *registry.Table
	bus     *event.Bus
	keys    *mccrypto.KeyPair
	verify  *auth.Verifier
	deliver *handler.Handler

	listener net.Listener

	mu          sync.RWMutex
	connections map[string]*conn.Connection
	byPlayer    map[protocol.UUID]string

	nextID  atomic.Uint64
	stopCh  chan struct{}
	stopOne sync.Once
}

func New(opts Options, bus *event.Bus) (*Server, error) {
	keys, err := mccrypto.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generate login key pair: %w", err)
	}
	s := &Server{
		opts:        opts,
		table:       registry.Default(),
		bus:         bus,
		keys:        keys,
		verify:      auth.NewVerifier(10 * time.Second),
		connections: make(map[string]*conn.Connection),
		byPlayer:    make(map[protocol.UUID]string),
		stopCh:      make(chan struct{}),
	}
	s.deliver = handler.New(s.table, s.bus, s)
	return s, nil
}

// Start binds the listener and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("starting server", "addr", s.opts.ListenAddr)
	listener, err := net.Listen("tcp", s.opts.ListenAddr)
	if err != nil {
		return fmt.Errorf("bind listener: %w", err)
	}
	s.listener = listener
	defer listener.Close()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.stopCh:
		}
		slog.Info("shutting down server")
		_ = listener.Close()
	}()

	for {
		netConn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			slog.Error("accept failed", "error", err)
			return err
		}
		id := strconv.FormatUint(s.nextID.Add(1), 10)
		go s.serveConnection(ctx, id, netConn)
	}
}

// Stop implements console.Operator: it stops accepting and closes the
// listener, which unwinds Start's accept loop.
func (s *Server) Stop() {
	s.stopOne.Do(func() { close(s.stopCh) })
}

// ListPlayers implements console.Operator.
func (s *Server) ListPlayers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.byPlayer))
	for _, id := range s.byPlayer {
		if c, ok := s.connections[id]; ok {
			names = append(names, c.Username())
		}
	}
	return names
}

// KickPlayer implements console.Operator.
func (s *Server) KickPlayer(name string) bool {
	s.mu.RLock()
	var target *conn.Connection
	for _, c := range s.connections {
		if c.Username() == name {
			target = c
			break
		}
	}
	s.mu.RUnlock()
	if target == nil {
		return false
	}
	target.Send(protocol.CreatePlayDisconnectPacket(`{"text":"Kicked by an operator"}`), false)
	target.Close()
	return true
}

// Broadcast implements handler.Directory: it sends pkt to every connection
// whose id is not except.
func (s *Server) Broadcast(pkt *protocol.Packet, lossy bool, except string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, c := range s.connections {
		if id == except {
			continue
		}
		c.Send(pkt, lossy)
	}
}

func (s *Server) registerConnection(id string, c *conn.Connection) {
	s.mu.Lock()
	s.connections[id] = c
	s.mu.Unlock()
}

func (s *Server) unregisterConnection(id string, playerID protocol.UUID, hadIdentity bool) {
	s.mu.Lock()
	delete(s.connections, id)
	if hadIdentity {
		if existing, ok := s.byPlayer[playerID]; ok && existing == id {
			delete(s.byPlayer, playerID)
		}
	}
	s.mu.Unlock()
}

// connectionCount is read under the same lock discipline as the maps it
// reports on, for the status-response player count.
func (s *Server) connectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// claimPlayerSlot enforces the connection cap and the duplicate-login
// eviction policy. On success it commits the player index entry.
func (s *Server) claimPlayerSlot(id string, playerID protocol.UUID) (evicted *conn.Connection, refused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.MaxPlayers > 0 && len(s.connections) > s.opts.MaxPlayers {
		return nil, true
	}
	if existingID, ok := s.byPlayer[playerID]; ok {
		evicted = s.connections[existingID]
	}
	s.byPlayer[playerID] = id
	return evicted, false
}

func (s *Server) serveConnection(ctx context.Context, id string, netConn net.Conn) {
	c := conn.New(id, netConn, nil, s.opts.KeepAliveInterval, s.opts.KeepAliveTimeout)
	gate := &loginGate{srv: s, c: c}
	c.SetHandler(gate)
	s.registerConnection(id, c)

	c.Run(ctx)

	var playerID protocol.UUID
	hadIdentity := c.Username() != ""
	if hadIdentity {
		playerID = c.UUID()
	}
	s.unregisterConnection(id, playerID, hadIdentity)
}
