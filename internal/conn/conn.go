// Package conn drives a single client connection: the frame read loop, the
// bounded write loop, and the keep-alive timer. It has no knowledge of game
// state beyond the four-state handshake machine in internal/protocol;
// everything else is dispatched to a Handler.
package conn

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/voxborne/mcserver/internal/connerr"
	"github.com/voxborne/mcserver/internal/frame"
	"github.com/voxborne/mcserver/internal/protocol"
)

// outboundQueueSize bounds the per-connection write queue (spec default).
const outboundQueueSize = 256

// Handler is the boundary between a Connection and game logic. Deliver is
// called for every successfully framed packet; the handler decides what it
// means given the connection's current state.
type Handler interface {
	Deliver(c *Connection, pkt protocol.Packet) error
	// Closed is called once, after the read/write loops have both stopped.
	Closed(c *Connection, cause *connerr.Error)
}

// outboundItem is either a packet to write or a codec transform to apply.
// Both travel through the same channel so the writer applies a transform
// (enabling compression or encryption) at exactly the point its FIFO
// position implies, never re-framing a packet queued ahead of it.
type outboundItem struct {
	pkt    *protocol.Packet
	lossy  bool
	action func(*frame.Codec)
}

// Connection wraps one client socket end to end: framing, state, keep-alive,
// and a bounded outbound queue serviced by a single writer goroutine.
type Connection struct {
	netConn net.Conn
	codec   *frame.Codec
	state   *protocol.ConnState
	handler Handler

	id       string
	username string
	uuid     protocol.UUID

	outbound chan outboundItem
	closeCh  chan struct{}
	closeOnce sync.Once

	cancelMu sync.Mutex
	cancel   context.CancelFunc

	lastActivity   atomicTime
	pendingKeepAlive atomicInt64

	keepAliveInterval time.Duration
	keepAliveTimeout  time.Duration
}

// atomicTime is a tiny mutex-guarded clock; the keep-alive goroutine and the
// read loop touch it from different goroutines.
type atomicTime struct {
	mu sync.Mutex
	t  time.Time
}

func (a *atomicTime) set(t time.Time) {
	a.mu.Lock()
	a.t = t
	a.mu.Unlock()
}

func (a *atomicTime) get() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.t
}

// atomicInt64 tracks the outstanding KeepAlive token, or 0 when none is
// awaiting an echo.
type atomicInt64 struct {
	mu sync.Mutex
	v  int64
}

func (a *atomicInt64) set(v int64) {
	a.mu.Lock()
	a.v = v
	a.mu.Unlock()
}

func (a *atomicInt64) get() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.v
}

func New(id string, netConn net.Conn, handler Handler, keepAliveInterval, keepAliveTimeout time.Duration) *Connection {
	if tcpConn, ok := netConn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}
	c := &Connection{
		netConn:           netConn,
		codec:             frame.NewCodec(netConn, netConn),
		state:             protocol.NewConnState(),
		handler:           handler,
		id:                id,
		outbound:          make(chan outboundItem, outboundQueueSize),
		closeCh:           make(chan struct{}),
		keepAliveInterval: keepAliveInterval,
		keepAliveTimeout:  keepAliveTimeout,
	}
	c.lastActivity.set(time.Now())
	return c
}

// SetHandler assigns (or replaces) the Handler that Run will dispatch to. It
// must be called before Run starts, since the read loop reads c.handler
// without further synchronization once running.
func (c *Connection) SetHandler(handler Handler) {
	c.handler = handler
}

func (c *Connection) ID() string              { return c.id }
func (c *Connection) RemoteAddr() net.Addr     { return c.netConn.RemoteAddr() }
func (c *Connection) State() *protocol.ConnState { return c.state }
func (c *Connection) Username() string         { return c.username }
func (c *Connection) UUID() protocol.UUID      { return c.uuid }
func (c *Connection) Codec() *frame.Codec      { return c.codec }

func (c *Connection) SetIdentity(username string, id protocol.UUID) {
	c.username = username
	c.uuid = id
}

// Send enqueues a packet for the write loop. A lossy packet is dropped
// rather than blocking when the outbound queue is full; a non-lossy packet
// blocks until there is room or the connection closes.
func (c *Connection) Send(pkt *protocol.Packet, lossy bool) {
	item := outboundItem{pkt: pkt, lossy: lossy}
	if lossy {
		select {
		case c.outbound <- item:
		case <-c.closeCh:
		default:
			slog.Warn("dropping lossy packet: outbound queue full", "conn", c.id, "packetID", pkt.ID)
		}
		return
	}
	select {
	case c.outbound <- item:
	case <-c.closeCh:
	}
}

// QueueTransform schedules a codec change (enabling compression or
// encryption) to run on the write loop goroutine, in FIFO order with
// whatever packets are already queued ahead of it. Use this instead of
// calling the Codec setters directly whenever a just-Sent packet announces
// the change (SetCompression, EncryptionRequest/Response): it guarantees the
// announcing packet is written under the old framing and every packet
// queued after this call under the new one.
func (c *Connection) QueueTransform(action func(*frame.Codec)) {
	item := outboundItem{action: action}
	select {
	case c.outbound <- item:
	case <-c.closeCh:
	}
}

// Close tears the connection down from outside its own read/write loops:
// eviction (a duplicate login) and admin kicks call Send to queue a
// Disconnect packet, then Close so the write loop flushes it before the
// socket closes. A no-op if Run has not started yet.
func (c *Connection) Close() {
	c.cancelMu.Lock()
	cancel := c.cancel
	c.cancelMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Run drives the connection until the context is cancelled, the socket
// closes, or a fatal error occurs. It blocks until both loops have exited.
func (c *Connection) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancelMu.Lock()
	c.cancel = cancel
	c.cancelMu.Unlock()
	defer cancel()

	var wg sync.WaitGroup
	var causeMu sync.Mutex
	var cause *connerr.Error
	recordCause := func(err *connerr.Error) {
		causeMu.Lock()
		if cause == nil {
			cause = err
		}
		causeMu.Unlock()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		recordCause(c.readLoop())
	}()

	writeDone := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(writeDone)
		defer cancel()
		recordCause(c.writeLoop(ctx))
	}()

	if c.keepAliveInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer cancel()
			recordCause(c.keepAliveLoop(ctx))
		}()
	}

	<-ctx.Done()
	c.closeOnce.Do(func() { close(c.closeCh) })
	// Let the write loop drain any queued Disconnect before the socket
	// closes out from under it; only then unblock the read loop's Read.
	<-writeDone
	_ = c.netConn.Close()
	wg.Wait()

	c.handler.Closed(c, cause)
}

func (c *Connection) readLoop() *connerr.Error {
	for {
		pkt, err := c.codec.ReadPacket()
		if err != nil {
			return connerr.Wrap(connerr.Io, err, "read packet")
		}
		c.lastActivity.set(time.Now())

		if c.state.Get() == protocol.Play && pkt.ID == protocol.C2SPlayKeepAlive {
			echo, err := protocol.ParseKeepAlive(bytes.NewReader(pkt.Payload))
			if err != nil {
				return connerr.Wrap(connerr.Malformed, err, "parse keep alive echo")
			}
			if want := c.pendingKeepAlive.get(); want == 0 || echo.KeepAliveID != want {
				return connerr.New(connerr.KeepAliveTimeout, "keep alive echo mismatch")
			}
			c.pendingKeepAlive.set(0)
			continue
		}

		if err := c.handler.Deliver(c, *pkt); err != nil {
			if cerr, ok := err.(*connerr.Error); ok {
				return cerr
			}
			return connerr.Wrap(connerr.ProtocolViolation, err, "handler delivery failed")
		}
	}
}

func (c *Connection) writeLoop(ctx context.Context) *connerr.Error {
	for {
		select {
		case <-ctx.Done():
			return c.drainOutbound()
		case item := <-c.outbound:
			if err := c.writeItem(item); err != nil {
				return err
			}
		}
	}
}

// drainOutbound flushes whatever is already sitting in the outbound queue
// before the socket closes. A Disconnect packet queued just before the read
// loop or handler returns a fatal error would otherwise race the resulting
// context cancellation and never reach the client.
func (c *Connection) drainOutbound() *connerr.Error {
	for {
		select {
		case item := <-c.outbound:
			if err := c.writeItem(item); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (c *Connection) writeItem(item outboundItem) *connerr.Error {
	if item.action != nil {
		item.action(c.codec)
		return nil
	}
	if err := c.codec.WritePacket(item.pkt); err != nil {
		return connerr.Wrap(connerr.Io, err, "write packet")
	}
	return nil
}

func (c *Connection) keepAliveLoop(ctx context.Context) *connerr.Error {
	ticker := time.NewTicker(c.keepAliveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if c.state.Get() != protocol.Play {
				continue
			}
			if pending := c.pendingKeepAlive.get(); pending != 0 {
				if time.Since(c.lastActivity.get()) > c.keepAliveTimeout {
					return connerr.New(connerr.KeepAliveTimeout, "client did not echo keep alive within timeout")
				}
				continue
			}
			token := time.Now().UnixNano()
			c.pendingKeepAlive.set(token)
			c.Send(protocol.CreateKeepAlivePacket(token, protocol.S2CPlayKeepAlive), false)
		}
	}
}
