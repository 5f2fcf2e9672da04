package conn

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/voxborne/mcserver/internal/connerr"
	"github.com/voxborne/mcserver/internal/frame"
	"github.com/voxborne/mcserver/internal/protocol"
)

type recordingHandler struct {
	mu       sync.Mutex
	received []protocol.Packet
	closed   chan *connerr.Error
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{closed: make(chan *connerr.Error, 1)}
}

func (h *recordingHandler) Deliver(c *Connection, pkt protocol.Packet) error {
	h.mu.Lock()
	h.received = append(h.received, pkt)
	h.mu.Unlock()
	return nil
}

func (h *recordingHandler) Closed(c *Connection, cause *connerr.Error) {
	h.closed <- cause
}

func (h *recordingHandler) packetCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

func TestConnectionDeliversPackets(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	handler := newRecordingHandler()
	c := New("test-1", serverConn, handler, 0, 0)
	c.State().Set(protocol.Play)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go c.Run(ctx)

	go func() {
		pkt := protocol.CreateChatMessagePacket("hello")
		frameAndSend(t, clientConn, pkt)
	}()

	deadline := time.After(2 * time.Second)
	for {
		if handler.packetCount() > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for delivered packet")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestConnectionKeepAliveTimeoutClosesConnection(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	handler := newRecordingHandler()
	c := New("test-2", serverConn, handler, 10*time.Millisecond, 20*time.Millisecond)
	c.State().Set(protocol.Play)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go c.Run(ctx)
	go drain(clientConn)

	select {
	case cause := <-handler.closed:
		if cause == nil || cause.Kind != connerr.KeepAliveTimeout {
			t.Fatalf("expected KeepAliveTimeout, got %+v", cause)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connection to close on keep alive timeout")
	}
}

func frameAndSend(t *testing.T, w net.Conn, pkt *protocol.Packet) {
	t.Helper()
	codec := frame.NewCodec(nil, w)
	if err := codec.WritePacket(pkt); err != nil {
		t.Errorf("WritePacket() error = %v", err)
	}
}

func drain(r net.Conn) {
	buf := make([]byte, 4096)
	for {
		if _, err := r.Read(buf); err != nil {
			return
		}
	}
}
