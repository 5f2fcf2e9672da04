package server

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/voxborne/mcserver/internal/auth"
	"github.com/voxborne/mcserver/internal/conn"
	"github.com/voxborne/mcserver/internal/connerr"
	"github.com/voxborne/mcserver/internal/event"
	"github.com/voxborne/mcserver/internal/frame"
	"github.com/voxborne/mcserver/internal/mccrypto"
	"github.com/voxborne/mcserver/internal/protocol"
)

// loginGate is the per-connection conn.Handler installed before a
// connection ever reaches Play. It drives the Handshaking/Status/Login
// states described in §4.4, then hands off every subsequent packet to the
// server's shared handler.Handler once the connection reaches Play.
type loginGate struct {
	srv *Server
	c   *conn.Connection

	verifyToken []byte
	pendingName string
}

func (g *loginGate) Deliver(c *conn.Connection, pkt protocol.Packet) error {
	switch c.State().Get() {
	case protocol.Handshaking:
		return g.handleHandshake(pkt)
	case protocol.Status:
		return g.handleStatus(pkt)
	case protocol.Login:
		return g.handleLogin(pkt)
	default:
		return g.srv.deliver.Deliver(c, pkt)
	}
}

func (g *loginGate) Closed(c *conn.Connection, cause *connerr.Error) {
	g.srv.deliver.Closed(c, cause)
}

func (g *loginGate) handleHandshake(pkt protocol.Packet) error {
	if pkt.ID != protocol.C2SHandshake {
		return connerr.New(connerr.ProtocolViolation, "expected Handshake packet")
	}
	hs, err := protocol.ParseHandshake(pkt.Payload)
	if err != nil {
		return connerr.Wrap(connerr.Malformed, err, "parse handshake")
	}
	switch hs.NextState {
	case 1:
		g.c.State().Set(protocol.Status)
	case 2:
		g.c.State().Set(protocol.Login)
	default:
		return connerr.New(connerr.ProtocolViolation, fmt.Sprintf("invalid next state %d", hs.NextState))
	}
	return nil
}

func (g *loginGate) handleStatus(pkt protocol.Packet) error {
	switch pkt.ID {
	case protocol.C2SStatusRequest:
		g.srv.bus.Publish(event.TopicStatusRequest, &event.StatusRequestEvent{RemoteAddr: g.c.RemoteAddr().String()})
		body := g.srv.opts.StatusJSON(g.srv.connectionCount(), g.srv.opts.MaxPlayers, g.srv.opts.MOTD)
		g.c.Send(protocol.CreateStatusResponsePacket(body), false)
		return nil
	case protocol.C2SStatusPing:
		ping, err := protocol.ParseStatusPing(bytes.NewReader(pkt.Payload))
		if err != nil {
			return connerr.Wrap(connerr.Malformed, err, "parse status ping")
		}
		g.c.Send(protocol.CreateStatusPongPacket(ping.Payload), false)
		return nil
	default:
		return nil
	}
}

func (g *loginGate) handleLogin(pkt protocol.Packet) error {
	switch pkt.ID {
	case protocol.C2SLoginStart:
		return g.handleLoginStart(pkt)
	case protocol.C2SEncryptionResponse:
		return g.handleEncryptionResponse(pkt)
	default:
		return nil
	}
}

func (g *loginGate) handleLoginStart(pkt protocol.Packet) error {
	start, err := protocol.ParseLoginStart(bytes.NewReader(pkt.Payload))
	if err != nil {
		return connerr.Wrap(connerr.Malformed, err, "parse login start")
	}
	g.pendingName = start.Username

	if !g.srv.opts.OnlineMode {
		return g.finishLogin(protocol.GenerateOfflineUUID(start.Username), nil)
	}

	token := make([]byte, 4)
	if _, err := rand.Read(token); err != nil {
		return connerr.Wrap(connerr.Io, err, "generate verify token")
	}
	g.verifyToken = token
	g.c.Send(protocol.CreateEncryptionRequestPacket(g.srv.keys.PublicKeyDER(), token), false)
	return nil
}

func (g *loginGate) handleEncryptionResponse(pkt protocol.Packet) error {
	resp, err := protocol.ParseEncryptionResponse(bytes.NewReader(pkt.Payload))
	if err != nil {
		return connerr.Wrap(connerr.Malformed, err, "parse encryption response")
	}

	token, err := g.srv.keys.DecryptVerifyToken(resp.VerifyToken)
	if err != nil {
		return connerr.Wrap(connerr.ProtocolViolation, err, "decrypt verify token")
	}
	if !bytes.Equal(token, g.verifyToken) {
		return connerr.New(connerr.ProtocolViolation, "verify token mismatch")
	}

	secret, err := g.srv.keys.DecryptSharedSecret(resp.SharedSecret)
	if err != nil {
		return connerr.Wrap(connerr.ProtocolViolation, err, "decrypt shared secret")
	}

	block, err := aes.NewCipher(secret)
	if err != nil {
		return connerr.Wrap(connerr.Io, err, "build AES cipher")
	}
	var encryptIV, decryptIV [16]byte
	copy(encryptIV[:], secret)
	copy(decryptIV[:], secret)

	// The client starts encrypting the moment it sends EncryptionResponse,
	// so the decrypt side can flip immediately. The encrypt side is queued
	// through the write loop so it only takes effect once any packet still
	// in flight unencrypted (there is none queued here, but future callers
	// may add one) has actually gone out.
	g.c.Codec().SetDecryptStream(newDecryptBlock(secret, decryptIV[:]))
	g.c.QueueTransform(func(codec *frame.Codec) {
		codec.SetEncryptStream(mccrypto.NewCFB8Encrypter(block, encryptIV[:]))
	})

	profile, err := g.srv.verify.VerifySession(context.Background(), g.pendingName, g.srv.keys.ServerIDHash(secret))
	if err != nil {
		g.c.Send(protocol.CreateLoginDisconnectPacket(`{"text":"Failed to verify username"}`), false)
		return connerr.Wrap(connerr.AuthFailed, err, "session verification failed")
	}
	return g.finishLogin(profile.ID, convertAuthProperties(profile.Properties))
}

func convertAuthProperties(props []auth.Property) []protocol.Property {
	out := make([]protocol.Property, len(props))
	for i, p := range props {
		out[i] = protocol.Property{Name: p.Name, Value: p.Value}
		if p.Signature != "" {
			sig := p.Signature
			out[i].Signature = &sig
		}
	}
	return out
}

// newDecryptBlock builds a fresh cipher.Block for the decrypt direction so
// the encrypt and decrypt CFB8 streams never share mutable state.
func newDecryptBlock(secret, iv []byte) cipher.Stream {
	block, err := aes.NewCipher(secret)
	if err != nil {
		panic(err) // secret length is already validated by DecryptSharedSecret's RSA round trip
	}
	return mccrypto.NewCFB8Decrypter(block, iv)
}

func (g *loginGate) finishLogin(id protocol.UUID, properties []protocol.Property) error {
	evicted, refused := g.srv.claimPlayerSlot(g.c.ID(), id)
	if refused {
		g.c.Send(protocol.CreateLoginDisconnectPacket(`{"text":"The server is full"}`), false)
		return connerr.New(connerr.Capacity, "connection cap exceeded")
	}
	if evicted != nil {
		evicted.Send(protocol.CreatePlayDisconnectPacket(`{"text":"Logged in from another location"}`), false)
		evicted.Close()
	}

	if g.srv.opts.CompressionThreshold >= 0 {
		threshold := g.srv.opts.CompressionThreshold
		g.c.Send(protocol.CreateSetCompressionPacket(threshold), false)
		// Queued so the writer flips the threshold only after SetCompression
		// itself has gone out uncompressed; LoginSuccess, queued next, is
		// the first packet framed under the new threshold.
		g.c.QueueTransform(func(codec *frame.Codec) {
			codec.SetCompression(int(threshold))
		})
	}

	g.c.Send(protocol.CreateLoginSuccessPacket(id, g.pendingName, properties), false)
	g.c.SetIdentity(g.pendingName, id)
	g.c.State().Set(protocol.Play)

	g.srv.bus.Publish(event.TopicJoin, &event.JoinEvent{Username: g.pendingName, UUID: id})
	return nil
}
