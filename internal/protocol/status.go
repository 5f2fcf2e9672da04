package protocol

import (
	"bytes"
	"io"
)

// CreateStatusResponsePacket wraps the server list ping JSON document (the
// version, player count/sample, and MOTD) as the Status-state response. Its
// shape is defined by the vanilla server list ping protocol, not here.
func CreateStatusResponsePacket(jsonResponse string) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteString(buf, jsonResponse)
	return &Packet{ID: S2CStatusResponse, Payload: buf.Bytes()}
}

// StatusPing/StatusPong carry an opaque 64-bit payload the client expects
// echoed back unchanged, used to measure round-trip latency.
type StatusPing struct {
	Payload int64
}

func ParseStatusPing(r io.Reader) (*StatusPing, error) {
	payload, err := ReadInt64(r)
	if err != nil {
		return nil, err
	}
	return &StatusPing{Payload: payload}, nil
}

func CreateStatusPongPacket(payload int64) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteInt64(buf, payload)
	return &Packet{ID: S2CStatusPong, Payload: buf.Bytes()}
}
