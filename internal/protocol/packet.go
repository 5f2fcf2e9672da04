package protocol

import (
	"bytes"
	"io"
)

// Packet is a decoded protocol message: a packet ID plus its raw,
// not-yet-parsed payload. Framing (length prefix, compression, encryption)
// lives in the frame package; Packet only knows about the VarInt ID and the
// bytes that follow it within one de-framed payload.
type Packet struct {
	ID      int32
	Payload []byte
}

// DecodePacket splits a single de-framed payload into its VarInt ID and the
// remaining payload bytes.
func DecodePacket(data []byte) (Packet, error) {
	r := bytes.NewReader(data)
	id, err := ReadVarint(r)
	if err != nil {
		return Packet{}, err
	}
	payload, err := io.ReadAll(r)
	if err != nil {
		return Packet{}, err
	}
	return Packet{ID: id, Payload: payload}, nil
}

// EncodePacket concatenates a packet's VarInt ID and payload into the raw
// bytes the frame writer will length-prefix, optionally compress, and
// optionally encrypt.
func EncodePacket(p Packet) ([]byte, error) {
	buf := AcquireBuffer()
	defer buf.Release()
	if err := WriteVarint(buf, p.ID); err != nil {
		return nil, err
	}
	if _, err := buf.Write(p.Payload); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
