package protocol

import "bytes"

// CreateSetCompressionPacket announces the compression threshold both sides
// switch to immediately after this packet: any frame at or above threshold
// bytes is zlib-compressed from here on.
func CreateSetCompressionPacket(threshold int32) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, threshold)
	return &Packet{ID: S2CSetCompression, Payload: buf.Bytes()}
}
