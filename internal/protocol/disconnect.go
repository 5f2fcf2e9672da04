package protocol

import "bytes"

// CreateLoginDisconnectPacket closes a connection still in the Login state.
// reason is a JSON chat component, e.g. `{"text":"Server full"}`.
func CreateLoginDisconnectPacket(reason string) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteString(buf, reason)
	return &Packet{ID: S2CLoginDisconnect, Payload: buf.Bytes()}
}

// CreatePlayDisconnectPacket closes a connection already in the Play state.
func CreatePlayDisconnectPacket(reason string) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteString(buf, reason)
	return &Packet{ID: S2CPlayDisconnect, Payload: buf.Bytes()}
}
