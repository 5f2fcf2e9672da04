package protocol

import "bytes"

// PluginMessage is the Play-state plugin channel packet. Protocol 754 has no
// Configuration state (introduced in 762+); mods and resource negotiation
// that would otherwise use that state's packets ride this channel instead.
type PluginMessage struct {
	Channel string
	Data    []byte
}

func ParsePluginMessage(r *bytes.Reader) (*PluginMessage, error) {
	channel, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	data := make([]byte, r.Len())
	if _, err := r.Read(data); err != nil {
		return nil, err
	}
	return &PluginMessage{Channel: channel, Data: data}, nil
}

func CreatePluginMessagePacket(channel string, data []byte) *Packet {
	var buf bytes.Buffer
	_ = WriteString(&buf, channel)
	buf.Write(data)
	return &Packet{
		ID:      C2SPluginMessage,
		Payload: buf.Bytes(),
	}
}

func CreateClientboundPluginMessagePacket(channel string, data []byte) *Packet {
	var buf bytes.Buffer
	_ = WriteString(&buf, channel)
	buf.Write(data)
	return &Packet{
		ID:      S2CPluginMessage,
		Payload: buf.Bytes(),
	}
}
