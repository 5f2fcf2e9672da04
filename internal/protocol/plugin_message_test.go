package protocol

import (
	"bytes"
	"testing"
)

func TestParsePluginMessage(t *testing.T) {
	channel := "minecraft:brand"
	data := []byte("vanilla")

	var buf bytes.Buffer
	_ = WriteString(&buf, channel)
	buf.Write(data)

	r := bytes.NewReader(buf.Bytes())
	msg, err := ParsePluginMessage(r)
	if err != nil {
		t.Fatalf("ParsePluginMessage() error = %v", err)
	}
	if msg.Channel != channel {
		t.Errorf("Channel = %q, want %q", msg.Channel, channel)
	}
	if !bytes.Equal(msg.Data, data) {
		t.Errorf("Data = %v, want %v", msg.Data, data)
	}
}

func TestCreatePluginMessagePacket(t *testing.T) {
	pkt := CreatePluginMessagePacket("minecraft:brand", []byte("locus"))
	if pkt.ID != C2SPluginMessage {
		t.Errorf("ID = %#x, want %#x", pkt.ID, C2SPluginMessage)
	}
	msg, err := ParsePluginMessage(bytes.NewReader(pkt.Payload))
	if err != nil {
		t.Fatalf("ParsePluginMessage() error = %v", err)
	}
	if msg.Channel != "minecraft:brand" || string(msg.Data) != "locus" {
		t.Errorf("round trip mismatch: %+v", msg)
	}
}

func TestCreateClientboundPluginMessagePacket(t *testing.T) {
	pkt := CreateClientboundPluginMessagePacket("minecraft:brand", []byte("server"))
	if pkt.ID != S2CPluginMessage {
		t.Errorf("ID = %#x, want %#x", pkt.ID, S2CPluginMessage)
	}
}
