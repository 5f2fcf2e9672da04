package protocol

import "bytes"

// Handshake is the single packet sent in the Handshaking state (0x00). It
// carries the client's declared next state: 1 for Status, 2 for Login.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       int32
}

func ParseHandshake(payload []byte) (*Handshake, error) {
	r := bytes.NewReader(payload)
	protocolVersion, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	serverAddress, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	serverPort, err := ReadUint16(r)
	if err != nil {
		return nil, err
	}
	nextState, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}

	return &Handshake{
		ProtocolVersion: protocolVersion,
		ServerAddress:   serverAddress,
		ServerPort:      serverPort,
		NextState:       nextState,
	}, nil
}
