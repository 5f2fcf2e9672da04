package protocol

import "io"

// LoginStart is the sole Login-state packet from the client: a bare
// username. Protocol 754 predates the UUID field added to this packet in
// 759+ (1.19); the server supplies the UUID itself, from Mojang's session
// server in online mode or GenerateOfflineUUID otherwise.
type LoginStart struct {
	Username string
}

func ParseLoginStart(r io.Reader) (*LoginStart, error) {
	username, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	return &LoginStart{Username: username}, nil
}
