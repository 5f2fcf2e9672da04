package protocol

import (
	"bytes"
	"io"
)

// EncryptionRequest is the server's login-phase challenge: its DER public
// key and a random verify token the client must echo back encrypted.
type EncryptionRequest struct {
	ServerID    string
	PublicKey   []byte
	VerifyToken []byte
}

func CreateEncryptionRequestPacket(publicKey, verifyToken []byte) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteString(buf, "")
	_ = WriteVarint(buf, int32(len(publicKey)))
	buf.Write(publicKey)
	_ = WriteVarint(buf, int32(len(verifyToken)))
	buf.Write(verifyToken)
	return &Packet{ID: S2CEncryptionRequest, Payload: buf.Bytes()}
}

// EncryptionResponse is the client's reply: the shared secret and verify
// token, both RSA-encrypted under the server's public key.
type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

func ParseEncryptionResponse(r io.Reader) (*EncryptionResponse, error) {
	secretLen, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	secret := make([]byte, secretLen)
	if _, err := io.ReadFull(r, secret); err != nil {
		return nil, ErrShortRead
	}
	tokenLen, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	token := make([]byte, tokenLen)
	if _, err := io.ReadFull(r, token); err != nil {
		return nil, ErrShortRead
	}
	return &EncryptionResponse{SharedSecret: secret, VerifyToken: token}, nil
}
