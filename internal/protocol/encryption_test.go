package protocol

import (
	"bytes"
	"testing"
)

func TestCreateEncryptionRequestPacket(t *testing.T) {
	pubKey := []byte{0x01, 0x02, 0x03}
	token := []byte{0xAA, 0xBB, 0xCC, 0xDD}

	pkt := CreateEncryptionRequestPacket(pubKey, token)
	if pkt.ID != S2CEncryptionRequest {
		t.Fatalf("ID = %#x, want %#x", pkt.ID, S2CEncryptionRequest)
	}

	r := bytes.NewReader(pkt.Payload)
	serverID, err := ReadString(r)
	if err != nil || serverID != "" {
		t.Fatalf("ReadString() = %q, %v; want empty string", serverID, err)
	}
	keyLen, _ := ReadVarint(r)
	gotKey := make([]byte, keyLen)
	r.Read(gotKey)
	if !bytes.Equal(gotKey, pubKey) {
		t.Errorf("public key = %v, want %v", gotKey, pubKey)
	}
	tokenLen, _ := ReadVarint(r)
	gotToken := make([]byte, tokenLen)
	r.Read(gotToken)
	if !bytes.Equal(gotToken, token) {
		t.Errorf("verify token = %v, want %v", gotToken, token)
	}
}

func TestParseEncryptionResponse(t *testing.T) {
	secret := []byte{0x01, 0x02, 0x03, 0x04}
	token := []byte{0xAA, 0xBB}

	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, int32(len(secret)))
	buf.Write(secret)
	_ = WriteVarint(buf, int32(len(token)))
	buf.Write(token)

	got, err := ParseEncryptionResponse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ParseEncryptionResponse() error = %v", err)
	}
	if !bytes.Equal(got.SharedSecret, secret) {
		t.Errorf("SharedSecret = %v, want %v", got.SharedSecret, secret)
	}
	if !bytes.Equal(got.VerifyToken, token) {
		t.Errorf("VerifyToken = %v, want %v", got.VerifyToken, token)
	}
}

func TestParseEncryptionResponseIncompleteData(t *testing.T) {
	_, err := ParseEncryptionResponse(bytes.NewReader([]byte{0x10}))
	if err == nil {
		t.Fatal("expected error for truncated payload")
	}
}
