package mccrypto

import (
	"bytes"
	"crypto/aes"
	"crypto/rand"
	"testing"
)

func TestCFB8RoundTrip(t *testing.T) {
	key := make([]byte, 16)
	iv := make([]byte, 16)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("rand.Read(key) error = %v", err)
	}
	if _, err := rand.Read(iv); err != nil {
		t.Fatalf("rand.Read(iv) error = %v", err)
	}

	plaintext := []byte("the quick brown fox jumps over the lazy dog, 1.16.5 protocol 754")

	encBlock, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher error = %v", err)
	}
	enc := NewCFB8Encrypter(encBlock, iv)
	ciphertext := make([]byte, len(plaintext))
	enc.XORKeyStream(ciphertext, plaintext)

	if bytes.Equal(ciphertext, plaintext) {
		t.Fatal("ciphertext must not equal plaintext")
	}

	decBlock, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher error = %v", err)
	}
	dec := NewCFB8Decrypter(decBlock, iv)
	decrypted := make([]byte, len(ciphertext))
	dec.XORKeyStream(decrypted, ciphertext)

	if !bytes.Equal(decrypted, plaintext) {
		t.Fatalf("decrypted = %q, want %q", decrypted, plaintext)
	}
}

func TestCFB8StreamAcrossMultipleWrites(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 16)
	iv := bytes.Repeat([]byte{0x24}, 16)

	plaintext := []byte("split across several XORKeyStream calls to exercise register carry")

	encBlock, _ := aes.NewCipher(key)
	enc := NewCFB8Encrypter(encBlock, iv)

	wholeBlock, _ := aes.NewCipher(key)
	var whole bytes.Buffer
	wholeEnc := NewCFB8Encrypter(wholeBlock, iv)
	wholeOut := make([]byte, len(plaintext))
	wholeEnc.XORKeyStream(wholeOut, plaintext)
	whole.Write(wholeOut)

	split := make([]byte, len(plaintext))
	chunks := [][]byte{plaintext[:5], plaintext[5:17], plaintext[17:]}
	offset := 0
	for _, chunk := range chunks {
		enc.XORKeyStream(split[offset:offset+len(chunk)], chunk)
		offset += len(chunk)
	}

	if !bytes.Equal(split, whole.Bytes()) {
		t.Fatalf("chunked encryption diverged from single-call encryption")
	}
}
