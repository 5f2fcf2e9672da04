package mccrypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"math/big"

	"github.com/pkg/errors"
)

// KeyPair holds the server's login-phase RSA key pair, generated fresh per
// process start and used only to wrap the client's AES shared secret.
type KeyPair struct {
	private *rsa.PrivateKey
	derPub  []byte
}

func GenerateKeyPair() (*KeyPair, error) {
	private, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		return nil, errors.Wrap(err, "generate RSA key pair")
	}
	derPub, err := x509.MarshalPKIXPublicKey(&private.PublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "marshal RSA public key")
	}
	return &KeyPair{private: private, derPub: derPub}, nil
}

// PublicKeyDER is the DER-encoded public key sent in EncryptionRequest.
func (kp *KeyPair) PublicKeyDER() []byte { return kp.derPub }

// DecryptSharedSecret unwraps the client's RSA-encrypted AES shared secret.
func (kp *KeyPair) DecryptSharedSecret(encrypted []byte) ([]byte, error) {
	secret, err := rsa.DecryptPKCS1v15(rand.Reader, kp.private, encrypted)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt shared secret")
	}
	return secret, nil
}

// DecryptVerifyToken unwraps the client's echoed verify token.
func (kp *KeyPair) DecryptVerifyToken(encrypted []byte) ([]byte, error) {
	token, err := rsa.DecryptPKCS1v15(rand.Reader, kp.private, encrypted)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt verify token")
	}
	return token, nil
}

// ServerIDHash computes the session-server join hash: SHA-1 over the empty
// server id, the shared secret, and the DER public key, interpreted as a
// signed big-endian integer and formatted in hex the way Mojang's servers
// expect (a leading '-' for a negative digest rather than two's complement).
func (kp *KeyPair) ServerIDHash(sharedSecret []byte) string {
	h := sha1.New()
	h.Write([]byte{}) // server id is always the empty string for online-mode joins
	h.Write(sharedSecret)
	h.Write(kp.derPub)
	digest := h.Sum(nil)
	return mojangHexDigest(digest)
}

func mojangHexDigest(digest []byte) string {
	negative := digest[0]&0x80 != 0
	if negative {
		for i, j := 0, len(digest)-1; i < j; i, j = i+1, j-1 {
			digest[i], digest[j] = digest[j], digest[i]
		}
		carry := true
		for i := range digest {
			digest[i] = ^digest[i]
			if carry {
				digest[i]++
				carry = digest[i] == 0
			}
		}
		for i, j := 0, len(digest)-1; i < j; i, j = i+1, j-1 {
			digest[i], digest[j] = digest[j], digest[i]
		}
	}
	n := new(big.Int).SetBytes(digest)
	hex := n.Text(16)
	if negative {
		return "-" + hex
	}
	return hex
}
