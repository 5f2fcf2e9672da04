// Package mccrypto implements the login-phase key exchange and the AES/CFB8
// stream cipher the Java Edition protocol uses once encryption is enabled.
//
// CFB8 (8-bit-segment cipher feedback) is not exposed by crypto/cipher: Go's
// NewCFBEncrypter/Decrypter only implement full-block-segment CFB. No example
// in this codebase's dependency corpus implements byte-at-a-time CFB8 either,
// so this file builds it directly on crypto/aes.Block, the smallest primitive
// that can express it.
package mccrypto

import "crypto/cipher"

// cfb8 is a cipher.Stream that encrypts or decrypts one byte at a time,
// shifting each ciphertext byte (the output on encrypt, the input on
// decrypt) into the feedback register exactly as the protocol's reference
// implementation does.
type cfb8 struct {
	block     cipher.Block
	iv        []byte
	decrypt   bool
	blockSize int
}

// NewCFB8Encrypter returns a stream cipher that encrypts in CFB8 mode.
func NewCFB8Encrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, false)
}

// NewCFB8Decrypter returns a stream cipher that decrypts in CFB8 mode.
func NewCFB8Decrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, true)
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) cipher.Stream {
	blockSize := block.BlockSize()
	if len(iv) != blockSize {
		panic("mccrypto: IV length must equal block size")
	}
	register := make([]byte, blockSize)
	copy(register, iv)
	return &cfb8{block: block, iv: register, decrypt: decrypt, blockSize: blockSize}
}

func (c *cfb8) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("mccrypto: output smaller than input")
	}
	scratch := make([]byte, c.blockSize)
	for i := range src {
		c.block.Encrypt(scratch, c.iv)

		var cipherByte byte
		if c.decrypt {
			cipherByte = src[i]
			dst[i] = src[i] ^ scratch[0]
		} else {
			dst[i] = src[i] ^ scratch[0]
			cipherByte = dst[i]
		}

		copy(c.iv, c.iv[1:])
		c.iv[c.blockSize-1] = cipherByte
	}
}
