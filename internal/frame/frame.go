// Package frame implements the wire framing layer that wraps every
// internal/protocol.Packet on the socket: an outer VarInt length prefix, an
// optional zlib compression stage (toggled by SetCompression), and an
// optional AES/CFB8 encryption stage (toggled once the login handshake
// completes).
package frame

import (
	"bytes"
	"crypto/cipher"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"

	"github.com/voxborne/mcserver/internal/protocol"
)

// MaxPacketSize bounds a single frame's declared length, guarding against a
// hostile or corrupt length prefix driving an unbounded allocation.
const MaxPacketSize = 2 * 1024 * 1024

// Codec reads and writes framed packets over a connection. ReadPacket and
// WritePacket are each called from a single dedicated goroutine (the
// connection's read loop and write loop respectively), but threshold and the
// two cipher streams are flipped on live from whichever goroutine processes
// the login handshake, so all three are guarded by mu rather than left as
// plain fields.
type Codec struct {
	r io.Reader
	w io.Writer

	mu            sync.Mutex
	threshold     int // -1 disables compression
	encryptStream cipher.Stream
	decryptStream cipher.Stream
}

func NewCodec(r io.Reader, w io.Writer) *Codec {
	return &Codec{r: r, w: w, threshold: -1}
}

// SetCompression enables zlib compression for payloads at or above
// threshold bytes. threshold < 0 disables compression entirely.
//
// Callers that also have a packet in flight announcing the new threshold
// (SetCompression) must apply this after that packet has actually been
// written, not merely queued — see Connection.QueueTransform.
func (c *Codec) SetCompression(threshold int) {
	c.mu.Lock()
	c.threshold = threshold
	c.mu.Unlock()
}

func (c *Codec) getThreshold() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.threshold
}

// SetEncryptStream enables AES/CFB8 encryption on the write side. Like
// SetCompression, callers must make sure any packet that must still go out
// in the clear has already been written before flipping this.
func (c *Codec) SetEncryptStream(stream cipher.Stream) {
	c.mu.Lock()
	c.encryptStream = stream
	c.mu.Unlock()
}

// SetDecryptStream enables AES/CFB8 decryption on the read side. Safe to call
// as soon as the shared secret is known: the client starts encrypting its
// next outbound byte as soon as it sends the EncryptionResponse, so there is
// no "flush first" ordering concern on the read side.
func (c *Codec) SetDecryptStream(stream cipher.Stream) {
	c.mu.Lock()
	c.decryptStream = stream
	c.mu.Unlock()
}

func (c *Codec) getStreams() (encrypt, decrypt cipher.Stream) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encryptStream, c.decryptStream
}

type cryptoReader struct {
	r      io.Reader
	stream cipher.Stream
}

func (cr *cryptoReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.stream.XORKeyStream(p[:n], p[:n])
	}
	return n, err
}

func (c *Codec) reader() io.Reader {
	_, decrypt := c.getStreams()
	if decrypt == nil {
		return c.r
	}
	return &cryptoReader{r: c.r, stream: decrypt}
}

type cryptoWriter struct {
	w      io.Writer
	stream cipher.Stream
}

func (cw *cryptoWriter) Write(p []byte) (int, error) {
	out := make([]byte, len(p))
	cw.stream.XORKeyStream(out, p)
	return cw.w.Write(out)
}

func (c *Codec) writer() io.Writer {
	encrypt, _ := c.getStreams()
	if encrypt == nil {
		return c.w
	}
	return &cryptoWriter{w: c.w, stream: encrypt}
}

// ReadPacket blocks until a full frame arrives, decompressing it if the
// compression threshold is enabled and the frame's data-length says so.
func (c *Codec) ReadPacket() (*protocol.Packet, error) {
	r := c.reader()

	frameLen, err := protocol.ReadVarint(r)
	if err != nil {
		return nil, errors.Wrap(err, "read frame length")
	}
	if frameLen <= 0 {
		return nil, protocol.ErrInvalidPacket
	}
	if frameLen > MaxPacketSize {
		return nil, protocol.ErrPacketTooLarge
	}

	data := make([]byte, frameLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrap(err, "read frame body")
	}

	var body io.Reader = bytes.NewReader(data)

	if c.getThreshold() >= 0 {
		dataLen, err := protocol.ReadVarint(body)
		if err != nil {
			return nil, errors.Wrap(err, "read data length")
		}
		if dataLen != 0 {
			zr, err := zlib.NewReader(body)
			if err != nil {
				return nil, errors.Wrap(err, "open zlib reader")
			}
			defer zr.Close()
			decompressed := make([]byte, dataLen)
			if _, err := io.ReadFull(zr, decompressed); err != nil {
				return nil, errors.Wrap(err, "decompress frame body")
			}
			body = bytes.NewReader(decompressed)
		}
	}

	id, err := protocol.ReadVarint(body)
	if err != nil {
		return nil, errors.Wrap(err, "read packet id")
	}
	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "read packet payload")
	}
	return &protocol.Packet{ID: id, Payload: payload}, nil
}

// WritePacket frames, optionally compresses, optionally encrypts, and sends
// a single packet.
func (c *Codec) WritePacket(pkt *protocol.Packet) error {
	var idAndPayload bytes.Buffer
	if err := protocol.WriteVarint(&idAndPayload, pkt.ID); err != nil {
		return err
	}
	idAndPayload.Write(pkt.Payload)

	threshold := c.getThreshold()
	var frameBody bytes.Buffer
	if threshold < 0 {
		frameBody.Write(idAndPayload.Bytes())
	} else if idAndPayload.Len() < threshold {
		_ = protocol.WriteVarint(&frameBody, 0)
		frameBody.Write(idAndPayload.Bytes())
	} else {
		_ = protocol.WriteVarint(&frameBody, int32(idAndPayload.Len()))
		zw := zlib.NewWriter(&frameBody)
		if _, err := zw.Write(idAndPayload.Bytes()); err != nil {
			return errors.Wrap(err, "compress frame body")
		}
		if err := zw.Close(); err != nil {
			return errors.Wrap(err, "flush zlib writer")
		}
	}

	var out bytes.Buffer
	if err := protocol.WriteVarint(&out, int32(frameBody.Len())); err != nil {
		return err
	}
	out.Write(frameBody.Bytes())

	_, err := c.writer().Write(out.Bytes())
	return err
}
