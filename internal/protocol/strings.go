package protocol

import (
	"io"
	"unicode/utf8"
)

// MaxStringCodePoints is the protocol's ceiling on String length, in UTF-8
// code points (not bytes).
const MaxStringCodePoints = 32767

type lenLimiter interface {
	Len() int
}

// ReadString reads a VarInt byte-length prefix followed by UTF-8 payload.
// A negative length, a length that overruns the remaining frame (when the
// reader exposes one, e.g. *Buffer or *bytes.Reader), invalid UTF-8, or a
// code point count above MaxStringCodePoints are all Malformed.
func ReadString(r io.Reader) (string, error) {
	length, err := ReadVarint(r)
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", ErrMalformed
	}
	if lim, ok := r.(lenLimiter); ok && int(length) > lim.Len() {
		return "", ErrMalformed
	}
	raw := make([]byte, length)
	if _, err := io.ReadFull(r, raw); err != nil {
		return "", ErrShortRead
	}
	if !utf8.Valid(raw) {
		return "", ErrMalformed
	}
	s := string(raw)
	if utf8.RuneCountInString(s) > MaxStringCodePoints {
		return "", ErrStringTooLong
	}
	return s, nil
}

// WriteString writes a VarInt byte-length prefix followed by the UTF-8
// payload. The caller is responsible for keeping s within
// MaxStringCodePoints; WriteString does not re-validate on the write path.
func WriteString(w io.Writer, s string) error {
	if err := WriteVarint(w, int32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

// ReadByteArray reads a VarInt count prefix then that many raw bytes.
func ReadByteArray(r io.Reader) ([]byte, error) {
	length, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, ErrMalformed
	}
	if lim, ok := r.(lenLimiter); ok && int(length) > lim.Len() {
		return nil, ErrMalformed
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, ErrShortRead
	}
	return data, nil
}

// WriteByteArray writes a VarInt count prefix then the raw bytes.
func WriteByteArray(w io.Writer, data []byte) error {
	if err := WriteVarint(w, int32(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
