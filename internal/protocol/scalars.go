package protocol

import (
	"encoding/binary"
	"io"
	"math"
)

// Fixed-width scalar shapes. All multi-byte scalars are big-endian per
// spec.md §3; unlike the teacher's conditional-byte-swap approach this uses
// explicit to/from-big-endian conversions only.

func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ErrShortRead
	}
	return buf[0], nil
}

func WriteByte(w io.Writer, value byte) error {
	_, err := w.Write([]byte{value})
	return err
}

func ReadInt8(r io.Reader) (int8, error) {
	b, err := ReadByte(r)
	return int8(b), err
}

func WriteInt8(w io.Writer, value int8) error {
	return WriteByte(w, byte(value))
}

func ReadBool(r io.Reader) (bool, error) {
	b, err := ReadByte(r)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func WriteBool(w io.Writer, value bool) error {
	if value {
		return WriteByte(w, 1)
	}
	return WriteByte(w, 0)
}

func ReadUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ErrShortRead
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func WriteUint16(w io.Writer, value uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], value)
	_, err := w.Write(buf[:])
	return err
}

func ReadInt16(r io.Reader) (int16, error) {
	v, err := ReadUint16(r)
	return int16(v), err
}

func WriteInt16(w io.Writer, value int16) error {
	return WriteUint16(w, uint16(value))
}

func ReadInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ErrShortRead
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func WriteInt32(w io.Writer, value int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadInt64(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ErrShortRead
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func WriteInt64(w io.Writer, value int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadFloat(r io.Reader) (float32, error) {
	bits, err := ReadInt32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(bits)), nil
}

func WriteFloat(w io.Writer, value float32) error {
	return WriteInt32(w, int32(math.Float32bits(value)))
}

func ReadDouble(r io.Reader) (float64, error) {
	bits, err := ReadInt64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(bits)), nil
}

func WriteDouble(w io.Writer, value float64) error {
	return WriteInt64(w, int64(math.Float64bits(value)))
}

// Angle is a rotation expressed in units of 1/256 of a full turn.
type Angle byte

func ReadAngle(r io.Reader) (Angle, error) {
	b, err := ReadByte(r)
	return Angle(b), err
}

func WriteAngle(w io.Writer, value Angle) error {
	return WriteByte(w, byte(value))
}

// Degrees converts the angle to degrees in [0, 360).
func (a Angle) Degrees() float64 {
	return float64(a) * 360.0 / 256.0
}
