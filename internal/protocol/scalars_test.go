package protocol

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand"
	"testing"
)

// TestBigEndianScalars exercises spec testable property 3: encode(x) ==
// x.to_be_bytes() for every fixed scalar shape.
func TestBigEndianScalars(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		v16 := int16(rnd.Uint32())
		buf := &bytes.Buffer{}
		_ = WriteInt16(buf, v16)
		want := make([]byte, 2)
		binary.BigEndian.PutUint16(want, uint16(v16))
		if !bytes.Equal(buf.Bytes(), want) {
			t.Fatalf("int16 %d: got %v, want %v", v16, buf.Bytes(), want)
		}
		got, err := ReadInt16(bytes.NewReader(want))
		if err != nil || got != v16 {
			t.Fatalf("ReadInt16 round trip failed for %d: got %d err %v", v16, got, err)
		}

		v32 := rnd.Int31()
		buf = &bytes.Buffer{}
		_ = WriteInt32(buf, v32)
		want32 := make([]byte, 4)
		binary.BigEndian.PutUint32(want32, uint32(v32))
		if !bytes.Equal(buf.Bytes(), want32) {
			t.Fatalf("int32 %d: got %v, want %v", v32, buf.Bytes(), want32)
		}

		v64 := rnd.Int63()
		buf = &bytes.Buffer{}
		_ = WriteInt64(buf, v64)
		want64 := make([]byte, 8)
		binary.BigEndian.PutUint64(want64, uint64(v64))
		if !bytes.Equal(buf.Bytes(), want64) {
			t.Fatalf("int64 %d: got %v, want %v", v64, buf.Bytes(), want64)
		}

		vf32 := rnd.Float32()
		buf = &bytes.Buffer{}
		_ = WriteFloat(buf, vf32)
		wantf32 := make([]byte, 4)
		binary.BigEndian.PutUint32(wantf32, math.Float32bits(vf32))
		if !bytes.Equal(buf.Bytes(), wantf32) {
			t.Fatalf("float32 %v: got %v, want %v", vf32, buf.Bytes(), wantf32)
		}

		vf64 := rnd.Float64()
		buf = &bytes.Buffer{}
		_ = WriteDouble(buf, vf64)
		wantf64 := make([]byte, 8)
		binary.BigEndian.PutUint64(wantf64, math.Float64bits(vf64))
		if !bytes.Equal(buf.Bytes(), wantf64) {
			t.Fatalf("float64 %v: got %v, want %v", vf64, buf.Bytes(), wantf64)
		}
	}
}

func TestBoolRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		buf := &bytes.Buffer{}
		_ = WriteBool(buf, v)
		got, err := ReadBool(buf)
		if err != nil || got != v {
			t.Errorf("bool round trip failed for %v: got %v err %v", v, got, err)
		}
	}
}

func TestAngleDegrees(t *testing.T) {
	tests := []struct {
		angle Angle
		want  float64
	}{
		{0, 0},
		{128, 180},
		{64, 90},
		{255, 360 * 255 / 256.0},
	}
	for _, tt := range tests {
		if got := tt.angle.Degrees(); got != tt.want {
			t.Errorf("Angle(%d).Degrees() = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestReadShortRead(t *testing.T) {
	if _, err := ReadInt32(bytes.NewReader([]byte{0x01, 0x02})); err != ErrShortRead {
		t.Errorf("ReadInt32() with short buffer = %v, want ErrShortRead", err)
	}
}
