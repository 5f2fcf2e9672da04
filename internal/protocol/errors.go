package protocol

import "github.com/pkg/errors"

// ErrShortRead means fewer bytes were available than the shape required.
var ErrShortRead = errors.New("short read")

// ErrMalformed means the bytes were present but did not encode a valid value
// (an over-long VarInt, a negative or overflowing length prefix, invalid UTF-8).
var ErrMalformed = errors.New("malformed field")

// ErrOutOfRange means a value decoded correctly but does not fit the shape
// that is supposed to hold it.
var ErrOutOfRange = errors.New("value out of range")

// ErrVarIntTooLong is a specific Malformed cause: more than 5 bytes were
// consumed decoding a VarInt.
var ErrVarIntTooLong = errors.Wrap(ErrMalformed, "varint is too long")

// ErrVarLongTooLong is a specific Malformed cause: more than 10 bytes were
// consumed decoding a VarLong.
var ErrVarLongTooLong = errors.Wrap(ErrMalformed, "varlong is too long")

// ErrStringTooLong is a specific Malformed cause: a decoded string exceeds
// the 32767 code point ceiling, or its declared byte length overruns the frame.
var ErrStringTooLong = errors.Wrap(ErrMalformed, "string exceeds maximum length")

// ErrPacketTooLarge means a frame declared a length above MaxPacketSize.
var ErrPacketTooLarge = errors.New("packet size exceeds maximum allowed")

// ErrInvalidPacket means the outer frame itself (length prefix, data-length
// prefix) did not parse.
var ErrInvalidPacket = errors.Wrap(ErrMalformed, "invalid packet structure")

// ErrInvalidNBTType is a specific Malformed cause: an NBT tag type byte did
// not match any known tag type.
var ErrInvalidNBTType = errors.Wrap(ErrMalformed, "invalid NBT type")

// ErrMissingField is a specific Malformed cause: an NBT compound did not
// contain a field required by the shape being decoded into.
var ErrMissingField = errors.Wrap(ErrMalformed, "missing required field in NBT compound")

// ErrInvalidFieldType is a specific Malformed cause: an NBT compound field
// was present but did not have the tag type required by the shape being
// decoded into.
var ErrInvalidFieldType = errors.Wrap(ErrMalformed, "invalid field type in NBT compound")
