package protocol

import (
	"crypto/md5"
	"io"

	"github.com/google/uuid"
)

// UUID is the wire representation used throughout the protocol: 16 bytes,
// written and read big-endian. google/uuid's UUID is already a [16]byte in
// big-endian layout, so it is reused directly for Parse/String instead of
// hand-rolling a byte-order-juggling type (spec.md §9's note on the
// source's non-obvious little/big-endian mixing for UUID writes).
type UUID = uuid.UUID

// ReadUUID reads 16 big-endian bytes.
func ReadUUID(r io.Reader) (UUID, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return UUID{}, ErrShortRead
	}
	return UUID(buf), nil
}

// WriteUUID writes 16 big-endian bytes.
func WriteUUID(w io.Writer, id UUID) error {
	_, err := w.Write(id[:])
	return err
}

// GenerateOfflineUUID computes the UUID Minecraft assigns an offline-mode
// player: MD5("OfflinePlayer:"+username) with the version nibble forced to 3
// and the variant bits forced to RFC 4122. This is not the same as
// uuid.NewMD5 (which hashes namespace||name, not the bare string), so it is
// computed directly.
func GenerateOfflineUUID(username string) UUID {
	hash := md5.Sum([]byte("OfflinePlayer:" + username))
	hash[6] = (hash[6] & 0x0F) | 0x30
	hash[8] = (hash[8] & 0x3F) | 0x80
	return UUID(hash)
}
