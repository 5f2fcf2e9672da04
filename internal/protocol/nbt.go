package protocol

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// NBT tag IDs, per the Named Binary Tag format embedded in ItemStack,
// EntityMetadata and the dimension codec.
const (
	TagEnd       = 0
	TagByte      = 1
	TagShort     = 2
	TagInt       = 3
	TagLong      = 4
	TagFloat     = 5
	TagDouble    = 6
	TagByteArray = 7
	TagString    = 8
	TagList      = 9
	TagCompound  = 10
	TagIntArray  = 11
	TagLongArray = 12
)

// NBTNode is a single tag in an NBT document. Value holds the Go type the
// comment on each case documents; compounds and lists recurse into further
// NBTNodes.
type NBTNode struct {
	Type  byte
	Value any
}

func (n *NBTNode) String() string {
	switch n.Type {
	case TagByte:
		return fmt.Sprintf("Byte(%d)", n.Value.(byte))
	case TagShort:
		return fmt.Sprintf("Short(%d)", n.Value.(int16))
	case TagInt:
		return fmt.Sprintf("Int(%d)", n.Value.(int32))
	case TagLong:
		return fmt.Sprintf("Long(%d)", n.Value.(int64))
	case TagFloat:
		return fmt.Sprintf("Float(%f)", n.Value.(float32))
	case TagDouble:
		return fmt.Sprintf("Double(%f)", n.Value.(float64))
	case TagByteArray:
		return fmt.Sprintf("ByteArray(%v)", n.Value.([]byte))
	case TagString:
		return fmt.Sprintf("String(%s)", n.Value.(string))
	case TagList:
		return fmt.Sprintf("List(%v)", n.Value.([]*NBTNode))
	case TagCompound:
		return fmt.Sprintf("Compound(%v)", n.Value.(map[string]*NBTNode))
	case TagIntArray:
		return fmt.Sprintf("IntArray(%v)", n.Value.([]int32))
	case TagLongArray:
		return fmt.Sprintf("LongArray(%v)", n.Value.([]int64))
	default:
		return "Unknown"
	}
}

// ReadAnonymousNBT reads a single tag header (no name) followed by its
// payload. A bare TagEnd with a nil value stands in for "absent", matching
// how ItemStack NBT is written when a stack carries no tag.
func ReadAnonymousNBT(r io.Reader) (*NBTNode, error) {
	typeByte, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	if typeByte == TagEnd {
		return &NBTNode{Type: TagEnd, Value: nil}, nil
	}
	return readNBTPayload(r, typeByte)
}

// WriteAnonymousNBT writes a tag header followed by its payload. A nil node,
// or one typed TagEnd, writes just the TagEnd marker.
func WriteAnonymousNBT(w io.Writer, n *NBTNode) error {
	if n == nil || n.Type == TagEnd {
		return WriteByte(w, TagEnd)
	}
	if err := WriteByte(w, n.Type); err != nil {
		return err
	}
	return writeNBTPayload(w, n)
}

func readNBTPayload(r io.Reader, typeByte byte) (*NBTNode, error) {
	switch typeByte {
	case TagByte:
		b, err := ReadByte(r)
		return &NBTNode{Type: TagByte, Value: b}, err
	case TagShort:
		s, err := ReadInt16(r)
		return &NBTNode{Type: TagShort, Value: s}, err
	case TagInt:
		i, err := ReadInt32(r)
		return &NBTNode{Type: TagInt, Value: i}, err
	case TagLong:
		l, err := ReadInt64(r)
		return &NBTNode{Type: TagLong, Value: l}, err
	case TagFloat:
		f, err := ReadFloat(r)
		return &NBTNode{Type: TagFloat, Value: f}, err
	case TagDouble:
		d, err := ReadDouble(r)
		return &NBTNode{Type: TagDouble, Value: d}, err
	case TagByteArray:
		arr, err := readNBTByteArray(r)
		return &NBTNode{Type: TagByteArray, Value: arr}, err
	case TagString:
		s, err := readNBTString(r)
		return &NBTNode{Type: TagString, Value: s}, err
	case TagList:
		list, err := readNBTList(r)
		return &NBTNode{Type: TagList, Value: list}, err
	case TagCompound:
		compound, err := readNBTCompound(r)
		return &NBTNode{Type: TagCompound, Value: compound}, err
	case TagIntArray:
		arr, err := readNBTIntArray(r)
		return &NBTNode{Type: TagIntArray, Value: arr}, err
	case TagLongArray:
		arr, err := readNBTLongArray(r)
		return &NBTNode{Type: TagLongArray, Value: arr}, err
	default:
		return nil, errors.Wrapf(ErrMalformed, "unsupported NBT tag type: %d", typeByte)
	}
}

func writeNBTPayload(w io.Writer, n *NBTNode) error {
	switch n.Type {
	case TagByte:
		return WriteByte(w, n.Value.(byte))
	case TagShort:
		return WriteInt16(w, n.Value.(int16))
	case TagInt:
		return WriteInt32(w, n.Value.(int32))
	case TagLong:
		return WriteInt64(w, n.Value.(int64))
	case TagFloat:
		return WriteFloat(w, n.Value.(float32))
	case TagDouble:
		return WriteDouble(w, n.Value.(float64))
	case TagByteArray:
		return writeNBTByteArray(w, n.Value.([]byte))
	case TagString:
		return writeNBTString(w, n.Value.(string))
	case TagList:
		return writeNBTList(w, n.Value.([]*NBTNode))
	case TagCompound:
		return writeNBTCompound(w, n.Value.(map[string]*NBTNode))
	case TagIntArray:
		return writeNBTIntArray(w, n.Value.([]int32))
	case TagLongArray:
		return writeNBTLongArray(w, n.Value.([]int64))
	default:
		return errors.Wrapf(ErrMalformed, "unsupported NBT tag type: %d", n.Type)
	}
}

func readNBTByteArray(r io.Reader) ([]byte, error) {
	length, err := ReadInt32(r)
	if err != nil {
		return nil, err
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, ErrShortRead
	}
	return data, nil
}

func writeNBTByteArray(w io.Writer, data []byte) error {
	if err := WriteInt32(w, int32(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// readNBTString/writeNBTString use NBT's own Short length prefix, not the
// VarInt-prefixed protocol String shape.
func readNBTString(r io.Reader) (string, error) {
	length, err := ReadUint16(r)
	if err != nil {
		return "", err
	}
	raw := make([]byte, length)
	if _, err := io.ReadFull(r, raw); err != nil {
		return "", ErrShortRead
	}
	return string(raw), nil
}

func writeNBTString(w io.Writer, s string) error {
	if err := WriteUint16(w, uint16(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readNBTIntArray(r io.Reader) ([]int32, error) {
	length, err := ReadInt32(r)
	if err != nil {
		return nil, err
	}
	data := make([]int32, length)
	for i := range data {
		if data[i], err = ReadInt32(r); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func writeNBTIntArray(w io.Writer, data []int32) error {
	if err := WriteInt32(w, int32(len(data))); err != nil {
		return err
	}
	for _, v := range data {
		if err := WriteInt32(w, v); err != nil {
			return err
		}
	}
	return nil
}

func readNBTLongArray(r io.Reader) ([]int64, error) {
	length, err := ReadInt32(r)
	if err != nil {
		return nil, err
	}
	data := make([]int64, length)
	for i := range data {
		if data[i], err = ReadInt64(r); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func writeNBTLongArray(w io.Writer, data []int64) error {
	if err := WriteInt32(w, int32(len(data))); err != nil {
		return err
	}
	for _, v := range data {
		if err := WriteInt64(w, v); err != nil {
			return err
		}
	}
	return nil
}

func readNBTList(r io.Reader) ([]*NBTNode, error) {
	elementType, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	length, err := ReadInt32(r)
	if err != nil {
		return nil, err
	}
	list := make([]*NBTNode, length)
	for i := range list {
		element, err := readNBTPayload(r, elementType)
		if err != nil {
			return nil, err
		}
		list[i] = element
	}
	return list, nil
}

func writeNBTList(w io.Writer, list []*NBTNode) error {
	elementType := byte(TagEnd)
	if len(list) > 0 {
		elementType = list[0].Type
	}
	if err := WriteByte(w, elementType); err != nil {
		return err
	}
	if err := WriteInt32(w, int32(len(list))); err != nil {
		return err
	}
	for _, el := range list {
		if err := writeNBTPayload(w, el); err != nil {
			return err
		}
	}
	return nil
}

func readNBTCompound(r io.Reader) (map[string]*NBTNode, error) {
	compound := make(map[string]*NBTNode)
	for {
		typeByte, err := ReadByte(r)
		if err != nil {
			return nil, err
		}
		if typeByte == TagEnd {
			break
		}
		name, err := readNBTString(r)
		if err != nil {
			return nil, err
		}
		payload, err := readNBTPayload(r, typeByte)
		if err != nil {
			return nil, err
		}
		compound[name] = payload
	}
	return compound, nil
}

func writeNBTCompound(w io.Writer, compound map[string]*NBTNode) error {
	for name, node := range compound {
		if err := WriteByte(w, node.Type); err != nil {
			return err
		}
		if err := writeNBTString(w, name); err != nil {
			return err
		}
		if err := writeNBTPayload(w, node); err != nil {
			return err
		}
	}
	return WriteByte(w, TagEnd)
}
