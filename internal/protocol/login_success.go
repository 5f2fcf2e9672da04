package protocol

import (
	"bytes"
	"io"
)

// CreateLoginSuccessPacket builds the packet that completes the login
// handshake and moves the connection to Play.
func CreateLoginSuccessPacket(id UUID, username string, properties []Property) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteUUID(buf, id)
	_ = WriteString(buf, username)
	_ = WriteVarint(buf, int32(len(properties)))
	for _, prop := range properties {
		_ = WriteString(buf, prop.Name)
		_ = WriteString(buf, prop.Value)
		if prop.Signature != nil {
			_ = WriteBool(buf, true)
			_ = WriteString(buf, *prop.Signature)
		} else {
			_ = WriteBool(buf, false)
		}
	}
	return &Packet{ID: S2CLoginSuccess, Payload: buf.Bytes()}
}

type LoginSuccess struct {
	UUID             UUID
	Username         string
	PropertiesLength int32
	Properties       []Property
}

type Property struct {
	Name      string
	Value     string
	Signature *string
}

func ParseLoginSuccess(r io.Reader) (*LoginSuccess, error) {
	uuid, err := ReadUUID(r)
	if err != nil {
		return nil, err
	}
	username, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	propertiesLength, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	properties := make([]Property, propertiesLength)
	for i := int32(0); i < propertiesLength; i++ {
		prop, err := ReadProperty(r)
		if err != nil {
			return nil, err
		}
		properties[i] = prop
	}
	return &LoginSuccess{
		UUID:             uuid,
		Username:         username,
		PropertiesLength: propertiesLength,
		Properties:       properties,
	}, nil
}

func ReadProperty(r io.Reader) (Property, error) {
	name, err := ReadString(r)
	if err != nil {
		return Property{}, err
	}
	value, err := ReadString(r)
	if err != nil {
		return Property{}, err
	}
	hasSignature, err := ReadBool(r)
	if err != nil {
		return Property{}, err
	}
	var signature *string
	if hasSignature {
		sig, err := ReadString(r)
		if err != nil {
			return Property{}, err
		}
		signature = &sig
	}
	return Property{
		Name:      name,
		Value:     value,
		Signature: signature,
	}, nil
}
