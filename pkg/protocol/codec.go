package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Common codec errors.
var (
	ErrInvalidMessage = errors.New("invalid message format")
	ErrUnknownCodec   = errors.New("unknown codec type")
)

// Codec handles message encoding and decoding.
type Codec interface {
	// Encode serializes a message to bytes.
	Encode(msg *Message) ([]byte, error)

	// Decode deserializes bytes to a message.
	Decode(data []byte) (*Message, error)

	// Name returns the codec name.
	Name() string

	// ContentType returns the MIME type.
	ContentType() string
}

// JSONCodec implements Codec using JSON encoding. Readable on the wire;
// the default during development.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Encode encodes a message to JSON.
func (c *JSONCodec) Encode(msg *Message) ([]byte, error) {
	return json.Marshal(msg)
}

// Decode decodes JSON to a message.
func (c *JSONCodec) Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return &msg, nil
}

// Name returns "json".
func (c *JSONCodec) Name() string {
	return "json"
}

// ContentType returns the JSON MIME type.
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// MsgPackCodec implements Codec using MessagePack encoding. Smaller
// payloads for production use.
type MsgPackCodec struct{}

// NewMsgPackCodec creates a new MsgPack codec.
func NewMsgPackCodec() *MsgPackCodec {
	return &MsgPackCodec{}
}

// Encode encodes a message to MsgPack.
func (c *MsgPackCodec) Encode(msg *Message) ([]byte, error) {
	return msgpack.Marshal(msg)
}

// Decode decodes MsgPack to a message.
func (c *MsgPackCodec) Decode(data []byte) (*Message, error) {
	var msg Message
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return &msg, nil
}

// Name returns "msgpack".
func (c *MsgPackCodec) Name() string {
	return "msgpack"
}

// ContentType returns the MsgPack MIME type.
func (c *MsgPackCodec) ContentType() string {
	return "application/msgpack"
}

// ForName returns the codec registered under name.
func ForName(name string) (Codec, error) {
	switch name {
	case "json", "":
		return NewJSONCodec(), nil
	case "msgpack":
		return NewMsgPackCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}
