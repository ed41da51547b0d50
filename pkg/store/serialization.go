package store

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pagecraft/pagecraft/pkg/document"
)

// Serializer converts page documents to and from their stored bytes.
type Serializer interface {
	Marshal(doc *document.Document) ([]byte, error)
	Unmarshal(data []byte) (*document.Document, error)

	// Name identifies the format for diagnostics.
	Name() string
}

// MsgPackSerializer is the default storage format. Payloads above the
// threshold are gzip-compressed; a one-byte marker distinguishes the two
// encodings so old uncompressed rows stay readable.
type MsgPackSerializer struct {
	// CompressionThreshold is the minimum payload size that triggers
	// compression. Zero means never compress.
	CompressionThreshold int
}

// NewMsgPackSerializer returns the serializer with the default threshold.
func NewMsgPackSerializer() *MsgPackSerializer {
	return &MsgPackSerializer{CompressionThreshold: 1024}
}

// Marshal serializes a document.
func (s *MsgPackSerializer) Marshal(doc *document.Document) ([]byte, error) {
	data, err := msgpack.Marshal(doc)
	if err != nil {
		return nil, err
	}

	if s.CompressionThreshold > 0 && len(data) >= s.CompressionThreshold {
		compressed, err := gzipBytes(data)
		if err == nil {
			return append([]byte{1}, compressed...), nil
		}
		// Compression failure falls back to the uncompressed form.
	}
	return append([]byte{0}, data...), nil
}

// Unmarshal deserializes a document.
func (s *MsgPackSerializer) Unmarshal(data []byte) (*document.Document, error) {
	if len(data) == 0 {
		return nil, ErrInvalidData
	}

	payload := data[1:]
	if data[0] == 1 {
		decompressed, err := gunzipBytes(payload)
		if err != nil {
			return nil, err
		}
		payload = decompressed
	}

	var doc document.Document
	if err := msgpack.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *MsgPackSerializer) Name() string {
	return "msgpack"
}

// JSONSerializer stores documents as JSON. Slower and larger than msgpack
// but directly inspectable; useful in development.
type JSONSerializer struct {
	// Pretty enables indented output.
	Pretty bool
}

// NewJSONSerializer returns a compact JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Marshal(doc *document.Document) ([]byte, error) {
	if s.Pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func (s *JSONSerializer) Unmarshal(data []byte) (*document.Document, error) {
	if len(data) == 0 {
		return nil, ErrInvalidData
	}
	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *JSONSerializer) Name() string {
	return "json"
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gunzipBytes(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	return io.ReadAll(gz)
}
