package tree

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/golang/snappy"
	"go.uber.org/multierr"
)

// Compression wraps a snapshot payload on its way to and from the
// serialization sink.
type Compression interface {
	Encode(data []byte) []byte
	Decode(data []byte) ([]byte, error)
}

type NoCompression struct{}

func NewNoCompression() *NoCompression {
	return &NoCompression{}
}

func (c *NoCompression) Encode(data []byte) []byte {
	return data
}

func (c *NoCompression) Decode(data []byte) ([]byte, error) {
	return data, nil
}

type SnappyCompression struct{}

func NewSnappyCompression() *SnappyCompression {
	return &SnappyCompression{}
}

func (c *SnappyCompression) Encode(data []byte) []byte {
	return snappy.Encode([]byte{}, data)
}

func (c *SnappyCompression) Decode(data []byte) ([]byte, error) {
	return snappy.Decode([]byte{}, data)
}

type ZlibCompression struct{}

func NewZlibCompression() *ZlibCompression {
	return &ZlibCompression{}
}

func (c *ZlibCompression) Encode(data []byte) []byte {
	buf := bytes.Buffer{}
	w := zlib.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

func (c *ZlibCompression) Decode(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	decoded, err := io.ReadAll(r)
	return decoded, multierr.Append(err, r.Close())
}
