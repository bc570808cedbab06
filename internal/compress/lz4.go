package compress

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Lz4 favors speed over ratio. It is the default codec for delivery
// archives.
type Lz4 struct{}

func NewLz4() Lz4 {
	return Lz4{}
}

func (l Lz4) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	if err != nil {
		return nil, err
	}

	err = w.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (l Lz4) Decode(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return out, nil
}
