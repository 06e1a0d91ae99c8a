package filter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// GzipFilter implements the HDF5 "deflate" filter (ID 1). Despite the name
// it is a zlib stream (RFC 1950), not a gzip container (RFC 1952) — that is
// what HDF5 readers expect on the wire, and what distinguishes this from a
// plain compress/gzip wrapper.
type GzipFilter struct {
	Level int
}

// NewGzipFilter returns a deflate filter at the given zlib compression
// level (1-9). A level of 0 selects zlib's default.
func NewGzipFilter(level int) *GzipFilter {
	return &GzipFilter{Level: level}
}

func (f *GzipFilter) ID() ID        { return IDDeflate }
func (f *GzipFilter) Name() string  { return "deflate" }

func (f *GzipFilter) Apply(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	level := f.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *GzipFilter) Remove(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return out, nil
}

func (f *GzipFilter) Encode() (flags uint16, cdValues []uint32) {
	level := f.Level
	if level == 0 {
		level = 6
	}
	return 0, []uint32{uint32(level)}
}
