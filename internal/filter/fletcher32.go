package filter

import (
	"encoding/binary"
	"fmt"
)

// Fletcher32Filter appends a 4-byte Fletcher-32 checksum to each chunk
// (HDF5 filter ID 3). It is a building block kept alongside deflate/LZF for
// pipeline chaining; it is not part of the default Compression enum.
type Fletcher32Filter struct{}

func NewFletcher32Filter() *Fletcher32Filter { return &Fletcher32Filter{} }

func (f *Fletcher32Filter) ID() ID       { return IDFletcher32 }
func (f *Fletcher32Filter) Name() string { return "fletcher32" }

func (f *Fletcher32Filter) Apply(data []byte) ([]byte, error) {
	sum := fletcher32(data)
	out := make([]byte, len(data)+4)
	copy(out, data)
	binary.LittleEndian.PutUint32(out[len(data):], sum)
	return out, nil
}

func (f *Fletcher32Filter) Remove(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("fletcher32: chunk too small to contain checksum")
	}
	payload := data[:len(data)-4]
	want := binary.LittleEndian.Uint32(data[len(data)-4:])
	got := fletcher32(payload)
	if got != want {
		return nil, fmt.Errorf("fletcher32: checksum mismatch: got %#x, want %#x", got, want)
	}
	return payload, nil
}

func (f *Fletcher32Filter) Encode() (flags uint16, cdValues []uint32) {
	return 0, nil
}

// fletcher32 computes the Fletcher-32 checksum over data treated as a
// stream of little-endian uint16 words, padding a trailing odd byte with a
// zero high byte.
func fletcher32(data []byte) uint32 {
	var sum1, sum2 uint32
	n := len(data)
	i := 0
	for i+1 < n {
		word := uint32(data[i]) | uint32(data[i+1])<<8
		sum1 = (sum1 + word) % 0xFFFF
		sum2 = (sum2 + sum1) % 0xFFFF
		i += 2
	}
	if i < n {
		word := uint32(data[i])
		sum1 = (sum1 + word) % 0xFFFF
		sum2 = (sum2 + sum1) % 0xFFFF
	}
	return (sum2 << 16) | sum1
}
