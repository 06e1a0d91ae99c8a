package message

import (
	"github.com/arrayhdf/hdf5/internal/bytewriter"
)

// EncodeFillValue builds a v2 fill value message body carrying a single
// numeric fill value, always defined (space allocation time "late", fill
// value defined), matching how this writer always declares an explicit
// fill value for chunked datasets.
//
// Reference: HDF5 File Format Specification, "Fill Value Message", v2.
func EncodeFillValue(value float64, elementSize int, isFloat bool) []byte {
	bw := bytewriter.New(16 + elementSize)
	bw.WriteU8(2) // version
	bw.WriteU8(2) // space alloc time: late
	bw.WriteU8(1) // fill value write time: if set
	bw.WriteU8(1) // fill value defined

	bw.WriteU32(uint32(elementSize))

	if isFloat {
		if elementSize == 8 {
			bw.WriteF64(value)
		} else {
			bw.WriteF32(float32(value))
		}
	} else {
		if elementSize == 8 {
			bw.WriteI64(int64(value))
		} else {
			bw.WriteI32(int32(value))
		}
	}
	return bw.Bytes()
}
