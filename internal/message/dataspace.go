package message

import "github.com/arrayhdf/hdf5/internal/bytewriter"

// EncodeDataspace builds a v1 dataspace message body for a simple
// (non-null, non-scalar-only) dataspace: version, rank, flags, then
// dimension sizes and (if present) max dimension sizes, each an 8-byte
// unsigned integer.
//
// Reference: HDF5 File Format Specification, "Dataspace Message".
func EncodeDataspace(dims []int) []byte {
	bw := bytewriter.New(8 + 16*len(dims))
	bw.WriteU8(1)               // version
	bw.WriteU8(uint8(len(dims))) // dimensionality (rank)
	bw.WriteU8(0)                // flags: no max dims stored separately
	bw.WriteZeros(5)             // reserved

	for _, d := range dims {
		bw.WriteU64(uint64(d))
	}
	return bw.Bytes()
}
