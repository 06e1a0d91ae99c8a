package message

import "github.com/arrayhdf/hdf5/internal/bytewriter"

const (
	layoutClassContiguous uint8 = 1
	layoutClassChunked    uint8 = 2
)

// EncodeContiguousLayout builds a v3 data layout message body for a
// contiguous dataset: version, class, address, and size.
//
// Reference: HDF5 File Format Specification, "Data Layout Message", v3.
func EncodeContiguousLayout(address, size uint64) []byte {
	bw := bytewriter.New(24)
	bw.WriteU8(3) // version
	bw.WriteU8(layoutClassContiguous)
	bw.WriteU64(address)
	bw.WriteU64(size)
	return bw.Bytes()
}

// EncodeChunkedLayout builds a v3 data layout message body for a chunked
// dataset: version, class, B-tree address, then the chunk dimensions
// (rank+1 32-bit sizes, the trailing one being the element byte size).
func EncodeChunkedLayout(btreeAddress uint64, chunkDims []int, elementSize int) []byte {
	bw := bytewriter.New(16 + 4*(len(chunkDims)+1))
	bw.WriteU8(3) // version
	bw.WriteU8(layoutClassChunked)
	bw.WriteU8(uint8(len(chunkDims) + 1)) // dimensionality, incl. element size
	bw.WriteU64(btreeAddress)
	for _, d := range chunkDims {
		bw.WriteU32(uint32(d))
	}
	bw.WriteU32(uint32(elementSize))
	return bw.Bytes()
}
