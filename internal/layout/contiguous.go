// Package layout implements the contiguous and chunked dataset layout
// writers (L4/L5): laying out an Array's raw element bytes in the file,
// either as one unbroken run or as a grid of independently filtered
// chunks indexed by a B-tree.
package layout

import (
	"github.com/arrayhdf/hdf5/internal/bytewriter"
)

// WriteContiguous appends every element of data (already encoded to raw
// little-endian bytes, row-major) as a single run and returns its address
// and size.
func WriteContiguous(bw *bytewriter.Writer, data []byte) (address, size uint64) {
	address = bw.Position()
	bw.WriteBytes(data)
	return address, uint64(len(data))
}
