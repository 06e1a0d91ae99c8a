// Package btree builds the HDF5 v1 B-tree chunk index for a chunked
// dataset. Only a single leaf node is written (no internal-node splitting):
// writing more chunks than fit in one node returns a TooManyChunksError at
// a higher layer.
package btree

import (
	"sort"

	"github.com/arrayhdf/hdf5/internal/bytewriter"
)

// MaxEntriesPerNode bounds the number of chunk records a single leaf node
// holds. HDF5's real B-tree splits into multiple nodes past a file's
// configured "K" value; this writer only ever emits one node, so it caps
// chunk count instead of splitting.
const MaxEntriesPerNode = 2048

// ChunkKey identifies one stored chunk: the element offsets of its origin
// (one per dataset dimension) plus the always-zero trailing "dataset
// element size" coordinate HDF5's format reserves.
type ChunkKey struct {
	Coords []uint64
}

// Chunk is one B-tree leaf entry: a key plus the address and on-disk size
// of the (possibly filtered) chunk bytes it indexes.
type Chunk struct {
	Key        ChunkKey
	ChunkSize  uint32
	FilterMask uint32
	Address    uint64
}

// Writer accumulates chunks in any order and serializes them, sorted into
// row-major order, as a single HDF5 v1 B-tree leaf node (node_type 1,
// node_level 0).
type Writer struct {
	chunks []Chunk
}

// NewWriter returns an empty chunk B-tree writer.
func NewWriter() *Writer { return &Writer{} }

// AddChunk records one chunk. Address must already be known (chunk data is
// written before the B-tree node that indexes it).
func (w *Writer) AddChunk(c Chunk) {
	w.chunks = append(w.chunks, c)
}

// Len returns the number of recorded chunks.
func (w *Writer) Len() int { return len(w.chunks) }

func compareCoords(a, b []uint64) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// sortedChunks returns the recorded chunks in row-major coordinate order,
// the order HDF5 readers expect a B-tree leaf's keys to appear in.
func (w *Writer) sortedChunks() []Chunk {
	out := append([]Chunk(nil), w.chunks...)
	sort.Slice(out, func(i, j int) bool {
		return compareCoords(out[i].Key.Coords, out[j].Key.Coords) < 0
	})
	return out
}

// WriteTo serializes the node into bw at the node's current position,
// returning that position. datasetShape is the dataset's dimension extents,
// used to build the trailing sentinel key every leaf node carries.
func (w *Writer) WriteTo(bw *bytewriter.Writer, datasetShape []int) uint64 {
	nodeAddr := bw.Position()
	sorted := w.sortedChunks()

	bw.WriteBytes([]byte("TREE"))
	bw.WriteU8(1) // node_type: chunked raw data
	bw.WriteU8(0) // node_level: leaf
	bw.WriteU16(uint16(len(sorted)))
	bw.WriteU64(bytewriter.Undefined) // left sibling
	bw.WriteU64(bytewriter.Undefined) // right sibling

	for _, c := range sorted {
		writeChunkKey(bw, c.ChunkSize, c.FilterMask, c.Key.Coords)
		bw.WriteU64(c.Address)
	}
	// Trailing sentinel key: chunk_size 0, filter_mask 0, coords == dataset
	// shape, no following child pointer (this is a leaf's final key).
	sentinelCoords := make([]uint64, len(datasetShape)+1)
	for i, d := range datasetShape {
		sentinelCoords[i] = uint64(d)
	}
	writeChunkKey(bw, 0, 0, sentinelCoords)

	return nodeAddr
}

// writeChunkKey writes one B-tree chunk key: u32 chunk_size, u32
// filter_mask, then one u64 per coordinate (including the trailing
// always-zero element-size coordinate).
func writeChunkKey(bw *bytewriter.Writer, chunkSize, filterMask uint32, coords []uint64) {
	bw.WriteU32(chunkSize)
	bw.WriteU32(filterMask)
	for _, c := range coords {
		bw.WriteU64(c)
	}
}
