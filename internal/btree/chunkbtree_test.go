package btree

import (
	"testing"

	"github.com/arrayhdf/hdf5/internal/bytewriter"
	"github.com/stretchr/testify/require"
)

func TestWriterSortsRowMajor(t *testing.T) {
	w := NewWriter()
	w.AddChunk(Chunk{Key: ChunkKey{Coords: []uint64{1, 0, 0}}, ChunkSize: 10, Address: 100})
	w.AddChunk(Chunk{Key: ChunkKey{Coords: []uint64{0, 0, 0}}, ChunkSize: 20, Address: 200})
	w.AddChunk(Chunk{Key: ChunkKey{Coords: []uint64{0, 1, 0}}, ChunkSize: 30, Address: 300})

	sorted := w.sortedChunks()
	require.Equal(t, []uint64{0, 0, 0}, sorted[0].Key.Coords)
	require.Equal(t, []uint64{0, 1, 0}, sorted[1].Key.Coords)
	require.Equal(t, []uint64{1, 0, 0}, sorted[2].Key.Coords)
}

func TestWriteToProducesTreeSignatureAndSentinel(t *testing.T) {
	w := NewWriter()
	w.AddChunk(Chunk{Key: ChunkKey{Coords: []uint64{0, 0}}, ChunkSize: 64, FilterMask: 0, Address: 2048})

	bw := bytewriter.New(0)
	addr := w.WriteTo(bw, []int{4})
	require.EqualValues(t, 0, addr)

	b := bw.Bytes()
	require.Equal(t, "TREE", string(b[0:4]))
	require.Equal(t, byte(1), b[4]) // node_type
	require.Equal(t, byte(0), b[5]) // node_level

	// header: 4 sig + 1 + 1 + 2 (entries) + 8 + 8 siblings = 24 bytes
	// one key (4+4+8+8=24) + address (8) = 32, then sentinel key (24 bytes).
	require.Equal(t, 24+32+24, len(b))
}

func TestMaxEntriesPerNodeConstant(t *testing.T) {
	require.Equal(t, 2048, MaxEntriesPerNode)
}
