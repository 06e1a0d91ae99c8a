package symtab

import (
	"testing"

	"github.com/arrayhdf/hdf5/internal/bytewriter"
	"github.com/stretchr/testify/require"
)

func TestWriteLocalHeapNameOffsetsAreDistinctAndAligned(t *testing.T) {
	bw := bytewriter.New(0)
	entries := []Entry{
		{Name: "temperature", ObjectHeaderAddress: 100},
		{Name: "pressure", ObjectHeaderAddress: 200},
	}

	heapAddr, offsets, err := WriteLocalHeap(bw, entries)
	require.NoError(t, err)
	require.Zero(t, heapAddr)
	require.Len(t, offsets, 2)
	require.NotEqual(t, offsets[0], offsets[1])
	for _, off := range offsets {
		require.Zero(t, off%heapAlignment)
	}

	b := bw.Bytes()
	require.Equal(t, []byte("HEAP"), b[:4])
}

func TestWriteSymbolTableNodeOneEntryPerDataset(t *testing.T) {
	bw := bytewriter.New(0)
	entries := []Entry{
		{Name: "a", ObjectHeaderAddress: 64},
		{Name: "b", ObjectHeaderAddress: 128},
	}
	offsets := []uint64{8, 16}

	addr := WriteSymbolTableNode(bw, entries, offsets)
	require.Zero(t, addr)

	b := bw.Bytes()
	require.Equal(t, []byte("SNOD"), b[:4])
	require.Equal(t, uint16(2), uint16(b[6])|uint16(b[7])<<8)
}

func TestWriteBTreeKeysSpanNameOffsets(t *testing.T) {
	bw := bytewriter.New(0)
	addr := WriteBTree(bw, 512, []uint64{8, 40, 24})
	require.Zero(t, addr)

	b := bw.Bytes()
	require.Equal(t, []byte("TREE"), b[:4])
	require.Equal(t, uint8(0), b[4]) // node_type: group
	require.Equal(t, uint8(0), b[5]) // node_level: leaf
}
