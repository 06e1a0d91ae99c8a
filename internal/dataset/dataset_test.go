package dataset

import (
	"context"
	"testing"

	"github.com/arrayhdf/hdf5/internal/bytewriter"
	"github.com/arrayhdf/hdf5/internal/filter"
	"github.com/stretchr/testify/require"
)

func TestWriteContiguousDataset(t *testing.T) {
	bw := bytewriter.New(0)
	data := make([]byte, 4*8)

	addr, err := Write(context.Background(), bw, Spec{
		Name:        "data",
		Shape:       []int{4},
		ElementSize: 8,
		IsFloat:     true,
		Data:        data,
	})
	require.NoError(t, err)
	require.EqualValues(t, len(data), addr, "object header follows the contiguous data it describes")
	require.Greater(t, len(bw.Bytes()), len(data))
}

func TestWriteChunkedDatasetWithGzipPipeline(t *testing.T) {
	bw := bytewriter.New(0)
	data := make([]byte, 16*16*8)

	addr, err := Write(context.Background(), bw, Spec{
		Name:        "grid",
		Shape:       []int{16, 16},
		ElementSize: 8,
		IsFloat:     true,
		Data:        data,
		Chunked:     true,
		ChunkDims:   []int{4, 4},
		Pipeline:    &filter.Pipeline{Filters: []filter.Filter{filter.NewGzipFilter(6)}},
	})
	require.NoError(t, err)
	require.Greater(t, addr, uint64(0), "object header follows the chunk data and B-tree it references")
}

func TestWriteRejectsTooManyChunks(t *testing.T) {
	bw := bytewriter.New(0)
	n := 5000
	data := make([]byte, n*8)

	_, err := Write(context.Background(), bw, Spec{
		Name:        "toomany",
		Shape:       []int{n},
		ElementSize: 8,
		IsFloat:     true,
		Data:        data,
		Chunked:     true,
		ChunkDims:   []int{1},
	})
	require.Error(t, err)
	var tooMany *TooManyChunksErr
	require.ErrorAs(t, err, &tooMany)
}

func TestWriteWithAttributes(t *testing.T) {
	bw := bytewriter.New(0)
	data := make([]byte, 2*8)

	addr, err := Write(context.Background(), bw, Spec{
		Name:        "withattrs",
		Shape:       []int{2},
		ElementSize: 8,
		IsFloat:     true,
		Data:        data,
		Attrs: []AttrSpec{
			{Name: "units", String: "kelvin"},
			{Name: "version", IsNumber: true, Number: 2},
		},
	})
	require.NoError(t, err)
	require.EqualValues(t, len(data), addr)
}
