package hdf5

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteArrayContiguousSmallArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.h5")

	data := []float64{1, 2, 3, 4, 5, 6}
	arr, err := NewArray([]int{2, 3}, Float64, data)
	require.NoError(t, err)

	require.NoError(t, WriteArray(context.Background(), path, arr))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}, b[:8])
}

func TestWriteArrayChunkedWithGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chunked.h5")

	n := 64 * 64
	data := make([]float64, n)
	arr, err := NewArray([]int{64, 64}, Float64, data)
	require.NoError(t, err)

	err = WriteArray(context.Background(), path, arr,
		WithLayout(LayoutChunked),
		WithChunkDims([]int{16, 16}),
		WithCompression(CompressionGzip),
	)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestWriteArrayAutoLayoutWithCompressionForcesChunked(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auto_compressed.h5")

	// Small enough to stay under the auto-chunk size threshold, but
	// compression is requested, so LayoutAuto must still choose Chunked
	// (and therefore actually build and apply the filter pipeline) rather
	// than silently writing the data uncompressed under Contiguous.
	data := []float64{1, 2, 3, 4}
	arr, err := NewArray([]int{4}, Float64, data)
	require.NoError(t, err)

	err = WriteArrayWithOptions(context.Background(), path, arr, Options{
		Compression: CompressionGzip,
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestWriteArrayRejectsShapeMismatch(t *testing.T) {
	_, err := NewArray([]int{2, 2}, Float64, []float64{1, 2, 3})
	require.Error(t, err)
	var invalidArg *InvalidArgumentError
	require.ErrorAs(t, err, &invalidArg)
}

func TestWriteArrayRejectsNestedPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.h5")

	arr, err := NewArray([]int{2}, Float64, []float64{1, 2})
	require.NoError(t, err)

	err = WriteArray(context.Background(), path, arr, WithPath("/group/dataset"))
	require.Error(t, err)
	var unsupported *UnsupportedFeatureError
	require.ErrorAs(t, err, &unsupported)
}

func TestWriteDataCube(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.h5")

	values := [][][]float64{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
	}
	cube, err := NewDataCube(values, NumberAttr("version", 1))
	require.NoError(t, err)

	require.NoError(t, WriteDataCube(context.Background(), path, cube))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestWriteMultipleRejectsCollidingPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multi.h5")

	a, err := NewArray([]int{2}, Float64, []float64{1, 2})
	require.NoError(t, err)
	b, err := NewArray([]int{3}, Float64, []float64{1, 2, 3})
	require.NoError(t, err)

	err = WriteMultiple(context.Background(), path, map[Array]Options{
		a: NewOptions(WithPath("/data")),
		b: NewOptions(WithPath("/data")),
	})
	require.Error(t, err)
}

func TestWriteMultipleDistinctPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multi.h5")

	a, err := NewArray([]int{2}, Float64, []float64{1, 2})
	require.NoError(t, err)
	b, err := NewArray([]int{3}, Int32, []float64{1, 2, 3})
	require.NoError(t, err)

	err = WriteMultiple(context.Background(), path, map[Array]Options{
		a: NewOptions(WithPath("/a")),
		b: NewOptions(WithPath("/b")),
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestWriteArrayTooManyChunks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toomany.h5")

	shape := []int{5000}
	data := make([]float64, 5000)
	arr, err := NewArray(shape, Float64, data)
	require.NoError(t, err)

	err = WriteArray(context.Background(), path, arr,
		WithLayout(LayoutChunked),
		WithChunkDims([]int{1}),
	)
	require.Error(t, err)
	var tooMany *TooManyChunksError
	require.ErrorAs(t, err, &tooMany)
}
