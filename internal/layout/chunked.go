package layout

import (
	"context"
	"runtime"

	"github.com/arrayhdf/hdf5/internal/bytewriter"
	"github.com/arrayhdf/hdf5/internal/filter"
	"golang.org/x/sync/errgroup"
)

// targetChunkBytes is the size the auto-chunk dimension picker aims for.
const targetChunkBytes = 1 << 20 // 1 MiB

// AutoChunkDims picks chunk dimensions for shape/elementSize targeting
// roughly targetChunkBytes per chunk: starting from the full shape, it
// repeatedly halves the largest dimension while the chunk is more than 2x
// the target, then repeatedly doubles the smallest dimension (capped at the
// corresponding shape extent) while the chunk is less than half the
// target.
func AutoChunkDims(shape []int, elementSize int) []int {
	dims := append([]int(nil), shape...)
	if len(dims) == 0 {
		return dims
	}

	chunkBytes := func() int {
		n := elementSize
		for _, d := range dims {
			n *= d
		}
		return n
	}

	for chunkBytes() > 2*targetChunkBytes {
		largest := 0
		for i, d := range dims {
			if d > dims[largest] {
				largest = i
			}
		}
		if dims[largest] <= 1 {
			break
		}
		dims[largest] = (dims[largest] + 1) / 2
	}

	for chunkBytes() < targetChunkBytes/2 {
		smallest := 0
		for i, d := range dims {
			if d < dims[smallest] {
				smallest = i
			}
		}
		doubled := dims[smallest] * 2
		if doubled > shape[smallest] {
			doubled = shape[smallest]
		}
		if doubled == dims[smallest] {
			break
		}
		dims[smallest] = doubled
	}

	return dims
}

// ChunkResult describes one written chunk: its grid-origin coordinates (in
// elements, one per dimension, followed by a trailing zero), its file address, its on-disk size, and
// the filter_mask recorded for it.
type ChunkResult struct {
	Coords     []uint64
	Address    uint64
	ChunkSize  uint32
	FilterMask uint32
}

// gridDims returns, for each dimension, the number of chunks needed to
// cover shape with chunkDims, rounding up.
func gridDims(shape, chunkDims []int) []int {
	out := make([]int, len(shape))
	for i := range shape {
		out[i] = (shape[i] + chunkDims[i] - 1) / chunkDims[i]
	}
	return out
}

// extractChunk copies the sub-block starting at origin (in elements) with
// extent chunkDims out of data (row-major, elementSize bytes per element,
// shape dims), padding any region past shape's bounds with fillBytes
// (length elementSize, repeated).
func extractChunk(data []byte, shape, chunkDims, origin []int, elementSize int, fillBytes []byte) []byte {
	total := 1
	for _, d := range chunkDims {
		total *= d
	}
	out := make([]byte, total*elementSize)

	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}

	var walk func(dim int, srcBase, dstBase int)
	walk = func(dim int, srcBase, dstBase int) {
		if dim == len(chunkDims) {
			copy(out[dstBase*elementSize:(dstBase+1)*elementSize], data[srcBase*elementSize:(srcBase+1)*elementSize])
			return
		}
		dstStride := 1
		for i := dim + 1; i < len(chunkDims); i++ {
			dstStride *= chunkDims[i]
		}
		for j := 0; j < chunkDims[dim]; j++ {
			coord := origin[dim] + j
			if coord >= shape[dim] {
				fillRange(out, (dstBase+j*dstStride)*elementSize, remainingCount(chunkDims, dim)*elementSize, fillBytes)
				continue
			}
			walk(dim+1, srcBase+coord*strides[dim], dstBase+j*dstStride)
		}
	}
	walk(0, 0, 0)
	return out
}

func remainingCount(dims []int, fromDim int) int {
	n := 1
	for i := fromDim + 1; i < len(dims); i++ {
		n *= dims[i]
	}
	return n
}

func fillRange(out []byte, byteOffset, byteLen int, fillBytes []byte) {
	if len(fillBytes) == 0 {
		return
	}
	for i := 0; i < byteLen; i += len(fillBytes) {
		n := len(fillBytes)
		if i+n > byteLen {
			n = byteLen - i
		}
		copy(out[byteOffset+i:byteOffset+i+n], fillBytes[:n])
	}
}

type encodedChunk struct {
	coords     []uint64
	data       []byte
	filterMask uint32
}

// WriteChunked lays data out as a grid of chunkDims-sized chunks, applying
// pipeline to each (independently, optionally on a worker pool of the
// given size), and appends the resulting bytes to bw in deterministic
// row-major grid order regardless of encode completion order.
func WriteChunked(ctx context.Context, bw *bytewriter.Writer, data []byte, shape, chunkDims []int, elementSize int, fillBytes []byte, pipeline *filter.Pipeline, workers int) ([]ChunkResult, error) {
	grid := gridDims(shape, chunkDims)
	total := 1
	for _, g := range grid {
		total *= g
	}

	origins := make([][]int, total)
	idx := make([]int, len(grid))
	for n := 0; n < total; n++ {
		origin := make([]int, len(grid))
		for i := range grid {
			origin[i] = idx[i] * chunkDims[i]
		}
		origins[n] = origin
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < grid[i] {
				break
			}
			idx[i] = 0
		}
	}

	encoded := make([]encodedChunk, total)

	g, gctx := errgroup.WithContext(ctx)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for n := 0; n < total; n++ {
		n := n
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			raw := extractChunk(data, shape, chunkDims, origins[n], elementSize, fillBytes)
			out, mask, err := pipeline.ApplyToChunk(raw)
			if err != nil {
				return err
			}
			coords := make([]uint64, len(origins[n])+1)
			for i, o := range origins[n] {
				coords[i] = uint64(o)
			}
			encoded[n] = encodedChunk{coords: coords, data: out, filterMask: mask}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]ChunkResult, total)
	for n := 0; n < total; n++ {
		addr := bw.Position()
		bw.WriteBytes(encoded[n].data)
		if err := bw.AlignTo(8); err != nil {
			return nil, err
		}
		results[n] = ChunkResult{
			Coords:     encoded[n].coords,
			Address:    addr,
			ChunkSize:  uint32(len(encoded[n].data)),
			FilterMask: encoded[n].filterMask,
		}
	}
	return results, nil
}
