package hdf5

import (
	"context"
	"errors"
	"strings"

	"github.com/arrayhdf/hdf5/internal/assembler"
	"github.com/arrayhdf/hdf5/internal/bytewriter"
	"github.com/arrayhdf/hdf5/internal/dataset"
	"github.com/arrayhdf/hdf5/internal/filter"
	"github.com/arrayhdf/hdf5/internal/iowrite"
	"github.com/arrayhdf/hdf5/internal/layout"
)

// autoChunkThresholdBytes is the array size above which LayoutAuto selects
// Chunked instead of Contiguous.
const autoChunkThresholdBytes = 64 << 10 // 64 KiB

// WriteArray writes a single array to path as a one-dataset HDF5 file.
func WriteArray(ctx context.Context, path string, arr Array, opts ...DatasetOption) error {
	o := NewOptions(opts...)
	return WriteArrayWithOptions(ctx, path, arr, o)
}

// WriteArrayWithOptions writes a single array to path using a fully built
// Options value, for callers that prefer the plain-struct configuration
// style over functional options.
func WriteArrayWithOptions(ctx context.Context, path string, arr Array, opts Options) error {
	return WriteMultipleWithOptions(ctx, path, map[Array]Options{arr: opts})
}

// WriteDataCube writes a DataCube to path as a single dataset.
func WriteDataCube(ctx context.Context, path string, cube *DataCube, opts ...DatasetOption) error {
	return WriteArray(ctx, path, cube, opts...)
}

// WriteMultiple writes several arrays to a single HDF5 file, one dataset
// each, their dataset path taken from each Options.Path. An unset Path
// defaults to "/data" for every array; no numbered names are generated, so
// two arrays that both leave Path unset collide and the write is rejected
// with an UnsupportedFeatureError.
func WriteMultiple(ctx context.Context, path string, arrays map[Array]Options) error {
	return WriteMultipleWithOptions(ctx, path, arrays)
}

// WriteMultipleWithOptions is the shared implementation behind WriteArray
// and WriteMultiple: validate every array and its options, build a
// dataset.Spec for each, assemble the complete in-memory image, and
// materialize it atomically.
func WriteMultipleWithOptions(ctx context.Context, path string, arrays map[Array]Options) error {
	specs := make([]dataset.Spec, 0, len(arrays))
	seenPaths := make(map[string]bool, len(arrays))

	for arr, opts := range arrays {
		opts = opts.withDefaults()
		dsPath := opts.Path
		if seenPaths[dsPath] {
			return &UnsupportedFeatureError{baseError: baseError{
				Path:    dsPath,
				Message: "two datasets were written to the same path",
			}}
		}
		seenPaths[dsPath] = true

		spec, err := buildSpec(dsPath, arr, opts)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	image, err := assembler.Assemble(ctx, specs)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &WriteInterruptedError{baseError: baseError{Path: path, Message: "write was interrupted", Cause: err}}
		}
		var tooMany *dataset.TooManyChunksErr
		if errors.As(err, &tooMany) {
			return &TooManyChunksError{baseError: baseError{
				Path:    path,
				Message: err.Error(),
				Fields:  map[string]any{"chunk_count": tooMany.Count},
			}}
		}
		return &InvalidArgumentError{baseError: baseError{Path: path, Message: err.Error(), Cause: err}}
	}

	if err := iowrite.WriteFileAtomic(ctx, path, image); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &WriteInterruptedError{baseError: baseError{Path: path, Message: "write was interrupted", Cause: err}}
		}
		var insufficient *iowrite.InsufficientSpaceError
		if errors.As(err, &insufficient) {
			return &InsufficientSpaceError{
				baseError:      baseError{Path: path, Message: "not enough disk space to write file", Cause: err},
				RequiredBytes:  insufficient.Required,
				AvailableBytes: insufficient.Available,
			}
		}
		var mismatch *iowrite.SizeMismatchError
		if errors.As(err, &mismatch) {
			return &VerificationError{
				baseError:     baseError{Path: path, Message: "materialized file did not match its expected size", Cause: err},
				ExpectedBytes: mismatch.Expected,
				ActualBytes:   mismatch.Actual,
			}
		}
		return &FileWriteError{baseError: baseError{Path: path, Message: "failed to write file", Cause: err}}
	}

	return nil
}

// buildSpec validates arr/opts and converts them into a dataset.Spec,
// resolving LayoutAuto and auto chunk dimensions along the way.
func buildSpec(dsPath string, arr Array, opts Options) (dataset.Spec, error) {
	if strings.Count(strings.Trim(dsPath, "/"), "/") > 0 {
		return dataset.Spec{}, &UnsupportedFeatureError{baseError: baseError{
			Path:    dsPath,
			Message: "nested groups beyond the root are not supported",
		}}
	}

	shape := arr.Shape()
	n := NumElements(shape)
	dtype := arr.DType()
	elemSize := dtype.Size()
	isFloat := dtype == Float64 || dtype == Float32
	signed := dtype == Int64 || dtype == Int32

	data := make([]byte, n*elemSize)
	bw := bytewriter.New(len(data))
	for flat := 0; flat < n; flat++ {
		encodeElement(bw, dtype, arr.At(flat))
	}
	copy(data, bw.Bytes())

	chunked := opts.Layout == LayoutChunked ||
		(opts.Layout == LayoutAuto && (len(data) > autoChunkThresholdBytes || opts.Compression != CompressionNone))

	var chunkDims []int
	var pipeline *filter.Pipeline
	if chunked {
		chunkDims = opts.ChunkDims
		if len(chunkDims) == 0 {
			chunkDims = layout.AutoChunkDims(shape, elemSize)
		}
		if len(chunkDims) != len(shape) {
			return dataset.Spec{}, &InvalidArgumentError{baseError: baseError{
				Path:    dsPath,
				Message: "chunk dimensions must have the same rank as the array shape",
			}}
		}
		pipeline = buildPipeline(opts)
	}

	attrs := make([]dataset.AttrSpec, 0, len(arr.Attrs())+len(opts.Attrs))
	for _, a := range arr.Attrs() {
		attrs = append(attrs, dataset.AttrSpec{Name: a.Name, IsNumber: a.IsNumber, String: a.String, Number: a.Number})
	}
	for _, a := range opts.Attrs {
		attrs = append(attrs, dataset.AttrSpec{Name: a.Name, IsNumber: a.IsNumber, String: a.String, Number: a.Number})
	}

	return dataset.Spec{
		Name:        strings.TrimPrefix(dsPath, "/"),
		Shape:       shape,
		ElementSize: elemSize,
		IsFloat:     isFloat,
		Signed:      signed,
		Data:        data,
		Chunked:     chunked,
		ChunkDims:   chunkDims,
		Pipeline:    pipeline,
		FillValue:   opts.FillValue,
		Workers:     opts.Workers,
		Attrs:       attrs,
	}, nil
}

func buildPipeline(opts Options) *filter.Pipeline {
	switch opts.Compression {
	case CompressionGzip:
		return &filter.Pipeline{Filters: []filter.Filter{filter.NewGzipFilter(opts.GzipLevel)}}
	case CompressionLZF:
		return &filter.Pipeline{Filters: []filter.Filter{filter.NewLZFFilter()}}
	default:
		return &filter.Pipeline{}
	}
}

func encodeElement(bw *bytewriter.Writer, dtype DType, v any) {
	switch dtype {
	case Float64:
		bw.WriteF64(toFloat64(v))
	case Float32:
		bw.WriteF32(float32(toFloat64(v)))
	case Int64:
		bw.WriteI64(toInt64(v))
	case Int32:
		bw.WriteI32(int32(toInt64(v)))
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	default:
		return 0
	}
}
