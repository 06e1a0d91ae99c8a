package hdf5

// Layout selects how a dataset's raw bytes are arranged in the file.
type Layout uint8

const (
	// LayoutAuto picks Chunked when the array's encoded size exceeds 64 KiB
	// or a Compression other than CompressionNone is set, and Contiguous
	// otherwise.
	LayoutAuto Layout = iota
	LayoutContiguous
	LayoutChunked
)

// Compression selects the filter applied to each chunk of a chunked
// dataset. It has no effect on a contiguous-layout dataset.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionLZF
)

// targetChunkBytes is the size the auto-chunk dimension picker aims for.
const targetChunkBytes = 1 << 20 // 1 MiB

// Options configures a single dataset write. The zero value is valid and
// selects LayoutAuto, CompressionNone, and the dataset path "/data".
type Options struct {
	// Path is the dataset's path within the root group, e.g. "/temperature".
	// A leading "/" is implied if omitted. Paths may only be one level deep
	// (nested groups beyond the root are a Non-goal).
	Path string

	Layout Layout

	// ChunkDims gives explicit chunk dimensions for LayoutChunked. Ignored
	// for LayoutContiguous. If nil under LayoutChunked or LayoutAuto, chunk
	// dimensions are computed automatically.
	ChunkDims []int

	Compression Compression

	// GzipLevel is the zlib compression level, 1 (fastest) through 9 (best
	// ratio). Zero selects the zlib default.
	GzipLevel int

	// FillValue is used to pad boundary chunks that extend past the
	// dataset's declared shape. Defaults to the zero value of the dtype.
	FillValue float64

	// Attrs attaches named attributes to the dataset.
	Attrs []Attr

	// Workers bounds the number of goroutines used to encode chunks
	// concurrently. Zero selects a reasonable default (GOMAXPROCS).
	Workers int
}

// DatasetOption mutates Options in place. It mirrors the teacher-style
// functional-options idiom alongside the plain Options struct: callers may
// build an Options value directly or compose it from these.
type DatasetOption func(*Options)

// WithPath sets the dataset path.
func WithPath(path string) DatasetOption {
	return func(o *Options) { o.Path = path }
}

// WithLayout sets the dataset layout.
func WithLayout(l Layout) DatasetOption {
	return func(o *Options) { o.Layout = l }
}

// WithChunkDims sets explicit chunk dimensions and implies LayoutChunked.
func WithChunkDims(dims []int) DatasetOption {
	return func(o *Options) {
		o.ChunkDims = append([]int(nil), dims...)
		o.Layout = LayoutChunked
	}
}

// WithCompression sets the chunk compression codec.
func WithCompression(c Compression) DatasetOption {
	return func(o *Options) { o.Compression = c }
}

// WithGzipLevel sets the zlib compression level used when Compression is
// CompressionGzip.
func WithGzipLevel(level int) DatasetOption {
	return func(o *Options) { o.GzipLevel = level }
}

// WithFillValue sets the padding value for boundary chunks.
func WithFillValue(v float64) DatasetOption {
	return func(o *Options) { o.FillValue = v }
}

// WithAttrs appends attributes to the dataset.
func WithAttrs(attrs ...Attr) DatasetOption {
	return func(o *Options) { o.Attrs = append(o.Attrs, attrs...) }
}

// WithWorkers bounds the chunk-encoding worker pool size.
func WithWorkers(n int) DatasetOption {
	return func(o *Options) { o.Workers = n }
}

// NewOptions builds an Options value from zero or more DatasetOption
// functions, starting from the zero value.
func NewOptions(opts ...DatasetOption) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) withDefaults() Options {
	if o.Path == "" {
		o.Path = "/data"
	}
	return o
}
