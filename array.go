package hdf5

import "fmt"

// DType identifies the element type of an Array. Only fixed-width numeric
// types are supported; variable-length strings and compound types are out
// of scope (spec Non-goals).
type DType uint8

// Supported element types. Values are fixed little-endian on disk: 8 bytes
// for Float64/Int64, 4 bytes for Float32/Int32.
const (
	Float64 DType = iota
	Float32
	Int64
	Int32
)

// String returns the canonical lowercase name of the dtype.
func (d DType) String() string {
	switch d {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int64:
		return "int64"
	case Int32:
		return "int32"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}

// Size returns the on-disk element size in bytes.
func (d DType) Size() int {
	switch d {
	case Float64, Int64:
		return 8
	case Float32, Int32:
		return 4
	default:
		return 0
	}
}

// Attr is a single dataset or attribute value: either a string or a
// float64-valued number. Numeric attributes round-trip to the same dtype
// and value (spec §9 Open Question); they are never stringified.
type Attr struct {
	Name string

	// Exactly one of String/IsNumber is meaningful.
	IsNumber bool
	String   string
	Number   float64
}

// StringAttr constructs a string-valued attribute.
func StringAttr(name, value string) Attr {
	return Attr{Name: name, String: value}
}

// NumberAttr constructs a numeric attribute. It is stored with a real
// float64 datatype and dataspace, not as text.
func NumberAttr(name string, value float64) Attr {
	return Attr{Name: name, IsNumber: true, Number: value}
}

// Array is the external collaborator this writer consumes: an opaque,
// immutable-during-write source of shape, dtype, flat element access, and
// attributes. The writer never assumes a concrete backing store — any type
// implementing this interface (an NDArray, a DataFrame column, a view over
// another format) can be serialized.
type Array interface {
	// Shape returns the array's dimension extents, outermost first. Rank 0
	// (scalar) is represented by an empty slice.
	Shape() []int

	// DType returns the array's element type.
	DType() DType

	// At returns the scalar value at the given row-major flat index, as a
	// float64 for float dtypes or an int64 for integer dtypes.
	At(flat int) any

	// Attrs returns the array's attributes in insertion order.
	Attrs() []Attr
}

// NumElements returns the product of an array's shape, treating a scalar
// (empty shape) as 1 element.
func NumElements(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// basicArray is a minimal in-memory Array implementation used by tests and
// by DataCube below. Callers with their own array types should implement
// Array directly rather than going through this type.
type basicArray struct {
	shape []int
	dtype DType
	data  []float64
	attrs []Attr
}

// NewArray builds an Array from a row-major flat slice of float64 values.
// Integer dtypes truncate toward zero at encode time, matching the flat
// iteration contract in spec §3.
func NewArray(shape []int, dtype DType, data []float64, attrs ...Attr) (Array, error) {
	want := NumElements(shape)
	if len(data) != want {
		return nil, &InvalidArgumentError{baseError: baseError{
			Message: fmt.Sprintf("data has %d elements, shape %v requires %d", len(data), shape, want),
		}}
	}
	shapeCopy := append([]int(nil), shape...)
	return &basicArray{shape: shapeCopy, dtype: dtype, data: data, attrs: attrs}, nil
}

func (a *basicArray) Shape() []int { return a.shape }
func (a *basicArray) DType() DType { return a.dtype }
func (a *basicArray) Attrs() []Attr { return a.attrs }

func (a *basicArray) At(flat int) any {
	v := a.data[flat]
	switch a.dtype {
	case Int64, Int32:
		return int64(v)
	default:
		return v
	}
}

// DataCube is a convenience 3-D (depth, rows, columns) array source, per
// spec §6's "convenience wrapper ... accepts a DataCube". It always encodes
// as Float64.
type DataCube struct {
	Depth, Rows, Columns int
	Values               [][][]float64 // [depth][row][column]
	attrs                []Attr
}

// NewDataCube builds a DataCube from a 3-D slice, validating that every
// inner slice has the declared shape.
func NewDataCube(values [][][]float64, attrs ...Attr) (*DataCube, error) {
	depth := len(values)
	if depth == 0 {
		return nil, &InvalidArgumentError{baseError: baseError{Message: "data cube must have depth > 0"}}
	}
	rows := len(values[0])
	if rows == 0 {
		return nil, &InvalidArgumentError{baseError: baseError{Message: "data cube must have rows > 0"}}
	}
	cols := len(values[0][0])
	for d := range values {
		if len(values[d]) != rows {
			return nil, &InvalidArgumentError{baseError: baseError{
				Message: fmt.Sprintf("data cube slice %d has %d rows, want %d", d, len(values[d]), rows),
			}}
		}
		for r := range values[d] {
			if len(values[d][r]) != cols {
				return nil, &InvalidArgumentError{baseError: baseError{
					Message: fmt.Sprintf("data cube slice %d row %d has %d columns, want %d", d, r, len(values[d][r]), cols),
				}}
			}
		}
	}
	return &DataCube{Depth: depth, Rows: rows, Columns: cols, Values: values, attrs: attrs}, nil
}

func (c *DataCube) Shape() []int { return []int{c.Depth, c.Rows, c.Columns} }
func (c *DataCube) DType() DType { return Float64 }
func (c *DataCube) Attrs() []Attr { return c.attrs }

func (c *DataCube) At(flat int) any {
	cols := c.Columns
	rows := c.Rows
	d := flat / (rows * cols)
	rem := flat % (rows * cols)
	r := rem / cols
	col := rem % cols
	return c.Values[d][r][col]
}
