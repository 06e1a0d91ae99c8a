// Package dataset serializes one dataset: its data (contiguous or
// chunked), and the object header message list that describes it
// (dataspace, datatype, layout, fill value, filter pipeline, attributes).
package dataset

import (
	"context"
	"fmt"

	"github.com/arrayhdf/hdf5/internal/btree"
	"github.com/arrayhdf/hdf5/internal/bytewriter"
	"github.com/arrayhdf/hdf5/internal/filter"
	"github.com/arrayhdf/hdf5/internal/layout"
	"github.com/arrayhdf/hdf5/internal/message"
	"github.com/arrayhdf/hdf5/internal/objectheader"
)

// AttrSpec is one attribute to attach to a dataset's object header.
type AttrSpec struct {
	Name     string
	IsNumber bool
	String   string
	Number   float64
}

// Spec describes everything needed to serialize one dataset, already
// reduced to primitive values so this layer never depends on the public
// Array/DType types above it.
type Spec struct {
	Name        string // dataset's name within the root group
	Shape       []int
	ElementSize int
	IsFloat     bool
	Signed      bool
	Data        []byte // row-major encoded elements, len == NumElements(Shape)*ElementSize

	Chunked     bool
	ChunkDims   []int
	Pipeline    *filter.Pipeline
	FillValue   float64
	Workers     int

	Attrs []AttrSpec
}

// TooManyChunksErr is returned when a chunked dataset's grid needs more
// entries than a single B-tree leaf node supports.
type TooManyChunksErr struct {
	Count int
}

func (e *TooManyChunksErr) Error() string {
	return fmt.Sprintf("dataset requires %d chunks, which exceeds the %d supported in a single B-tree node", e.Count, btree.MaxEntriesPerNode)
}

// Write lays out spec's data (and, for chunked datasets, its B-tree chunk
// index) into bw, then appends the dataset's object header, and returns
// the object header's address.
func Write(ctx context.Context, bw *bytewriter.Writer, spec Spec) (uint64, error) {
	var layoutMsg []byte

	if spec.Chunked {
		fillBytes := encodeFillBytes(spec.FillValue, spec.ElementSize, spec.IsFloat)
		pipeline := spec.Pipeline
		if pipeline == nil {
			pipeline = &filter.Pipeline{}
		}

		chunks, err := layout.WriteChunked(ctx, bw, spec.Data, spec.Shape, spec.ChunkDims, spec.ElementSize, fillBytes, pipeline, spec.Workers)
		if err != nil {
			return 0, err
		}
		if len(chunks) > btree.MaxEntriesPerNode {
			return 0, &TooManyChunksErr{Count: len(chunks)}
		}

		bt := btree.NewWriter()
		for _, c := range chunks {
			bt.AddChunk(btree.Chunk{
				Key:        btree.ChunkKey{Coords: c.Coords},
				ChunkSize:  c.ChunkSize,
				FilterMask: c.FilterMask,
				Address:    c.Address,
			})
		}
		btreeAddr := bt.WriteTo(bw, spec.Shape)

		layoutMsg = message.EncodeChunkedLayout(btreeAddr, spec.ChunkDims, spec.ElementSize)
	} else {
		addr, size := layout.WriteContiguous(bw, spec.Data)
		layoutMsg = message.EncodeContiguousLayout(addr, size)
	}

	ob := objectheader.New()

	dataspaceBody := message.EncodeDataspace(spec.Shape)
	dataspaceFramed, err := frame(message.TypeDataspace, dataspaceBody)
	if err != nil {
		return 0, err
	}
	ob.AddMessage(dataspaceFramed)

	datatypeBody := message.EncodeNumericDatatype(spec.ElementSize, spec.IsFloat, spec.Signed)
	datatypeFramed, err := frame(message.TypeDatatype, datatypeBody)
	if err != nil {
		return 0, err
	}
	ob.AddMessage(datatypeFramed)

	layoutFramed, err := frame(message.TypeLayout, layoutMsg)
	if err != nil {
		return 0, err
	}
	ob.AddMessage(layoutFramed)

	if spec.Chunked {
		fillBody := message.EncodeFillValue(spec.FillValue, spec.ElementSize, spec.IsFloat)
		fillFramed, err := frame(message.TypeFillValue, fillBody)
		if err != nil {
			return 0, err
		}
		ob.AddMessage(fillFramed)

		if spec.Pipeline != nil && len(spec.Pipeline.Filters) > 0 {
			var specs []message.FilterSpec
			for _, f := range spec.Pipeline.Filters {
				flags, cd := f.Encode()
				specs = append(specs, message.FilterSpec{ID: uint16(f.ID()), Name: f.Name(), Flags: flags, CDValues: cd})
			}
			pipelineBody, err := message.EncodeFilterPipeline(specs)
			if err != nil {
				return 0, err
			}
			pipelineFramed, err := frame(message.TypeFilterPipeline, pipelineBody)
			if err != nil {
				return 0, err
			}
			ob.AddMessage(pipelineFramed)
		}
	}

	for _, a := range spec.Attrs {
		var body []byte
		if a.IsNumber {
			body = message.EncodeNumericAttribute(a.Name, a.Number)
		} else {
			body = message.EncodeStringAttribute(a.Name, a.String)
		}
		attrFramed, err := frame(message.TypeAttribute, body)
		if err != nil {
			return 0, err
		}
		ob.AddMessage(attrFramed)
	}

	addr := ob.WriteTo(bw)
	return addr, nil
}

// frame applies message.WriteMessage's framing to an in-memory body
// without needing a live bytewriter.Writer at call time, so message
// bodies can be composed before the object header itself is positioned.
func frame(msgType uint16, body []byte) ([]byte, error) {
	tmp := bytewriter.New(8 + len(body) + 7)
	if err := message.WriteMessage(tmp, msgType, 0, body); err != nil {
		return nil, err
	}
	return tmp.Bytes(), nil
}

func encodeFillBytes(value float64, elementSize int, isFloat bool) []byte {
	tmp := bytewriter.New(elementSize)
	if isFloat {
		if elementSize == 8 {
			tmp.WriteF64(value)
		} else {
			tmp.WriteF32(float32(value))
		}
	} else {
		if elementSize == 8 {
			tmp.WriteI64(int64(value))
		} else {
			tmp.WriteI32(int32(value))
		}
	}
	return tmp.Bytes()
}
