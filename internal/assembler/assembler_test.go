package assembler

import (
	"context"
	"testing"

	"github.com/arrayhdf/hdf5/internal/dataset"
	"github.com/arrayhdf/hdf5/internal/superblock"
	"github.com/stretchr/testify/require"
)

func TestAssembleSingleContiguousDataset(t *testing.T) {
	data := make([]byte, 4*8)
	spec := dataset.Spec{
		Name:        "temperature",
		Shape:       []int{4},
		ElementSize: 8,
		IsFloat:     true,
		Data:        data,
	}

	out, err := Assemble(context.Background(), []dataset.Spec{spec})
	require.NoError(t, err)
	require.Equal(t, superblock.Signature, out[:8])
	require.Greater(t, len(out), superblock.Size)
}

func TestAssembleRejectsDuplicatePaths(t *testing.T) {
	data := make([]byte, 8)
	spec := dataset.Spec{Name: "x", Shape: []int{1}, ElementSize: 8, IsFloat: true, Data: data}

	_, err := Assemble(context.Background(), []dataset.Spec{spec, spec})
	require.Error(t, err)
}

func TestAssembleMultipleDatasets(t *testing.T) {
	a := dataset.Spec{Name: "a", Shape: []int{2}, ElementSize: 8, IsFloat: true, Data: make([]byte, 16)}
	b := dataset.Spec{Name: "b", Shape: []int{3}, ElementSize: 4, IsFloat: false, Signed: true, Data: make([]byte, 12)}

	out, err := Assemble(context.Background(), []dataset.Spec{a, b})
	require.NoError(t, err)
	require.NotEmpty(t, out)
}
