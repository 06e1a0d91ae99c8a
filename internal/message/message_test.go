package message

import (
	"testing"

	"github.com/arrayhdf/hdf5/internal/bytewriter"
	"github.com/stretchr/testify/require"
)

func TestWriteMessageAligns(t *testing.T) {
	bw := bytewriter.New(0)
	require.NoError(t, WriteMessage(bw, TypeDataspace, 0, []byte{1, 2, 3}))
	require.Zero(t, bw.Position()%8)
}

func TestEncodeDataspaceScalar(t *testing.T) {
	body := EncodeDataspace(nil)
	require.Equal(t, uint8(0), body[1]) // rank
}

func TestEncodeDataspaceRank2(t *testing.T) {
	body := EncodeDataspace([]int{4, 8})
	require.Equal(t, uint8(2), body[1])
	require.Len(t, body, 8+16)
}

func TestEncodeNumericDatatypeFloat64(t *testing.T) {
	body := EncodeNumericDatatype(8, true, false)
	require.Equal(t, uint8(0x11), body[0])  // version 1, class 1 (float)
	require.Equal(t, uint8(63), body[1])    // bit field 0: sign location
	require.Len(t, body, 20)                // 8-byte header + 4-byte bit-offset/precision + 8-byte float properties, no spurious extra byte
	require.EqualValues(t, 8, body[4])      // size, in bytes (not bits)
	require.Equal(t, uint8(52), body[12])   // exponent location
	require.Equal(t, uint8(11), body[13])   // exponent size
	require.Equal(t, uint8(0), body[14])    // mantissa location
	require.Equal(t, uint8(52), body[15])   // mantissa size
}

func TestEncodeNumericDatatypeFloat32(t *testing.T) {
	body := EncodeNumericDatatype(4, true, false)
	require.Equal(t, uint8(31), body[1]) // bit field 0: sign location
	require.Len(t, body, 20)
	require.Equal(t, uint8(23), body[12]) // exponent location
	require.Equal(t, uint8(8), body[13])  // exponent size
}

func TestEncodeContiguousLayout(t *testing.T) {
	body := EncodeContiguousLayout(1024, 256)
	require.Equal(t, uint8(3), body[0])
	require.Equal(t, uint8(1), body[1])
}

func TestEncodeFilterPipelineSingleFilter(t *testing.T) {
	body, err := EncodeFilterPipeline([]FilterSpec{{ID: 1, CDValues: []uint32{6}}})
	require.NoError(t, err)
	require.Equal(t, uint8(2), body[0]) // version
	require.Equal(t, uint8(1), body[1]) // filter count
}
