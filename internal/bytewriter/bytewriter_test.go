package bytewriter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterBasicFields(t *testing.T) {
	w := New(0)
	w.WriteU8(0xAB)
	w.WriteU16(0x1234)
	w.WriteU32(0x89ABCDEF)
	w.WriteU64(0x0123456789ABCDEF)

	require.Equal(t, uint64(1+2+4+8), w.Position())

	got := w.Bytes()
	require.Equal(t, byte(0xAB), got[0])
	require.Equal(t, byte(0x34), got[1])
	require.Equal(t, byte(0x12), got[2])
}

func TestWriterAlignTo(t *testing.T) {
	w := New(0)
	w.WriteBytes([]byte{1, 2, 3})
	require.NoError(t, w.AlignTo(8))
	require.Equal(t, uint64(8), w.Position())

	require.NoError(t, w.AlignTo(8))
	require.Equal(t, uint64(8), w.Position(), "already aligned, no-op")
}

func TestWriterAlignToRejectsNonPositive(t *testing.T) {
	w := New(0)
	err := w.AlignTo(0)
	require.Error(t, err)
	var invalidArg *InvalidArgumentError
	require.ErrorAs(t, err, &invalidArg)
}

func TestWriterBackPatch(t *testing.T) {
	w := New(0)
	placeholder := w.Reserve(8)
	w.WriteString("filler")
	require.NoError(t, w.WriteU64At(placeholder, 0xDEADBEEFCAFE))

	var got uint64
	b := w.Bytes()[placeholder : placeholder+8]
	for i := 7; i >= 0; i-- {
		got = got<<8 | uint64(b[i])
	}
	require.Equal(t, uint64(0xDEADBEEFCAFE), got)
}

func TestWriterWriteAtRejectsOutOfRange(t *testing.T) {
	w := New(0)
	w.WriteU32(1)
	err := w.WriteAt(100, []byte{1, 2, 3, 4})
	require.Error(t, err)
	var invalidArg *InvalidArgumentError
	require.ErrorAs(t, err, &invalidArg)
}

func TestWriterString(t *testing.T) {
	w := New(0)
	w.WriteString("abc")
	require.Equal(t, []byte{'a', 'b', 'c', 0}, w.Bytes())
}

func TestUndefinedSentinel(t *testing.T) {
	require.Equal(t, ^uint64(0), Undefined)
}
