package filter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLZFRoundTrip(t *testing.T) {
	f := NewLZFFilter()
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)

	compressed, err := f.Apply(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data))

	restored, err := f.Remove(compressed)
	require.NoError(t, err)
	require.Equal(t, data, restored)
}

func TestLZFEmptyInput(t *testing.T) {
	f := NewLZFFilter()
	compressed, err := f.Apply(nil)
	require.NoError(t, err)
	require.Empty(t, compressed)
}

func TestGzipRoundTrip(t *testing.T) {
	f := NewGzipFilter(6)
	data := bytes.Repeat([]byte("abcdefgh"), 4096)

	compressed, err := f.Apply(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data))

	restored, err := f.Remove(compressed)
	require.NoError(t, err)
	require.Equal(t, data, restored)
}

func TestFletcher32RoundTrip(t *testing.T) {
	f := NewFletcher32Filter()
	data := []byte("odd length payload")

	withChecksum, err := f.Apply(data)
	require.NoError(t, err)
	require.Len(t, withChecksum, len(data)+4)

	restored, err := f.Remove(withChecksum)
	require.NoError(t, err)
	require.Equal(t, data, restored)
}

func TestFletcher32DetectsCorruption(t *testing.T) {
	f := NewFletcher32Filter()
	withChecksum, err := f.Apply([]byte("payload"))
	require.NoError(t, err)

	withChecksum[0] ^= 0xFF
	_, err = f.Remove(withChecksum)
	require.Error(t, err)
}

func TestShuffleRoundTrip(t *testing.T) {
	f := NewShuffleFilter(8)
	data := make([]byte, 8*10)
	for i := range data {
		data[i] = byte(i)
	}

	shuffled, err := f.Apply(data)
	require.NoError(t, err)
	require.NotEqual(t, data, shuffled)

	restored, err := f.Remove(shuffled)
	require.NoError(t, err)
	require.Equal(t, data, restored)
}

func TestPipelineSkipsWhenNotBeneficial(t *testing.T) {
	p := &Pipeline{Filters: []Filter{NewGzipFilter(6)}}
	// High-entropy-ish data that will not compress well below the 0.9 ratio.
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}

	out, mask, err := p.ApplyToChunk(data)
	require.NoError(t, err)
	require.Equal(t, data, out)
	require.NotZero(t, mask)
}

func TestPipelineKeepsCompressedWhenBeneficial(t *testing.T) {
	p := &Pipeline{Filters: []Filter{NewGzipFilter(6)}}
	data := bytes.Repeat([]byte{0x00}, 4096)

	out, mask, err := p.ApplyToChunk(data)
	require.NoError(t, err)
	require.Zero(t, mask)
	require.Less(t, len(out), len(data))

	restored, err := p.Remove(out, mask)
	require.NoError(t, err)
	require.Equal(t, data, restored)
}
