package filter

import (
	"errors"
	"fmt"
)

// LZFFilter implements LZF compression (HDF5 filter ID 32000), registered
// by PyTables for fast, low-ratio compression. It has no configuration
// parameters.
//
// Reference: http://oldhome.schmorp.de/marc/liblzf.html
type LZFFilter struct{}

// NewLZFFilter returns an LZF filter.
func NewLZFFilter() *LZFFilter { return &LZFFilter{} }

func (f *LZFFilter) ID() ID       { return IDLZF }
func (f *LZFFilter) Name() string { return "lzf" }

func (f *LZFFilter) Apply(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	compressed, err := lzfCompress(data)
	if err != nil {
		return nil, fmt.Errorf("lzf compression failed: %w", err)
	}
	return compressed, nil
}

func (f *LZFFilter) Remove(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	decompressed, err := lzfDecompress(data)
	if err != nil {
		return nil, fmt.Errorf("lzf decompression failed: %w", err)
	}
	return decompressed, nil
}

func (f *LZFFilter) Encode() (flags uint16, cdValues []uint32) {
	return 0, []uint32{0, 0, 0}
}

// lzfWindow and lzfMaxMatch bound the sliding window and longest match the
// LZF wire format can express; lzfHashBits sizes the match-finder's hash
// table (2^lzfHashBits entries, one slot per most-recently-seen 3-byte
// pattern).
const (
	lzfWindow    = 8192
	lzfMaxMatch  = 264
	lzfHashBits  = 14
	lzfHashSize  = 1 << lzfHashBits
	lzfMinMatch  = 3
	lzfMaxLitRun = 32
)

// lzfMatcher is a one-shot match finder over a single input buffer: a hash
// table mapping a 3-byte prefix to the most recent position it was seen at,
// used to find candidate backreferences within the LZF sliding window.
type lzfMatcher struct {
	input []byte
	seen  [lzfHashSize]uint32
}

// candidate returns the length of the longest run starting at pos that
// matches an earlier position within the window, and that earlier
// position's offset from pos. ok is false when no window-eligible,
// minimum-length match exists.
func (m *lzfMatcher) candidate(pos int) (offset, length int, ok bool) {
	h := lzfHash3(m.input[pos], m.input[pos+1], m.input[pos+2])
	prior := int(m.seen[h])
	m.seen[h] = uint32(pos)

	dist := pos - prior
	if prior == 0 || dist <= 0 || dist > lzfWindow {
		return 0, 0, false
	}
	if m.input[prior] != m.input[pos] || m.input[prior+1] != m.input[pos+1] || m.input[prior+2] != m.input[pos+2] {
		return 0, 0, false
	}

	limit := len(m.input) - pos
	if limit > lzfMaxMatch {
		limit = lzfMaxMatch
	}
	length = lzfMinMatch
	for length < limit && m.input[prior+length] == m.input[pos+length] {
		length++
	}
	return dist, length, true
}

// mark records every position covered by an accepted match (other than the
// first and last two bytes, already covered by the lookup that found the
// match) so later matches can reference the middle of this one.
func (m *lzfMatcher) mark(matchEnd, matchLen int) {
	for i := 1; i < matchLen-2; i++ {
		pos := matchEnd - matchLen + i
		if pos+2 < len(m.input) {
			m.seen[lzfHash3(m.input[pos], m.input[pos+1], m.input[pos+2])] = uint32(pos)
		}
	}
}

// lzfCompress compresses data with the LZF algorithm: an LZ77 variant over
// an 8KB sliding window, literal runs up to 32 bytes, short backrefs
// (3-8 bytes), and long backrefs (9-264 bytes).
func lzfCompress(input []byte) ([]byte, error) {
	n := len(input)
	if n == 0 {
		return input, nil
	}

	out := make([]byte, 0, n+(n/32)+256)
	matcher := &lzfMatcher{input: input}

	pos, litStart := 0, 0
	for pos+lzfMinMatch <= n {
		offset, length, ok := matcher.candidate(pos)
		if !ok {
			pos++
			continue
		}

		if litStart < pos {
			out = appendLiteral(out, input[litStart:pos])
		}
		out = appendBackref(out, offset, length)

		pos += length
		litStart = pos
		matcher.mark(pos, length)
	}

	if litStart < n {
		out = appendLiteral(out, input[litStart:])
	}
	return out, nil
}

// lzfHash3 maps a 3-byte pattern into the match finder's hash table.
func lzfHash3(b0, b1, b2 byte) uint32 {
	v := (uint32(b0) << 16) | (uint32(b1) << 8) | uint32(b2)
	v ^= v >> 16
	v *= 0x45d9f3b
	v ^= v >> 16
	return v & (lzfHashSize - 1)
}

// appendLiteral appends a literal run, splitting into segments of at most
// 32 bytes (control byte format 000LLLLL).
func appendLiteral(output, literal []byte) []byte {
	for len(literal) > 0 {
		runLen := len(literal)
		if runLen > lzfMaxLitRun {
			runLen = lzfMaxLitRun
		}
		ctrl := byte(runLen - 1)
		output = append(output, ctrl)
		output = append(output, literal[:runLen]...)
		literal = literal[runLen:]
	}
	return output
}

// appendBackref appends a backreference: short form (3-8 bytes,
// RRROXXXX XXXXXXXX) or long form (9-264 bytes, 111OXXXX XXXXXXXX
// RRRRRRRR).
func appendBackref(output []byte, offset, length int) []byte {
	offset--

	if length <= 8 {
		runBits := (length - 2) << 5
		ctrl := byte(runBits | (offset >> 8))
		output = append(output, ctrl, byte(offset&0xFF))
	} else {
		ctrl := byte(0xE0 | (offset >> 8))
		output = append(output, ctrl, byte(offset&0xFF), byte(length-9))
	}

	return output
}

// lzfDecompress reverses lzfCompress.
//
//nolint:nestif
func lzfDecompress(input []byte) ([]byte, error) {
	inLen := len(input)
	if inLen == 0 {
		return input, nil
	}

	output := make([]byte, 0, inLen*2)
	inPos := 0

	for inPos < inLen {
		ctrl := input[inPos]
		inPos++

		if (ctrl & 0xE0) == 0 {
			runLen := int(ctrl) + 1
			if inPos+runLen > inLen {
				return nil, errors.New("lzf: truncated literal run")
			}
			output = append(output, input[inPos:inPos+runLen]...)
			inPos += runLen
		} else {
			if inPos >= inLen {
				return nil, errors.New("lzf: truncated backreference")
			}

			offsetHigh := int(ctrl & 0x1F)
			offsetLow := int(input[inPos])
			inPos++

			offset := (offsetHigh << 8) | offsetLow
			offset++

			var runLen int
			if (ctrl & 0xE0) == 0xE0 {
				if inPos >= inLen {
					return nil, errors.New("lzf: truncated long backreference")
				}
				runLen = int(input[inPos]) + 9
				inPos++
			} else {
				runBits := (ctrl >> 5) & 0x07
				runLen = int(runBits) + 2
			}

			if offset > len(output) {
				return nil, fmt.Errorf("lzf: invalid offset %d (output size: %d)", offset, len(output))
			}

			srcPos := len(output) - offset
			for i := 0; i < runLen; i++ {
				output = append(output, output[srcPos+i])
			}
		}
	}

	return output, nil
}
