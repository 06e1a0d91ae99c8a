// Package filter implements the HDF5 filter pipeline: per-chunk codecs
// (gzip/zlib, LZF, and the fletcher32/shuffle building blocks) plus the v2
// filter pipeline message and the "skip if not beneficial" policy applied
// when encoding a chunk.
package filter

import "fmt"

// ID is an HDF5 filter identifier as it appears in the filter pipeline
// message. (The chunk B-tree's filter_mask refers to filters by their
// position in the pipeline, not by ID.)
type ID uint16

const (
	IDDeflate   ID = 1
	IDShuffle   ID = 2
	IDFletcher32 ID = 3
	IDLZF       ID = 32000
)

// Filter is a single pipeline stage: a reversible byte transform plus the
// client data HDF5 stores alongside it in the pipeline message.
type Filter interface {
	ID() ID
	Name() string
	Apply(data []byte) ([]byte, error)
	Remove(data []byte) ([]byte, error)
	// Encode returns the optional flags and client data values (cd_values)
	// recorded in the filter pipeline message for this filter.
	Encode() (flags uint16, cdValues []uint32)
}

// benefitRatio is the "skip if not beneficial" threshold from the package
// documentation: a compressed chunk is only kept if its size is strictly
// less than round(benefitRatio * uncompressed size).
const benefitRatio = 0.9

// Pipeline is an ordered sequence of filters applied to each chunk in turn.
// ApplyToChunk runs the whole chain, then discards the result and falls
// back to the uncompressed bytes if the final result does not meet the
// benefit threshold against the original uncompressed size.
type Pipeline struct {
	Filters []Filter
}

// ApplyToChunk runs the pipeline over uncompressed chunk data and returns
// the bytes to store plus the filter_mask to record in the chunk's B-tree
// key. A bit in filter_mask is set when the corresponding filter was
// SKIPPED for this chunk (HDF5's convention). Filters are never skipped
// individually: either every filter's bit is set, because the pipeline as
// a whole was not beneficial, or none is.
func (p *Pipeline) ApplyToChunk(data []byte) (out []byte, filterMask uint32, err error) {
	if len(p.Filters) == 0 {
		return data, 0, nil
	}

	cur := data
	for _, f := range p.Filters {
		next, ferr := f.Apply(cur)
		if ferr != nil {
			return nil, 0, fmt.Errorf("filter %s: %w", f.Name(), ferr)
		}
		cur = next
	}

	threshold := int(benefitRatio*float64(len(data)) + 0.5)
	if len(cur) >= threshold {
		// Not beneficial: store uncompressed, mark every filter as skipped.
		mask := uint32(0)
		for i := range p.Filters {
			mask |= 1 << uint(i)
		}
		return data, mask, nil
	}
	return cur, 0, nil
}

// Remove reverses the pipeline for a chunk given its stored filter_mask,
// skipping any filter whose bit is set.
func (p *Pipeline) Remove(data []byte, filterMask uint32) ([]byte, error) {
	cur := data
	for i := len(p.Filters) - 1; i >= 0; i-- {
		if filterMask&(1<<uint(i)) != 0 {
			continue
		}
		f := p.Filters[i]
		next, err := f.Remove(cur)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", f.Name(), err)
		}
		cur = next
	}
	return cur, nil
}
