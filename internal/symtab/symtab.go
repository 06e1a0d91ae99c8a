// Package symtab writes the root group's symbol table: a local heap
// holding dataset names, a single symbol table node (SNOD) holding one
// entry per dataset, and the v1 B-tree leaf that indexes it. Since nested
// groups are a Non-goal, every dataset this writer emits lives directly in
// this one table.
package symtab

import "github.com/arrayhdf/hdf5/internal/bytewriter"

// Entry is one dataset to list in the root group: its name (relative to
// root, no leading slash) and the address of its object header.
type Entry struct {
	Name                string
	ObjectHeaderAddress uint64
}

// heapAlignment is the padding every local heap name is rounded up to.
const heapAlignment = 8

// WriteLocalHeap writes a local heap ("HEAP" signature) containing one
// NUL-terminated, 8-byte-aligned name per entry, and returns the heap's
// address plus the byte offset of each entry's name within the heap's data
// segment (for use as B-tree/SNOD keys).
func WriteLocalHeap(bw *bytewriter.Writer, entries []Entry) (heapAddress uint64, nameOffsets []uint64, err error) {
	// Reserve one free-list sentinel name (offset 0 is conventionally the
	// empty string used as the heap's "no name" placeholder).
	dataSegment := bytewriter.New(0)
	dataSegment.WriteZeros(heapAlignment) // offset 0: reserved empty entry

	nameOffsets = make([]uint64, len(entries))
	for i, e := range entries {
		nameOffsets[i] = dataSegment.Position()
		dataSegment.WriteString(e.Name)
		if err := dataSegment.AlignTo(heapAlignment); err != nil {
			return 0, nil, err
		}
	}

	heapAddress = bw.Position()
	bw.WriteBytes([]byte("HEAP"))
	bw.WriteU8(0) // version
	bw.WriteZeros(3)
	bw.WriteU64(dataSegment.Position())       // data segment size
	bw.WriteU64(bytewriter.Undefined)         // free list head offset: none tracked
	dataAddrOffset := bw.Reserve(8)           // data segment address, patched below

	dataAddress := bw.Position()
	bw.WriteBytes(dataSegment.Bytes())
	if err := bw.WriteU64At(dataAddrOffset, dataAddress); err != nil {
		return 0, nil, err
	}

	return heapAddress, nameOffsets, nil
}

// WriteSymbolTableNode writes one SNOD containing a symbol table entry per
// dataset, and returns its address.
func WriteSymbolTableNode(bw *bytewriter.Writer, entries []Entry, nameOffsets []uint64) uint64 {
	addr := bw.Position()
	bw.WriteBytes([]byte("SNOD"))
	bw.WriteU8(1) // version
	bw.WriteU8(0) // reserved
	bw.WriteU16(uint16(len(entries)))

	for i, e := range entries {
		bw.WriteU64(nameOffsets[i])        // link name offset in local heap
		bw.WriteU64(e.ObjectHeaderAddress) // object header address
		bw.WriteU32(0)                     // cache type: no cached data
		bw.WriteU32(0)                     // reserved
		bw.WriteZeros(16)                  // scratch pad
	}
	return addr
}

// WriteBTree writes a single-leaf v1 B-tree (node_type 0, group) indexing
// snodAddress, keyed by the smallest and one-past-largest name offsets
// among nameOffsets, and returns its address.
func WriteBTree(bw *bytewriter.Writer, snodAddress uint64, nameOffsets []uint64) uint64 {
	addr := bw.Position()
	bw.WriteBytes([]byte("TREE"))
	bw.WriteU8(0) // node_type: group
	bw.WriteU8(0) // node_level: leaf
	bw.WriteU16(1) // entries_used: one child (the single SNOD)
	bw.WriteU64(bytewriter.Undefined) // left sibling
	bw.WriteU64(bytewriter.Undefined) // right sibling

	var minOffset, maxOffset uint64
	for i, o := range nameOffsets {
		if i == 0 || o < minOffset {
			minOffset = o
		}
		if o > maxOffset {
			maxOffset = o
		}
	}

	bw.WriteU64(minOffset)
	bw.WriteU64(snodAddress)
	bw.WriteU64(maxOffset + heapAlignment)
	return addr
}
