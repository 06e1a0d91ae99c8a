// Package superblock writes the HDF5 v0 superblock: the fixed-format
// header every HDF5 file starts with, naming the format version, address
// and length field sizes, group internal/leaf node K values, and the
// addresses of the end-of-file marker and root group symbol table entry.
package superblock

import "github.com/arrayhdf/hdf5/internal/bytewriter"

// Signature is the 8-byte magic every HDF5 file begins with.
var Signature = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

const (
	sizeOfOffsets = 8
	sizeOfLengths = 8
	groupLeafK    = 4
	groupIntK     = 16
)

// Size is the fixed byte size of a v0 superblock with 8-byte offsets and
// lengths, as written by Write: 8-byte signature, 8 one-byte version/size
// fields, two 2-byte K values, a 4-byte consistency-flags field, four
// 8-byte placeholder addresses, and the root group's symbol table entry.
const Size = 8 + 8 + 2 + 2 + 4 + 4*8 + symbolTableEntrySize

// symbolTableEntrySize is the size of the root group's symbol table entry
// embedded at the end of the superblock: link name offset (8), object
// header address (8), cache type (4), reserved (4), scratch pad (16).
const symbolTableEntrySize = 8 + 8 + 4 + 4 + 16

// Placeholders holds the offsets (within the superblock, i.e. relative to
// file start) of fields that must be back-patched once the rest of the
// file has been laid out.
type Placeholders struct {
	BaseAddressOffset      uint64
	FreeSpaceAddressOffset uint64
	EOFAddressOffset       uint64
	DriverInfoOffset       uint64
	RootObjectHeaderOffset uint64
}

// Write emits a v0 superblock at the writer's current position (which must
// be 0; HDF5 requires the superblock begin at file offset 0 for files with
// no user block). It reserves the base/free-space/EOF/driver-info address
// fields and the root group's object header address as placeholders,
// returning their offsets so the caller can back-patch them once known.
func Write(bw *bytewriter.Writer) Placeholders {
	bw.WriteBytes(Signature)

	bw.WriteU8(0) // superblock version
	bw.WriteU8(0) // free space storage version
	bw.WriteU8(0) // root group symbol table version
	bw.WriteU8(0) // reserved
	bw.WriteU8(0) // shared header message format version
	bw.WriteU8(sizeOfOffsets)
	bw.WriteU8(sizeOfLengths)
	bw.WriteU8(0) // reserved

	bw.WriteU16(groupLeafK)
	bw.WriteU16(groupIntK)
	bw.WriteU32(0) // file consistency flags

	var p Placeholders
	p.BaseAddressOffset = bw.Reserve(8)
	p.FreeSpaceAddressOffset = bw.Reserve(8)
	p.EOFAddressOffset = bw.Reserve(8)
	p.DriverInfoOffset = bw.Reserve(8)

	// Root group symbol table entry: link name offset (always 0, the root
	// has no name within its own table), object header address
	// (placeholder), cache type, reserved, scratch pad.
	bw.WriteU64(0)
	p.RootObjectHeaderOffset = bw.Reserve(8)
	bw.WriteU32(0) // cache type: no cached data
	bw.WriteU32(0) // reserved
	bw.WriteZeros(16)

	return p
}

// Patch back-fills the placeholder fields once the base address, free
// space address (undefined, since this writer never frees space), EOF
// address, and root group object header address are known.
func Patch(bw *bytewriter.Writer, p Placeholders, baseAddress, eofAddress, rootObjectHeaderAddress uint64) error {
	if err := bw.WriteU64At(p.BaseAddressOffset, baseAddress); err != nil {
		return err
	}
	if err := bw.WriteU64At(p.FreeSpaceAddressOffset, bytewriter.Undefined); err != nil {
		return err
	}
	if err := bw.WriteU64At(p.EOFAddressOffset, eofAddress); err != nil {
		return err
	}
	if err := bw.WriteU64At(p.DriverInfoOffset, bytewriter.Undefined); err != nil {
		return err
	}
	return bw.WriteU64At(p.RootObjectHeaderOffset, rootObjectHeaderAddress)
}
