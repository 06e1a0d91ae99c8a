// Package message builds HDF5 v1 object header messages: dataspace,
// datatype, data layout, fill value, filter pipeline, and attribute. Each
// builder returns the message's encoded body; framing (type, size, flags)
// is applied uniformly by WriteMessage.
package message

import "github.com/arrayhdf/hdf5/internal/bytewriter"

// Type identifiers for the object header messages this writer emits.
// Reference: HDF5 File Format Specification, "Header Message Types".
const (
	TypeDataspace      uint16 = 0x0001
	TypeDatatype       uint16 = 0x0003
	TypeFillValue      uint16 = 0x0005
	TypeLinkInfo       uint16 = 0x0002
	TypeLayout         uint16 = 0x0008
	TypeFilterPipeline uint16 = 0x000B
	TypeAttribute      uint16 = 0x000C
	TypeSymbolTable    uint16 = 0x0011
)

// EncodeSymbolTable builds a symbol table message body: the root group's
// B-tree address followed by its local heap address.
//
// Reference: HDF5 File Format Specification, "Symbol Table Message".
func EncodeSymbolTable(btreeAddress, heapAddress uint64) []byte {
	bw := bytewriter.New(16)
	bw.WriteU64(btreeAddress)
	bw.WriteU64(heapAddress)
	return bw.Bytes()
}

// WriteMessage writes one object header message: an 8-byte header (type,
// size, flags, 3 reserved bytes) followed by body, itself padded so the
// next message starts 8-byte aligned.
func WriteMessage(bw *bytewriter.Writer, msgType uint16, flags uint8, body []byte) error {
	bw.WriteU16(msgType)
	bw.WriteU16(uint16(len(body)))
	bw.WriteU8(flags)
	bw.WriteZeros(3)
	bw.WriteBytes(body)
	return bw.AlignTo(8)
}
