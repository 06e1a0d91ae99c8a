package message

import "github.com/arrayhdf/hdf5/internal/bytewriter"

// EncodeStringAttribute builds a v1 attribute message body for a
// fixed-length ASCII string value.
//
// Reference: HDF5 File Format Specification, "Attribute Message", v1.
func EncodeStringAttribute(name, value string) []byte {
	nameBytes := padded(name, 8)
	datatype := encodeFixedStringDatatype(len(value) + 1)
	dataspace := EncodeDataspace(nil)
	dataBytes := padded(value, 8)

	bw := bytewriter.New(8 + len(nameBytes) + len(datatype) + len(dataspace) + len(dataBytes))
	bw.WriteU8(1) // version
	bw.WriteU8(0) // reserved
	bw.WriteU16(uint16(len(name) + 1))
	bw.WriteU16(uint16(len(datatype)))
	bw.WriteU16(uint16(len(dataspace)))
	bw.WriteBytes(nameBytes)
	bw.WriteBytes(datatype)
	bw.WriteBytes(dataspace)
	bw.WriteBytes(dataBytes)
	return bw.Bytes()
}

// EncodeNumericAttribute builds a v1 attribute message body for a scalar
// float64 value, giving numeric attributes a real datatype/dataspace/value
// triple instead of stringifying them.
func EncodeNumericAttribute(name string, value float64) []byte {
	nameBytes := padded(name, 8)
	datatype := EncodeNumericDatatype(8, true, false)
	dataspace := EncodeDataspace(nil)

	valBuf := bytewriter.New(8)
	valBuf.WriteF64(value)

	bw := bytewriter.New(8 + len(nameBytes) + len(datatype) + len(dataspace) + 8)
	bw.WriteU8(1)
	bw.WriteU8(0)
	bw.WriteU16(uint16(len(name) + 1))
	bw.WriteU16(uint16(len(datatype)))
	bw.WriteU16(uint16(len(dataspace)))
	bw.WriteBytes(nameBytes)
	bw.WriteBytes(datatype)
	bw.WriteBytes(dataspace)
	bw.WriteBytes(valBuf.Bytes())
	return bw.Bytes()
}

// encodeFixedStringDatatype builds a v1 datatype message body for a
// fixed-length, NUL-terminated ASCII string of the given byte size.
func encodeFixedStringDatatype(size int) []byte {
	bw := bytewriter.New(8)
	class := uint8(3) // string
	version := uint8(1)
	bw.WriteU8((version << 4) | class)
	bw.WriteU8(0) // padding: NUL terminate, bits 0-3; charset ASCII, bits 4-7
	bw.WriteU8(0)
	bw.WriteU8(0)
	bw.WriteU32(uint32(size))
	return bw.Bytes()
}

// padded returns s NUL-terminated and padded with zero bytes out to the
// next multiple of align.
func padded(s string, align int) []byte {
	n := len(s) + 1
	pad := (align - n%align) % align
	out := make([]byte, n+pad)
	copy(out, s)
	return out
}
