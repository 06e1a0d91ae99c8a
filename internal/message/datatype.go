package message

import "github.com/arrayhdf/hdf5/internal/bytewriter"

// datatype class IDs used by this writer.
const (
	classFixedPoint uint8 = 0
	classFloat      uint8 = 1
)

// EncodeNumericDatatype builds a v1 fixed-point or floating-point datatype
// message body for one of the four dtypes this writer supports.
//
// Reference: HDF5 File Format Specification, "Datatype Message".
func EncodeNumericDatatype(size int, isFloat, signed bool) []byte {
	bw := bytewriter.New(8 + 4)

	class := classFixedPoint
	if isFloat {
		class = classFloat
	}
	version := uint8(1)
	classAndVersion := (version << 4) | class
	bw.WriteU8(classAndVersion)

	var bitField0 uint8
	if isFloat {
		// Bit field 0 holds the sign bit's location for the floating-point
		// class; bit fields 1-2 (padding/normalization, byte order) are left
		// at their IEEE-little-endian defaults.
		if size == 8 {
			bitField0 = 63
		} else {
			bitField0 = 31
		}
	} else if signed {
		bitField0 |= 0x08 // bit 3: signed
	}
	bw.WriteU8(bitField0)
	bw.WriteU8(0) // bit field 1
	bw.WriteU8(0) // bit field 2
	bw.WriteU32(uint32(size)) // size, in bytes

	// Properties: bit offset (2 bytes) + bit precision (2 bytes), minimum
	// required for fixed-point/float class 0/1.
	bw.WriteU16(0)                // bit offset
	bw.WriteU16(uint16(size * 8)) // bit precision

	if isFloat {
		// Exponent location, exponent size, mantissa location, mantissa
		// size, exponent bias — IEEE 754 layouts. The sign's own location
		// was already recorded in bitField0 above, not repeated here.
		if size == 8 {
			bw.WriteU8(52) // exponent location
			bw.WriteU8(11) // exponent size
			bw.WriteU8(0)  // mantissa location
			bw.WriteU8(52) // mantissa size
			bw.WriteU32(1023) // exponent bias
		} else {
			bw.WriteU8(23)
			bw.WriteU8(8)
			bw.WriteU8(0)
			bw.WriteU8(23)
			bw.WriteU32(127)
		}
	}

	return bw.Bytes()
}
