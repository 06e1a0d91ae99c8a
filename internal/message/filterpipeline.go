package message

import "github.com/arrayhdf/hdf5/internal/bytewriter"

// FilterSpec is one pipeline entry as recorded in the v2 filter pipeline
// message: the filter's numeric ID, an optional name, flags, and client
// data values.
type FilterSpec struct {
	ID       uint16
	Name     string
	Flags    uint16
	CDValues []uint32
}

// EncodeFilterPipeline builds a v2 filter pipeline message body.
//
// Reference: HDF5 File Format Specification, "Filter Pipeline Message", v2.
func EncodeFilterPipeline(filters []FilterSpec) ([]byte, error) {
	bw := bytewriter.New(8 + 32*len(filters))
	bw.WriteU8(2) // version
	bw.WriteU8(uint8(len(filters)))

	for _, f := range filters {
		nameLen := len(f.Name) + 1
		namePad := (8 - nameLen%8) % 8
		bw.WriteU16(f.ID)
		if f.ID >= 256 { // only filters outside the reserved range need a name
			bw.WriteU16(uint16(nameLen + namePad))
		} else {
			bw.WriteU16(0)
		}
		bw.WriteU16(f.Flags)
		bw.WriteU16(uint16(len(f.CDValues)))

		if f.ID >= 256 {
			bw.WriteString(f.Name)
			bw.WriteZeros(namePad) // pad the name itself to a multiple of 8 bytes
		}
		for _, v := range f.CDValues {
			bw.WriteU32(v)
		}
		if len(f.CDValues)%2 == 1 {
			bw.WriteZeros(4) // pad cd_values to an 8-byte boundary
		}
	}
	return bw.Bytes(), nil
}
