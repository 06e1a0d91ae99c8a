// Package objectheader writes HDF5 v1 object headers: the 16-byte prefix
// (version, reserved, message count, reference count, header size) that
// precedes every object's message list. Continuation blocks are not
// supported — an object's messages must fit in one contiguous run, which
// this writer enforces by construction since it never splits.
package objectheader

import "github.com/arrayhdf/hdf5/internal/bytewriter"

// Builder accumulates pre-encoded messages (already framed by
// internal/message.WriteMessage) for one object header, then writes the
// v1 prefix followed by them.
//
// Reference: HDF5 File Format Specification, "Version 1 Object Header
// Prefix". C Reference: H5Oprivate.h / H5Ocache.c.
type Builder struct {
	messages [][]byte
}

// New returns an empty object header builder.
func New() *Builder { return &Builder{} }

// AddMessage appends one already-framed message body (header + padded
// body) to the header's message list.
func (b *Builder) AddMessage(framed []byte) {
	b.messages = append(b.messages, framed)
}

// WriteTo writes the object header's v1 prefix followed by its messages,
// and returns the address it started at.
func (b *Builder) WriteTo(bw *bytewriter.Writer) uint64 {
	headerAddr := bw.Position()

	var totalMsgBytes int
	for _, m := range b.messages {
		totalMsgBytes += len(m)
	}

	bw.WriteU8(1) // version
	bw.WriteU8(0) // reserved
	bw.WriteU16(uint16(len(b.messages)))
	bw.WriteU32(1) // object reference count
	bw.WriteU32(uint32(totalMsgBytes))
	bw.WriteZeros(4) // pad prefix to 16 bytes (8-byte alignment)

	for _, m := range b.messages {
		bw.WriteBytes(m)
	}

	return headerAddr
}
