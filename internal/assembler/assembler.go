// Package assembler orchestrates the whole in-memory HDF5 image: the
// superblock, every dataset's data and object header, the root group's
// symbol table, and the final back-patch of addresses that were unknown
// until the rest of the file existed (L8, per the package layering in the
// top-level documentation).
package assembler

import (
	"context"
	"fmt"

	"github.com/arrayhdf/hdf5/internal/bytewriter"
	"github.com/arrayhdf/hdf5/internal/dataset"
	"github.com/arrayhdf/hdf5/internal/message"
	"github.com/arrayhdf/hdf5/internal/objectheader"
	"github.com/arrayhdf/hdf5/internal/superblock"
	"github.com/arrayhdf/hdf5/internal/symtab"
)

// Assemble builds the complete in-memory byte image for a file containing
// the given datasets (in the order given) and returns it.
func Assemble(ctx context.Context, specs []dataset.Spec) ([]byte, error) {
	bw := bytewriter.New(1 << 16)

	placeholders := superblock.Write(bw)

	entries := make([]symtab.Entry, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate dataset path %q", spec.Name)
		}
		seen[spec.Name] = true

		addr, err := dataset.Write(ctx, bw, spec)
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", spec.Name, err)
		}
		entries = append(entries, symtab.Entry{Name: spec.Name, ObjectHeaderAddress: addr})
	}

	heapAddr, nameOffsets, err := symtab.WriteLocalHeap(bw, entries)
	if err != nil {
		return nil, fmt.Errorf("root group local heap: %w", err)
	}
	snodAddr := symtab.WriteSymbolTableNode(bw, entries, nameOffsets)
	btreeAddr := symtab.WriteBTree(bw, snodAddr, nameOffsets)

	rootHeader := objectheader.New()
	symTableBody := message.EncodeSymbolTable(btreeAddr, heapAddr)
	frameBuf := bytewriter.New(8 + len(symTableBody) + 7)
	if err := message.WriteMessage(frameBuf, message.TypeSymbolTable, 0, symTableBody); err != nil {
		return nil, fmt.Errorf("root group symbol table message: %w", err)
	}
	rootHeader.AddMessage(frameBuf.Bytes())
	rootAddr := rootHeader.WriteTo(bw)

	eofAddress := bw.Position()
	if err := superblock.Patch(bw, placeholders, 0, eofAddress, rootAddr); err != nil {
		return nil, fmt.Errorf("superblock patch: %w", err)
	}

	return bw.Bytes(), nil
}
