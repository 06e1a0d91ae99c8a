// Package hdf5 writes HDF5 v1 container files from in-memory n-dimensional
// arrays and tabular data.
//
// The package implements the writer half of the HDF5 binary format: it does
// not read HDF5 files back. A single write call builds a superblock, a root
// group, one object header per dataset, and (for chunked datasets) a B-tree
// v1 chunk index and an optional gzip/LZF filter pipeline, entirely in
// memory, then materializes the result to disk atomically.
//
// See WriteArray, WriteMultiple, and WriteDataCube for the entry points.
package hdf5
