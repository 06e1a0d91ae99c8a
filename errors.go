package hdf5

import "fmt"

// baseError carries the fields common to every error type this package
// returns: the dataset or file path involved, a human-readable message, and
// any structured fields useful for programmatic handling or logging.
type baseError struct {
	Path    string
	Message string
	Fields  map[string]any
	Cause   error
}

func (e baseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e baseError) Unwrap() error { return e.Cause }

// recoverySuggestions renders the trailing "Recovery Suggestions:" block
// every error type in this package appends to its message.
func recoverySuggestions(lines ...string) string {
	if len(lines) == 0 {
		return ""
	}
	out := "\nRecovery Suggestions:"
	for _, l := range lines {
		out += "\n  - " + l
	}
	return out
}

// InvalidArgumentError reports a caller-supplied argument that cannot
// produce a valid HDF5 file: a malformed shape, an Array whose Shape and
// element count disagree, an unsupported chunk configuration, and similar.
type InvalidArgumentError struct {
	baseError
}

func (e *InvalidArgumentError) Error() string {
	return e.baseError.Error() + recoverySuggestions(
		"check that the array's Shape() matches the number of elements it reports",
		"verify dimension extents are positive integers",
	)
}

func (e *InvalidArgumentError) Unwrap() error { return e.baseError.Unwrap() }

// UnsupportedFeatureError reports a request for something this writer
// deliberately does not implement: nested groups beyond one level, variable
// length strings, compound dtypes, symbolic or external links, SZIP
// compression, or writing two incompatible arrays to the same dataset path.
type UnsupportedFeatureError struct {
	baseError
}

func (e *UnsupportedFeatureError) Error() string {
	return e.baseError.Error() + recoverySuggestions(
		"this writer only implements a subset of the HDF5 v1 format; see the package documentation for supported features",
	)
}

func (e *UnsupportedFeatureError) Unwrap() error { return e.baseError.Unwrap() }

// TooManyChunksError reports that a chunked dataset would need more chunk
// B-tree entries than this writer supports in a single node (no internal
// node splitting is implemented).
type TooManyChunksError struct {
	baseError
}

func (e *TooManyChunksError) Error() string {
	return e.baseError.Error() + recoverySuggestions(
		"increase chunk dimensions (or set Layout to Contiguous) to reduce the number of chunks",
		"split the array across multiple datasets",
	)
}

func (e *TooManyChunksError) Unwrap() error { return e.baseError.Unwrap() }

// FileWriteError wraps an underlying OS error encountered while writing the
// temporary file, syncing it, or renaming it into place.
type FileWriteError struct {
	baseError
}

func (e *FileWriteError) Error() string {
	return e.baseError.Error() + recoverySuggestions(
		"check that the destination directory exists and is writable",
		"check available disk space",
	)
}

func (e *FileWriteError) Unwrap() error { return e.baseError.Unwrap() }

// InsufficientSpaceError reports that the destination filesystem does not
// have enough free space to hold the file being written.
type InsufficientSpaceError struct {
	baseError
	RequiredBytes  int64
	AvailableBytes int64
}

func (e *InsufficientSpaceError) Error() string {
	msg := fmt.Sprintf("%s (need %d bytes, have %d available)", e.baseError.Error(), e.RequiredBytes, e.AvailableBytes)
	return msg + recoverySuggestions(
		"free up disk space or choose a destination on a different filesystem",
		"enable compression to reduce the output size",
	)
}

func (e *InsufficientSpaceError) Unwrap() error { return e.baseError.Unwrap() }

// VerificationError reports that the temporary file written to disk does
// not match the size computed in memory, after the write otherwise
// completed without an OS-level error. The destination is not replaced.
type VerificationError struct {
	baseError
	ExpectedBytes int64
	ActualBytes   int64
}

func (e *VerificationError) Error() string {
	msg := fmt.Sprintf("%s (expected %d bytes, got %d)", e.baseError.Error(), e.ExpectedBytes, e.ActualBytes)
	return msg + recoverySuggestions(
		"retry the write; this usually indicates a concurrent modification or a faulty filesystem",
	)
}

func (e *VerificationError) Unwrap() error { return e.baseError.Unwrap() }

// WriteInterruptedError reports that the write was aborted partway through,
// typically because ctx was canceled. The destination file is left
// untouched — only the temporary file may exist, and it is cleaned up on a
// best-effort basis.
type WriteInterruptedError struct {
	baseError
}

func (e *WriteInterruptedError) Error() string {
	return e.baseError.Error() + recoverySuggestions(
		"the destination file was not modified; retry the write once the interruption cause is resolved",
	)
}

func (e *WriteInterruptedError) Unwrap() error { return e.baseError.Unwrap() }
