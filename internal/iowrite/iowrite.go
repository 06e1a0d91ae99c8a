// Package iowrite implements the atomic file materialization step (L9):
// write the complete in-memory image to a temporary file in the
// destination directory, verify its size, then fsync it and atomically
// rename it into place. The destination path is never opened for in-place
// writing, so a crash or interruption midway never leaves a partially
// written file at the destination.
package iowrite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/renameio/v2"
)

// SizeMismatchError reports that the temporary file does not match the
// expected byte count after an otherwise successful write. It is detected
// before the rename, so the destination is left as it was.
type SizeMismatchError struct {
	Expected int64
	Actual   int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("materialized file size %d does not match expected size %d", e.Actual, e.Expected)
}

// InsufficientSpaceError reports that the destination filesystem does not
// have enough free space for the write about to be attempted.
type InsufficientSpaceError struct {
	Required  int64
	Available int64
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("insufficient space: need %d bytes, have %d available", e.Required, e.Available)
}

// WriteFileAtomic writes data to path by writing a temporary file in
// path's directory, syncing it, and atomically renaming it over path. It
// checks ctx before starting so a canceled context never begins a write
// that could be left half-finished.
func WriteFileAtomic(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	if err := checkFreeSpace(dir, int64(len(data))); err != nil {
		return err
	}

	t, err := renameio.TempFile(dir, path)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer t.Cleanup()

	n, err := t.Write(data)
	if err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("incomplete write: wrote %d of %d bytes", n, len(data))
	}

	info, err := t.Stat()
	if err != nil {
		return fmt.Errorf("verify temp file: %w", err)
	}
	if info.Size() != int64(len(data)) {
		return &SizeMismatchError{Expected: int64(len(data)), Actual: info.Size()}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := t.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}

	return nil
}

// checkFreeSpace returns an InsufficientSpaceError if dir's filesystem
// does not have at least required bytes free. Best-effort: a Statfs
// failure (unsupported platform, permissions) is ignored rather than
// blocking the write.
func checkFreeSpace(dir string, required int64) error {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(dir, &stat); err != nil {
		return nil
	}
	available := int64(stat.Bavail) * int64(stat.Bsize)
	if available < required {
		return &InsufficientSpaceError{Required: required, Available: available}
	}
	return nil
}
