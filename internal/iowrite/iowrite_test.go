package iowrite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.h5")
	data := []byte("hdf5 payload")

	err := WriteFileAtomic(context.Background(), path, data)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestWriteFileAtomicCreatesMissingDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.h5")

	err := WriteFileAtomic(context.Background(), path, []byte("x"))
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestWriteFileAtomicRejectsCanceledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.h5")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WriteFileAtomic(ctx, path, []byte("x"))
	require.Error(t, err)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestWriteFileAtomicReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.h5")

	require.NoError(t, os.WriteFile(path, []byte("old contents, longer than new"), 0o644))
	require.NoError(t, WriteFileAtomic(context.Background(), path, []byte("new")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), got)
}
