package fsutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.c")
		require.NoError(t, WriteAtomic(context.Background(), path, []byte("int x;\n"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "int x;\n", string(got))
	})

	t.Run("overwrites and keeps mode", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("permission bits are not preserved on windows")
		}

		path := filepath.Join(t.TempDir(), "a.c")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

		require.NoError(t, WriteAtomic(context.Background(), path, []byte("new"), 0644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "new", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "a.c")
		require.NoError(t, WriteAtomic(context.Background(), path, []byte("x"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "a.c", entries[0].Name())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "a.c")
		err := WriteAtomic(ctx, path, []byte("x"), 0)
		require.ErrorIs(t, err, context.Canceled)

		_, err = os.Stat(path)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "no", "such", "a.c")
		require.Error(t, WriteAtomic(context.Background(), path, []byte("x"), 0))
	})
}

func TestModeOf(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.c")
	require.Equal(t, DefaultFileMode, ModeOf(missing, 0))
	require.Equal(t, os.FileMode(0600), ModeOf(missing, 0600))
}
