package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "config-updater/core/errors"
	"config-updater/core/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemClient(t *testing.T, files map[string]string) (afero.Fs, storage.Client) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o640))
	}
	return fs, storage.NewClient(fs, storage.Config{Atomic: true})
}

func TestClient_Exists(t *testing.T) {
	fs, client := newMemClient(t, map[string]string{"/cfg/current.yaml": "a: 1\n"})
	require.NoError(t, fs.MkdirAll("/cfg/dir.yaml", 0o755))

	t.Run("Present", func(t *testing.T) {
		ok, err := client.Exists("/cfg/current.yaml")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Missing", func(t *testing.T) {
		ok, err := client.Exists("/cfg/missing.yaml")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := client.Exists("/cfg/dir.yaml")
		assert.True(t, errors.Is(err, apperrors.ErrIO))
	})
}

func TestClient_ReadFile(t *testing.T) {
	_, client := newMemClient(t, map[string]string{"/current.yaml": "a: 1\n"})

	data, err := client.ReadFile("/current.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))

	_, err = client.ReadFile("/missing.yaml")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestClient_CheckWritable(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/current.yaml", []byte("a: 1\n"), 0o644))

	t.Run("Writable", func(t *testing.T) {
		client := storage.NewClient(base, storage.Config{})
		assert.NoError(t, client.CheckWritable("/current.yaml"))
	})

	t.Run("ReadOnly", func(t *testing.T) {
		client := storage.NewClient(afero.NewReadOnlyFs(base), storage.Config{})
		err := client.CheckWritable("/current.yaml")
		assert.True(t, errors.Is(err, apperrors.ErrUnwritable), "got %v", err)
	})

	t.Run("Missing", func(t *testing.T) {
		client := storage.NewClient(base, storage.Config{})
		err := client.CheckWritable("/missing.yaml")
		assert.True(t, errors.Is(err, apperrors.ErrNotFound), "got %v", err)
	})

	t.Run("DoesNotTruncate", func(t *testing.T) {
		client := storage.NewClient(base, storage.Config{})
		require.NoError(t, client.CheckWritable("/current.yaml"))
		data, err := afero.ReadFile(base, "/current.yaml")
		require.NoError(t, err)
		assert.Equal(t, "a: 1\n", string(data))
	})
}

func TestClient_WriteFile(t *testing.T) {
	t.Run("AtomicLeavesNoTempFiles", func(t *testing.T) {
		fs, client := newMemClient(t, map[string]string{"/cfg/current.yaml": "a: 1\n"})

		require.NoError(t, client.WriteFile("/cfg/current.yaml", []byte("b: 2\n")))

		data, err := afero.ReadFile(fs, "/cfg/current.yaml")
		require.NoError(t, err)
		assert.Equal(t, "b: 2\n", string(data))

		entries, err := afero.ReadDir(fs, "/cfg")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "current.yaml", entries[0].Name())
	})

	t.Run("ReadOnlyKeepsOriginal", func(t *testing.T) {
		base := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(base, "/current.yaml", []byte("a: 1\n"), 0o644))
		client := storage.NewClient(afero.NewReadOnlyFs(base), storage.Config{Atomic: true})

		err := client.WriteFile("/current.yaml", []byte("b: 2\n"))
		assert.True(t, errors.Is(err, apperrors.ErrUnwritable), "got %v", err)

		data, readErr := afero.ReadFile(base, "/current.yaml")
		require.NoError(t, readErr)
		assert.Equal(t, "a: 1\n", string(data))
	})

	t.Run("NonAtomic", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		client := storage.NewClient(fs, storage.Config{Atomic: false})

		require.NoError(t, client.WriteFile("/new.yaml", []byte("c: 3\n")))
		data, err := afero.ReadFile(fs, "/new.yaml")
		require.NoError(t, err)
		assert.Equal(t, "c: 3\n", string(data))
	})
}

func TestOsClient_PreservesMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "current.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))

	client := storage.NewOsClient(storage.Config{Atomic: true})
	require.NoError(t, client.WriteFile(path, []byte("a: 2\n")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: 2\n", string(data))
}

func TestOsClient_WritesThroughSymlinks(t *testing.T) {
	tests := []struct {
		name   string
		target func(dir string) string
	}{
		{"Relative", func(string) string { return "real.yaml" }},
		{"Absolute", func(dir string) string { return filepath.Join(dir, "real.yaml") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			realPath := filepath.Join(dir, "real.yaml")
			link := filepath.Join(dir, "current.yaml")
			require.NoError(t, os.WriteFile(realPath, []byte("a: 1\n"), 0o600))
			if err := os.Symlink(tt.target(dir), link); err != nil {
				t.Skipf("symlinks unavailable: %v", err)
			}

			client := storage.NewOsClient(storage.Config{Atomic: true})
			require.NoError(t, client.WriteFile(link, []byte("a: 2\n")))

			data, err := os.ReadFile(realPath)
			require.NoError(t, err)
			assert.Equal(t, "a: 2\n", string(data))

			info, err := os.Lstat(link)
			require.NoError(t, err)
			assert.NotZero(t, info.Mode()&os.ModeSymlink, "link was replaced by a regular file")

			realInfo, err := os.Stat(realPath)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), realInfo.Mode().Perm())

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 2)
		})
	}

	t.Run("Chain", func(t *testing.T) {
		dir := t.TempDir()
		realPath := filepath.Join(dir, "real.yaml")
		require.NoError(t, os.WriteFile(realPath, []byte("a: 1\n"), 0o644))
		if err := os.Symlink("real.yaml", filepath.Join(dir, "middle.yaml")); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
		require.NoError(t, os.Symlink("middle.yaml", filepath.Join(dir, "current.yaml")))

		client := storage.NewOsClient(storage.Config{Atomic: true})
		require.NoError(t, client.WriteFile(filepath.Join(dir, "current.yaml"), []byte("a: 3\n")))

		data, err := os.ReadFile(realPath)
		require.NoError(t, err)
		assert.Equal(t, "a: 3\n", string(data))
	})

	t.Run("Loop", func(t *testing.T) {
		dir := t.TempDir()
		a, b := filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")
		if err := os.Symlink("b.yaml", a); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
		require.NoError(t, os.Symlink("a.yaml", b))

		client := storage.NewOsClient(storage.Config{Atomic: true})
		err := client.WriteFile(a, []byte("a: 1\n"))
		assert.True(t, errors.Is(err, apperrors.ErrIO), "got %v", err)
	})
}
