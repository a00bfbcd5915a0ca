package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "config-updater/core/errors"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Client defines the interface for document storage operations.
type Client interface {
	// Exists reports whether a regular file exists at path.
	Exists(path string) (bool, error)
	// ReadFile returns the full contents of path.
	ReadFile(path string) ([]byte, error)
	// CheckWritable verifies that the existing file at path can be opened for writing.
	CheckWritable(path string) error
	// WriteFile replaces the contents of path. Either all of data is written or
	// the previous contents are left untouched.
	WriteFile(path string, data []byte) error
}

// NewClient creates a Client over the given filesystem.
func NewClient(filesystem afero.Fs, cfg Config) Client {
	return &aferoClient{fs: filesystem, cfg: cfg}
}

// NewOsClient creates a Client over the operating system filesystem.
func NewOsClient(cfg Config) Client {
	return NewClient(afero.NewOsFs(), cfg)
}

type aferoClient struct {
	fs  afero.Fs
	cfg Config
}

func (c *aferoClient) Exists(path string) (bool, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, apperrors.New(apperrors.CodeIO, path, err)
	}
	if info.IsDir() {
		return false, apperrors.Newf(apperrors.CodeIO, path, "is a directory")
	}
	return true, nil
}

func (c *aferoClient) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.New(apperrors.CodeNotFound, path, err)
		}
		return nil, apperrors.New(apperrors.CodeIO, path, err)
	}
	return data, nil
}

func (c *aferoClient) CheckWritable(path string) error {
	f, err := c.fs.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.New(apperrors.CodeNotFound, path, err)
		}
		return apperrors.New(apperrors.CodeUnwritable, path, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.New(apperrors.CodeIO, path, err)
	}
	return nil
}

func (c *aferoClient) WriteFile(path string, data []byte) error {
	path, err := c.resolveLinks(path)
	if err != nil {
		return apperrors.New(apperrors.CodeIO, path, err)
	}

	mode := fs.FileMode(0o644)
	if info, err := c.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if !c.cfg.Atomic {
		if err := afero.WriteFile(c.fs, path, data, mode); err != nil {
			return writeError(path, err)
		}
		return nil
	}

	// Stage next to the target so the rename stays on one filesystem.
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := afero.WriteFile(c.fs, tmp, data, mode); err != nil {
		_ = c.fs.Remove(tmp)
		return writeError(path, err)
	}
	if err := c.fs.Rename(tmp, path); err != nil {
		_ = c.fs.Remove(tmp)
		return writeError(path, err)
	}
	return nil
}

// maxLinks bounds symlink chains, as the kernel does with ELOOP.
const maxLinks = 40

// resolveLinks follows symlinks at the final element of path so a write
// replaces the link target rather than the link. Filesystems without symlink
// support return path unchanged.
func (c *aferoClient) resolveLinks(path string) (string, error) {
	lstater, ok := c.fs.(afero.Lstater)
	if !ok {
		return path, nil
	}
	reader, ok := c.fs.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	for i := 0; i < maxLinks; i++ {
		info, lstatCalled, err := lstater.LstatIfPossible(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return path, nil
			}
			return path, err
		}
		if !lstatCalled || info.Mode()&fs.ModeSymlink == 0 {
			return path, nil
		}

		target, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return path, err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
	}
	return path, fmt.Errorf("too many levels of symbolic links")
}

func writeError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return apperrors.New(apperrors.CodeUnwritable, path, err)
	}
	return apperrors.New(apperrors.CodeIO, path, fmt.Errorf("failed to write: %w", err))
}
