package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/data"

	"github.com/spf13/afero"
)

// File reads documents from a directory of an afero filesystem.
type File struct {
	fs  afero.Fs
	dir string
}

// NewFile creates a source reading <dir>/<name> from fsys.
func NewFile(fsys afero.Fs, dir string) *File {
	return &File{fs: fsys, dir: dir}
}

// NewDir creates a source reading from a directory on the local disk.
func NewDir(dir string) *File {
	return NewFile(afero.NewReadOnlyFs(afero.NewOsFs()), dir)
}

// NewEmbedded creates a source reading the documents compiled into the binary.
func NewEmbedded() *File {
	return NewFile(afero.FromIOFS{FS: data.FS}, ".")
}

func (f *File) Read(_ context.Context, name string) ([]byte, error) {
	p := path.Join(f.dir, path.Clean("/" + name)[1:])
	b, err := afero.ReadFile(f.fs, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", catalog.ErrResourceNotFound, p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return b, nil
}

// Describe names the source for status output.
func (f *File) Describe() string {
	return "file:" + f.dir
}
