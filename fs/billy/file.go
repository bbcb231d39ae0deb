package billy

import (
	"io"
	"io/fs"

	"github.com/go-git/go-billy/v5"
	"github.com/jmgilman/go/vfs/fs/core"
)

// File wraps billy.File to implement core.File.
// billy.File has no Stat, so the filesystem is kept alongside the handle.
type File struct {
	file billy.File
	fs   billy.Basic
	name string
}

func (f *File) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

func (f *File) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

func (f *File) Close() error {
	return f.file.Close()
}

// Stat returns the metadata of the file the handle was opened for.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.fs.Stat(f.name)
}

// Name returns the normalized container-relative name.
func (f *File) Name() string {
	return f.name
}

var (
	_ core.File = (*File)(nil)
	_ io.Seeker = (*File)(nil)
)
