package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/jmgilman/go/vfs/fs/core"
	"github.com/jmgilman/go/vfs/pathutil"
)

// LocalFS is a container driver for a real directory.
type LocalFS struct {
	driver
}

// MemoryFS is a container driver for an in-memory tree.
type MemoryFS struct {
	driver
}

// NewLocal creates a driver rooted at the real directory root.
// The directory is not required to exist until it is first accessed.
func NewLocal(root string) *LocalFS {
	return &LocalFS{driver{
		bfs:  osfs.New(root),
		typ:  core.FSTypeLocal,
		root: root,
	}}
}

// NewMemory creates an empty in-memory driver.
func NewMemory() *MemoryFS {
	return &MemoryFS{driver{
		bfs: memfs.New(),
		typ: core.FSTypeMemory,
	}}
}

// driver adapts a billy.Filesystem to core.FS. Names are rooted at "/" so
// that both osfs chroots and memfs resolve them against the same root.
type driver struct {
	bfs  billy.Filesystem
	typ  core.FSType
	root string
}

// Unwrap returns the underlying billy.Filesystem.
func (d *driver) Unwrap() billy.Filesystem {
	return d.bfs
}

// Type returns the container type.
func (d *driver) Type() core.FSType {
	return d.typ
}

// Root returns the real directory the driver is rooted at, or "" for
// memory drivers.
func (d *driver) Root() string {
	return d.root
}

// ReadOnly always returns false.
func (d *driver) ReadOnly() bool {
	return false
}

// normalize maps a container-relative name onto the billy root. Parent
// references are clamped at the root.
func normalize(name string) string {
	return path.Clean("/" + pathutil.InternalPath(name))
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (e *dirEntry) Name() string               { return e.info.Name() }
func (e *dirEntry) IsDir() bool                { return e.info.IsDir() }
func (e *dirEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e *dirEntry) Info() (fs.FileInfo, error) { return e.info, nil }

// Open opens the named file for reading.
func (d *driver) Open(name string) (fs.File, error) {
	name = normalize(name)
	f, err := d.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: d.bfs, name: name}, nil
}

// Stat returns file metadata, following symbolic links.
func (d *driver) Stat(name string) (fs.FileInfo, error) {
	return d.bfs.Stat(normalize(name))
}

// Lstat returns file metadata without following symbolic links.
func (d *driver) Lstat(name string) (fs.FileInfo, error) {
	return d.bfs.Lstat(normalize(name))
}

// ReadDir returns the directory entries sorted by name.
func (d *driver) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := d.bfs.ReadDir(normalize(name))
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries, nil
}

// ReadFile reads the whole named file.
func (d *driver) ReadFile(name string) ([]byte, error) {
	f, err := d.bfs.Open(normalize(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (d *driver) Exists(name string) (bool, error) {
	_, err := d.bfs.Stat(normalize(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Create creates or truncates the named file for writing.
func (d *driver) Create(name string) (core.File, error) {
	name = normalize(name)
	f, err := d.bfs.Create(name)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: d.bfs, name: name}, nil
}

// OpenFile opens a file with the specified flags and permissions.
func (d *driver) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = normalize(name)
	f, err := d.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: d.bfs, name: name}, nil
}

// WriteFile writes data to the named file, creating or truncating it.
func (d *driver) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f, err := d.bfs.OpenFile(normalize(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (d *driver) MkdirAll(p string, perm fs.FileMode) error {
	return d.bfs.MkdirAll(normalize(p), perm)
}

// Remove removes the named file or empty directory.
func (d *driver) Remove(name string) error {
	return d.bfs.Remove(normalize(name))
}

// Compile-time interface checks.
var (
	_ core.FS      = (*LocalFS)(nil)
	_ core.FS      = (*MemoryFS)(nil)
	_ core.LstatFS = (*LocalFS)(nil)
	_ core.LstatFS = (*MemoryFS)(nil)
)
