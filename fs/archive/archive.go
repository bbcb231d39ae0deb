package archive

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/jmgilman/go/vfs/fs/billy"
	"github.com/jmgilman/go/vfs/fs/core"
	"github.com/jmgilman/go/vfs/pathutil"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// ErrUnsupportedFormat is returned when data is not a recognized archive.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// FS is a read-only container backed by a decoded archive.
type FS struct {
	mem      *billy.MemoryFS
	root     string
	format   Format
	loaded   time.Time
	modTimes map[string]time.Time
}

// Open decodes the archive file at the real path realPath.
func Open(realPath string) (*FS, error) {
	data, err := os.ReadFile(realPath)
	if err != nil {
		return nil, err
	}
	a, err := FromBytes(realPath, data)
	if err != nil {
		return nil, err
	}
	if info, statErr := os.Stat(realPath); statErr == nil {
		a.loaded = info.ModTime()
	}
	return a, nil
}

// FromBytes decodes an archive held in memory. name is reported by Root and
// used for extension-based format detection.
func FromBytes(name string, data []byte) (*FS, error) {
	a := &FS{
		mem:      billy.NewMemory(),
		root:     name,
		format:   Detect(name, data),
		loaded:   time.Now(),
		modTimes: make(map[string]time.Time),
	}

	var err error
	switch a.format {
	case FormatZip:
		err = a.loadZip(data)
	case FormatTar:
		err = a.loadTar(bytes.NewReader(data))
	case FormatTarGzip:
		var zr *gzip.Reader
		if zr, err = gzip.NewReader(bytes.NewReader(data)); err == nil {
			err = a.loadTar(zr)
			_ = zr.Close()
		}
	case FormatTarZstd:
		var zr *zstd.Decoder
		if zr, err = zstd.NewReader(bytes.NewReader(data)); err == nil {
			err = a.loadTar(zr)
			zr.Close()
		}
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s archive %s: %w", a.format, name, err)
	}
	return a, nil
}

func (a *FS) loadZip(data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			if err := a.addDir(f.Name, f.Modified); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open entry %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return fmt.Errorf("read entry %s: %w", f.Name, err)
		}
		if err := a.addFile(f.Name, content, f.Modified); err != nil {
			return err
		}
	}
	return nil
}

func (a *FS) loadTar(r io.Reader) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := a.addDir(hdr.Name, hdr.ModTime); err != nil {
				return err
			}
		case tar.TypeReg:
			content, err := io.ReadAll(tr)
			if err != nil {
				return fmt.Errorf("read entry %s: %w", hdr.Name, err)
			}
			if err := a.addFile(hdr.Name, content, hdr.ModTime); err != nil {
				return err
			}
		}
		// Links and device entries have no container representation.
	}
}

func (a *FS) addDir(name string, mod time.Time) error {
	k := key(name)
	if k == "" {
		return nil
	}
	if err := a.mem.MkdirAll(k, 0o755); err != nil {
		return fmt.Errorf("add directory %s: %w", name, err)
	}
	a.modTimes[k] = mod
	return nil
}

func (a *FS) addFile(name string, content []byte, mod time.Time) error {
	k := key(name)
	if k == "" {
		return nil
	}
	if dir := path.Dir(k); dir != "." {
		if err := a.mem.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("add directory %s: %w", dir, err)
		}
	}
	if err := a.mem.WriteFile(k, content, 0o644); err != nil {
		return fmt.Errorf("add file %s: %w", name, err)
	}
	a.modTimes[k] = mod
	return nil
}

// key normalizes a container-relative name to the form used in modTimes.
// The root is "".
func key(name string) string {
	return strings.TrimPrefix(path.Clean("/"+pathutil.InternalPath(name)), "/")
}

func (a *FS) modTime(k string) time.Time {
	if t, ok := a.modTimes[k]; ok && !t.IsZero() {
		return t
	}
	return a.loaded
}

// Format returns the detected archive format.
func (a *FS) Format() Format {
	return a.format
}

// Type returns core.FSTypeArchive.
func (a *FS) Type() core.FSType {
	return core.FSTypeArchive
}

// Root returns the path or name the archive was opened from.
func (a *FS) Root() string {
	return a.root
}

// ReadOnly always returns true.
func (a *FS) ReadOnly() bool {
	return true
}

// Open opens the named entry for reading.
func (a *FS) Open(name string) (fs.File, error) {
	f, err := a.mem.Open(name)
	if err != nil {
		return nil, err
	}
	return &file{File: f, fs: a, key: key(name)}, nil
}

// Stat returns entry metadata with the modification time recorded in the
// archive.
func (a *FS) Stat(name string) (fs.FileInfo, error) {
	info, err := a.mem.Stat(name)
	if err != nil {
		return nil, err
	}
	return &fileInfo{FileInfo: info, modTime: a.modTime(key(name))}, nil
}

// Lstat is Stat; archives hold no symbolic links.
func (a *FS) Lstat(name string) (fs.FileInfo, error) {
	return a.Stat(name)
}

// ReadDir returns the entries of a directory sorted by name.
func (a *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := a.mem.ReadDir(name)
	if err != nil {
		return nil, err
	}
	dir := key(name)
	out := make([]fs.DirEntry, len(entries))
	for i, e := range entries {
		out[i] = &dirEntry{DirEntry: e, modTime: a.modTime(path.Join(dir, e.Name()))}
	}
	return out, nil
}

// ReadFile returns the content of the named entry.
func (a *FS) ReadFile(name string) ([]byte, error) {
	return a.mem.ReadFile(name)
}

// Exists reports whether the named entry exists.
func (a *FS) Exists(name string) (bool, error) {
	return a.mem.Exists(name)
}

// Create fails with core.ErrReadOnly.
func (a *FS) Create(name string) (core.File, error) {
	return nil, readOnly("create", name)
}

// OpenFile opens the named entry for reading. Any flag requesting write
// access fails with core.ErrReadOnly.
func (a *FS) OpenFile(name string, flag int, _ fs.FileMode) (core.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		return nil, readOnly("open", name)
	}
	f, err := a.mem.Open(name)
	if err != nil {
		return nil, err
	}
	return &file{File: f, fs: a, key: key(name)}, nil
}

// WriteFile fails with core.ErrReadOnly.
func (a *FS) WriteFile(name string, _ []byte, _ fs.FileMode) error {
	return readOnly("write", name)
}

// MkdirAll fails with core.ErrReadOnly.
func (a *FS) MkdirAll(p string, _ fs.FileMode) error {
	return readOnly("mkdir", p)
}

// Remove fails with core.ErrReadOnly.
func (a *FS) Remove(name string) error {
	return readOnly("remove", name)
}

func readOnly(op, name string) error {
	return &fs.PathError{Op: op, Path: name, Err: core.ErrReadOnly}
}

// file is an open archive entry. Writes are rejected.
type file struct {
	fs.File
	fs  *FS
	key string
}

func (f *file) Write([]byte) (int, error) {
	return 0, readOnly("write", f.key)
}

func (f *file) Name() string {
	return f.key
}

func (f *file) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &fileInfo{FileInfo: info, modTime: f.fs.modTime(f.key)}, nil
}

func (f *file) Seek(offset int64, whence int) (int64, error) {
	if s, ok := f.File.(io.Seeker); ok {
		return s.Seek(offset, whence)
	}
	return 0, core.ErrUnsupported
}

type fileInfo struct {
	fs.FileInfo
	modTime time.Time
}

func (i *fileInfo) ModTime() time.Time { return i.modTime }

type dirEntry struct {
	fs.DirEntry
	modTime time.Time
}

func (e *dirEntry) Info() (fs.FileInfo, error) {
	info, err := e.DirEntry.Info()
	if err != nil {
		return nil, err
	}
	return &fileInfo{FileInfo: info, modTime: e.modTime}, nil
}

var (
	_ core.FS      = (*FS)(nil)
	_ core.LstatFS = (*FS)(nil)
	_ core.File    = (*file)(nil)
)
