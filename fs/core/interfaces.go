package core

import (
	"io"
	"io/fs"
)

// FSType represents the kind of container behind a driver.
type FSType int

const (
	// FSTypeUnknown indicates the container type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a real directory on disk.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory tree.
	FSTypeMemory
	// FSTypeArchive indicates a mounted archive file.
	FSTypeArchive
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// FS is the container driver interface.
// FS embeds fs.FS so drivers work with the io/fs helpers.
type FS interface {
	fs.FS
	ReadFS
	WriteFS
	ManageFS

	// Type returns the kind of container.
	Type() FSType

	// Root returns the real path the container was opened from, or an empty
	// string for containers with no backing path.
	Root() string

	// ReadOnly reports whether every write operation fails with ErrReadOnly.
	ReadOnly() bool
}

// ReadFS defines read operations. All drivers support them.
type ReadFS interface {
	// Open opens the named file for reading.
	Open(name string) (fs.File, error)

	// Stat returns file metadata, following symbolic links.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir returns the entries of a directory in driver order.
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile reads the whole named file.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether the named file or directory exists.
	// A false result with a non-nil error means existence could not be
	// determined.
	Exists(name string) (bool, error)
}

// WriteFS defines write operations. Read-only drivers return ErrReadOnly.
type WriteFS interface {
	// Create creates or truncates the named file for writing.
	Create(name string) (File, error)

	// OpenFile opens a file with the given flags (os.O_*) and permissions.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// WriteFile writes data to the named file, creating or truncating it.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory along with any missing parents.
	// It does nothing if the directory already exists.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines removal. Read-only drivers return ErrReadOnly.
type ManageFS interface {
	// Remove removes the named file or empty directory.
	Remove(name string) error
}

// LstatFS is implemented by drivers that can describe symbolic links.
//
//	if lfs, ok := driver.(core.LstatFS); ok {
//	    info, err := lfs.Lstat(name)
//	}
type LstatFS interface {
	// Lstat returns file info without following symbolic links.
	Lstat(name string) (fs.FileInfo, error)
}

// File represents an open file handle. It extends fs.File with Write.
type File interface {
	fs.File
	io.Writer

	// Name returns the name of the file as provided to Open or Create.
	Name() string
}
