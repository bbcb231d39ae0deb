package core

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	ErrNotExist = fs.ErrNotExist

	// ErrReadOnly is returned by write operations on read-only containers.
	ErrReadOnly = errors.New("container is read-only")

	// ErrUnsupported is returned when an operation is not supported by the driver.
	ErrUnsupported = errors.New("operation not supported")
)
