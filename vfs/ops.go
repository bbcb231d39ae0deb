package vfs

import (
	stderrors "errors"
	"io"
	"io/fs"

	verrors "github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/fs/core"
	"github.com/jmgilman/go/vfs/pathutil"
	"go.uber.org/zap"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

func accessDenied(p string) error {
	return verrors.WithContext(verrors.New(verrors.CodeAccessDenied, "access denied"), "path", p)
}

// FileExists reports whether p is a regular file or a visible symbolic link.
func (f *FileSystem) FileExists(p string) bool {
	if !f.allow("stat", pathutil.Path(p)) {
		return false
	}
	_, _, info, err := f.resolve(p)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() || info.Mode()&fs.ModeSymlink != 0
}

// DirExists reports whether p is a directory or a visible symbolic link.
// Ancestors of mount points count as directories.
func (f *FileSystem) DirExists(p string) bool {
	if !f.allow("stat", p) {
		return false
	}
	_, _, info, err := f.resolve(pathutil.RemoveTrailingSlash(p))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode()&fs.ModeSymlink != 0
}

// GetLastModifiedTime returns the modification time of p in Unix seconds,
// or 0 when p is empty, denied, missing or carries no timestamp.
func (f *FileSystem) GetLastModifiedTime(p string) int64 {
	if p == "" || !f.allow("stat", p) {
		return 0
	}
	_, _, info, err := f.resolve(p)
	if err != nil || info.ModTime().IsZero() {
		return 0
	}
	return info.ModTime().Unix()
}

// Stat returns metadata for p from the first container holding it.
func (f *FileSystem) Stat(p string) (fs.FileInfo, error) {
	if !f.allow("stat", pathutil.Path(p)) {
		return nil, accessDenied(p)
	}
	_, _, info, err := f.resolve(p)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Open opens the file p for reading from the first container holding it.
func (f *FileSystem) Open(p string) (fs.File, error) {
	if !f.allow("open", pathutil.Path(p)) {
		return nil, accessDenied(p)
	}
	file, _, err := f.openRead(p)
	return file, err
}

// ReadFile returns the content of the file p.
func (f *FileSystem) ReadFile(p string) ([]byte, error) {
	if !f.allow("open", pathutil.Path(p)) {
		return nil, accessDenied(p)
	}
	file, _, err := f.openRead(p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, verrors.WithContext(verrors.Wrap(err, verrors.CodeInternal, "failed to read file"), "path", p)
	}
	return data, nil
}

// Create creates or truncates p in the write directory.
func (f *FileSystem) Create(p string) (core.File, error) {
	if !f.allow("create", pathutil.Path(p)) {
		return nil, accessDenied(p)
	}
	return f.create(p)
}

// WriteFile writes data to p in the write directory, replacing any
// existing content.
func (f *FileSystem) WriteFile(p string, data []byte) error {
	if !f.allow("create", pathutil.Path(p)) {
		return accessDenied(p)
	}
	w, key, err := f.writeTarget(p, true)
	if err != nil {
		return err
	}
	if err := w.WriteFile(key, data, filePerm); err != nil {
		return verrors.WithContext(verrors.Wrap(err, verrors.CodeInternal, "failed to write file"), "path", p)
	}
	return nil
}

// CreateDir creates p in the write directory. Missing parents are created
// first; the first failure aborts.
func (f *FileSystem) CreateDir(p string) bool {
	if !f.allow("mkdir", p) {
		return false
	}

	parent := pathutil.ParentPath(p)
	if len(parent) > 1 && !f.DirExists(parent) {
		if !f.CreateDir(parent) {
			return false
		}
	}

	w, key, err := f.writeTarget(pathutil.RemoveTrailingSlash(p), false)
	if err == nil {
		err = w.MkdirAll(key, dirPerm)
	}
	if err != nil {
		f.logError("Failed to create directory", p, err)
		return false
	}
	return true
}

// Copy copies the file src to dest in the write directory. It fails unless
// the whole file is both read and written.
func (f *FileSystem) Copy(src, dest string) bool {
	if !f.allow("copy", pathutil.Path(src)) || !f.allow("copy", pathutil.Path(dest)) {
		return false
	}

	in, info, err := f.openRead(src)
	if err != nil {
		f.logError("Failed to open copy source", src, err)
		return false
	}
	size := info.Size()
	buf := make([]byte, size)
	read, readErr := io.ReadFull(in, buf)
	_ = in.Close()

	out, err := f.create(dest)
	if err != nil {
		f.logError("Failed to open copy destination", dest, err)
		return false
	}
	written, writeErr := out.Write(buf)
	closeErr := out.Close()

	if int64(read) != size || int64(written) != size || closeErr != nil {
		cause := stderrors.Join(readErr, writeErr, closeErr)
		if cause == nil {
			cause = io.ErrShortWrite
		}
		err := verrors.Wrap(cause, verrors.CodePartialIO, "copy did not transfer the whole file")
		f.logger.Error("Failed to copy file",
			zap.String("src", src),
			zap.String("dest", dest),
			zap.Int64("size", size),
			zap.Int("read", read),
			zap.Int("written", written),
			zap.String("code", string(verrors.GetCode(err))),
			zap.Bool("retryable", verrors.IsRetryable(err)),
			zap.Error(err))
		return false
	}
	return true
}

// Rename copies src to dest and then deletes src. It is not atomic: when
// the delete fails both files remain and Rename returns false.
func (f *FileSystem) Rename(src, dest string) bool {
	if !f.allow("rename", pathutil.Path(src)) || !f.allow("rename", pathutil.Path(dest)) {
		return false
	}
	if !f.Copy(src, dest) {
		return false
	}
	return f.Delete(src)
}

// Delete removes the file or empty directory p from the write directory.
func (f *FileSystem) Delete(p string) bool {
	if !f.allow("delete", pathutil.Path(p)) {
		return false
	}

	w, key, err := f.writeTarget(p, true)
	if err == nil {
		err = w.Remove(key)
	}
	if err != nil {
		f.logError("Failed to delete", p, err)
		return false
	}
	return true
}

func (f *FileSystem) openRead(p string) (fs.File, fs.FileInfo, error) {
	m, rel, info, err := f.resolve(p)
	if err != nil {
		return nil, nil, err
	}
	if m == nil || info.IsDir() {
		return nil, nil, verrors.WithContext(verrors.New(verrors.CodeInvalidInput, "path is a directory"), "path", p)
	}
	file, err := m.driver.Open(rel)
	if err != nil {
		return nil, nil, verrors.WithContext(verrors.Wrap(err, verrors.CodeInternal, "failed to open file"), "path", p)
	}
	return file, info, nil
}

func (f *FileSystem) create(p string) (core.File, error) {
	w, key, err := f.writeTarget(p, true)
	if err != nil {
		return nil, err
	}
	file, err := w.Create(key)
	if err != nil {
		return nil, verrors.WithContext(verrors.Wrap(err, verrors.CodeInternal, "failed to create file"), "path", p)
	}
	return file, nil
}

// writeTarget returns the write directory driver and the path of p inside
// it. With checkShadow set, p must not currently resolve into a read-only
// container.
func (f *FileSystem) writeTarget(p string, checkShadow bool) (core.FS, string, error) {
	f.mu.RLock()
	w := f.writer
	f.mu.RUnlock()
	if w == nil {
		return nil, "", verrors.WithContext(verrors.New(verrors.CodeReadOnly, "no write directory is set"), "path", p)
	}

	key, ok := virtualKey(p)
	if !ok || key == "" {
		return nil, "", verrors.WithContext(verrors.New(verrors.CodeInvalidInput, "invalid write path"), "path", p)
	}

	if checkShadow {
		if m, _, _, err := f.resolve(p); err == nil && m != nil && m.driver.ReadOnly() {
			roErr := verrors.New(verrors.CodeReadOnly, "path resolves into a read-only container")
			roErr = verrors.WithContext(roErr, "path", p)
			return nil, "", verrors.WithContext(roErr, "container", m.realPath)
		}
	}
	return w, key, nil
}

func (f *FileSystem) logError(msg, p string, err error) {
	f.logger.Error(msg,
		zap.String("path", p),
		zap.String("code", string(verrors.GetCode(err))),
		zap.Error(err))
}
