package vfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	verrors "github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/fs/archive"
	"github.com/jmgilman/go/vfs/fs/billy"
	"github.com/jmgilman/go/vfs/fs/core"
	"github.com/jmgilman/go/vfs/pathutil"
	"go.uber.org/zap"
)

// Priority selects where a new container enters the search path.
type Priority int

const (
	// Append adds the container after every existing one.
	Append Priority = iota
	// Prepend adds the container before every existing one.
	Prepend
)

// String returns the lowercase name of the priority.
func (p Priority) String() string {
	if p == Prepend {
		return "prepend"
	}
	return "append"
}

// Mount adds the directory or archive at p to the search path under
// mountPoint. An empty mountPoint mounts at the namespace root.
//
// A relative p is resolved against the real directory of the first
// container that holds it, then against the working directory. An archive
// that only exists inside another mounted archive is read from there.
// Mounting a container that is already in the search path succeeds without
// changing it.
func (f *FileSystem) Mount(p, mountPoint string, priority Priority) bool {
	if p == "" {
		f.logger.Error("Failed to mount container",
			zap.String("code", string(verrors.CodeInvalidInput)),
			zap.String("reason", "empty path"))
		return false
	}

	realPath := f.resolveMountPath(p)
	point := mountPointKey(mountPoint)

	f.mu.RLock()
	existing := findMount(f.mounts, realPath)
	f.mu.RUnlock()
	if existing >= 0 {
		f.logger.Debug("Container already mounted", zap.String("path", realPath))
		return true
	}

	driver, err := f.openContainer(realPath)
	if err != nil {
		f.logger.Error("Failed to mount container",
			zap.String("path", realPath),
			zap.String("mount_point", point),
			zap.String("code", string(verrors.CodeMountFailed)),
			zap.Error(err))
		return false
	}

	m := &mount{realPath: realPath, point: point, driver: driver}

	f.mu.Lock()
	if findMount(f.mounts, realPath) >= 0 {
		f.mu.Unlock()
		return true
	}
	if priority == Prepend {
		f.mounts = append([]*mount{m}, f.mounts...)
	} else {
		f.mounts = append(f.mounts, m)
	}
	count := len(f.mounts)
	f.mu.Unlock()

	f.metrics.mounts.Set(float64(count))
	f.logger.Info("Mounted container",
		zap.String("path", realPath),
		zap.String("mount_point", "/"+point),
		zap.Stringer("priority", priority),
		zap.Stringer("type", driver.Type()))
	return true
}

// Unmount removes the container at p from the search path.
func (f *FileSystem) Unmount(p string) bool {
	realPath := f.resolveMountPath(p)

	f.mu.Lock()
	i := findMount(f.mounts, realPath)
	if i < 0 {
		f.mu.Unlock()
		f.logger.Error("Failed to unmount container",
			zap.String("path", realPath),
			zap.String("code", string(verrors.CodeNotFound)))
		return false
	}
	f.mounts = append(f.mounts[:i], f.mounts[i+1:]...)
	count := len(f.mounts)
	f.mu.Unlock()

	f.metrics.mounts.Set(float64(count))
	f.logger.Info("Unmounted container", zap.String("path", realPath))
	return true
}

// GetMountPoint returns the mount point of the container at realPath with a
// trailing slash, "/" for the namespace root, or "" when the container is
// not mounted.
func (f *FileSystem) GetMountPoint(realPath string) string {
	key := nativeMountPath(realPath)

	f.mu.RLock()
	defer f.mu.RUnlock()
	i := findMount(f.mounts, key)
	if i < 0 {
		f.logger.Error("Container is not mounted",
			zap.String("path", key),
			zap.String("code", string(verrors.CodeNotFound)))
		return ""
	}
	if point := f.mounts[i].point; point != "" {
		return point + "/"
	}
	return "/"
}

// SearchPaths returns the real paths of the mounted containers in search
// order.
func (f *FileSystem) SearchPaths() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	paths := make([]string, len(f.mounts))
	for i, m := range f.mounts {
		paths[i] = m.realPath
	}
	return paths
}

// RealDir returns the real path of the first container holding vpath, or
// "" when no container does.
func (f *FileSystem) RealDir(vpath string) string {
	m, _, _, err := f.resolve(vpath)
	if err != nil || m == nil {
		return ""
	}
	return m.realPath
}

// SetWriteDirectory sets the directory that receives every write. An empty
// dir disables writing.
func (f *FileSystem) SetWriteDirectory(dir string) bool {
	if dir == "" {
		f.mu.Lock()
		f.writeDir, f.writer = "", nil
		f.mu.Unlock()
		return true
	}

	realPath := nativeMountPath(dir)
	info, err := os.Stat(realPath)
	if err == nil && !info.IsDir() {
		err = fmt.Errorf("%s is not a directory", realPath)
	}
	if err != nil {
		f.logger.Error("Failed to set write directory",
			zap.String("path", realPath),
			zap.String("code", string(verrors.CodeMountFailed)),
			zap.Error(err))
		return false
	}

	f.mu.Lock()
	f.writeDir, f.writer = realPath, billy.NewLocal(realPath)
	f.mu.Unlock()
	f.logger.Info("Set write directory", zap.String("path", realPath))
	return true
}

// GetWriteDirectory returns the write directory, or "" when none is set.
func (f *FileSystem) GetWriteDirectory() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.writeDir
}

func findMount(mounts []*mount, realPath string) int {
	for i, m := range mounts {
		if m.realPath == realPath {
			return i
		}
	}
	return -1
}

// nativeMountPath converts p to the native form used as a mount identity.
func nativeMountPath(p string) string {
	if trimmed := pathutil.RemoveTrailingSlash(p); trimmed != "" {
		return pathutil.NativePath(trimmed)
	}
	return pathutil.NativePath(pathutil.InternalPath(strings.TrimSpace(p)))
}

func (f *FileSystem) resolveMountPath(p string) string {
	if pathutil.IsAbsolute(p) {
		return nativeMountPath(p)
	}

	if m, rel, _, err := f.resolve(p); err == nil && m != nil {
		if rel == "" {
			return m.realPath
		}
		return nativeMountPath(pathutil.AddTrailingSlash(m.realPath) + rel)
	}

	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, pathutil.NativePath(pathutil.RemoveTrailingSlash(p)))
	}
	return nativeMountPath(p)
}

// openContainer picks the driver for realPath: a local directory, an archive
// file, or an archive nested inside a mounted archive.
func (f *FileSystem) openContainer(realPath string) (core.FS, error) {
	info, err := os.Stat(realPath)
	if err == nil {
		if info.IsDir() {
			return billy.NewLocal(realPath), nil
		}
		return archive.Open(realPath)
	}

	mounts, _ := f.snapshot()
	for _, m := range mounts {
		if m.driver.Type() != core.FSTypeArchive {
			continue
		}
		prefix := pathutil.AddTrailingSlash(m.realPath)
		inner := pathutil.InternalPath(realPath)
		if !strings.HasPrefix(inner, prefix) {
			continue
		}
		data, readErr := m.driver.ReadFile(inner[len(prefix):])
		if readErr != nil {
			continue
		}
		return archive.FromBytes(realPath, data)
	}
	return nil, err
}
