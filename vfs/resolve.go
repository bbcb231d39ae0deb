package vfs

import (
	"errors"
	"io/fs"
	"path"
	"strings"
	"time"

	verrors "github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/fs/core"
	"github.com/jmgilman/go/vfs/pathutil"
)

// mount is one entry of the search path.
type mount struct {
	realPath string
	// point is the mount point without leading or trailing slashes; empty
	// for the namespace root.
	point  string
	driver core.FS
}

// relative returns the path of key inside the container, or false when key
// is outside the mount point.
func (m *mount) relative(key string) (string, bool) {
	switch {
	case m.point == "":
		return key, true
	case key == m.point:
		return "", true
	case strings.HasPrefix(key, m.point+"/"):
		return key[len(m.point)+1:], true
	}
	return "", false
}

// virtualKey normalizes a namespace path to slash-separated components with
// no leading or trailing slash. Paths containing ".." are rejected.
func virtualKey(p string) (string, bool) {
	parts := strings.Split(pathutil.InternalPath(p), "/")
	kept := parts[:0]
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			return "", false
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, "/"), true
}

func mountPointKey(p string) string {
	key, _ := virtualKey(p)
	return key
}

// snapshot returns a copy of the search path and the symlink policy.
func (f *FileSystem) snapshot() ([]*mount, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]*mount(nil), f.mounts...), f.permitSymlinks
}

// resolve finds the first container holding p. The returned mount is nil
// when p only exists as an ancestor of a mount point.
func (f *FileSystem) resolve(p string) (*mount, string, fs.FileInfo, error) {
	key, ok := virtualKey(p)
	if !ok {
		return nil, "", nil, verrors.WithContext(
			verrors.New(verrors.CodeInvalidInput, "path escapes the namespace root"), "path", p)
	}

	mounts, permit := f.snapshot()
	for _, m := range mounts {
		rel, ok := m.relative(key)
		if !ok {
			continue
		}
		info, err := statIn(m.driver, rel, permit)
		if err == nil {
			return m, rel, info, nil
		}
	}

	if isMountAncestor(mounts, key) {
		return nil, "", virtualDir(key), nil
	}
	return nil, "", nil, verrors.WithContext(
		verrors.New(verrors.CodeNotFound, "path not found in any mounted container"), "path", p)
}

// statIn stats rel without following a final symbolic link. Links are
// reported as missing unless permit is set. The container root is always
// followed, so a mounted link to a directory stays a directory.
func statIn(driver core.FS, rel string, permit bool) (fs.FileInfo, error) {
	lfs, ok := driver.(core.LstatFS)
	if !ok || rel == "" {
		return driver.Stat(rel)
	}
	info, err := lfs.Lstat(rel)
	if err != nil {
		return nil, err
	}
	if info.Mode()&fs.ModeSymlink != 0 && !permit {
		return nil, fs.ErrNotExist
	}
	return info, nil
}

// isMountAncestor reports whether key is a strict ancestor of some mount
// point. The root counts once anything is mounted.
func isMountAncestor(mounts []*mount, key string) bool {
	for _, m := range mounts {
		if key == "" || strings.HasPrefix(m.point, key+"/") {
			return true
		}
	}
	return false
}

// readDirNames lists the names directly inside the namespace directory p,
// merged across containers in search order. Names from earlier containers
// shadow later ones. Directories implied by deeper mount points are
// included.
func (f *FileSystem) readDirNames(p string) ([]string, error) {
	key, ok := virtualKey(p)
	if !ok {
		return nil, fs.ErrInvalid
	}

	mounts, _ := f.snapshot()
	var names []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	found := false
	for _, m := range mounts {
		if rel, ok := m.relative(key); ok {
			entries, err := m.driver.ReadDir(rel)
			if err != nil {
				continue
			}
			found = true
			for _, e := range entries {
				add(e.Name())
			}
			continue
		}

		rest := m.point
		if key != "" {
			if !strings.HasPrefix(m.point, key+"/") {
				continue
			}
			rest = m.point[len(key)+1:]
		}
		found = true
		add(strings.SplitN(rest, "/", 2)[0])
	}

	if !found {
		return nil, fs.ErrNotExist
	}
	return names, nil
}

// virtualDirInfo describes a directory that only exists because a container
// is mounted beneath it.
type virtualDirInfo struct {
	name string
}

func virtualDir(key string) fs.FileInfo {
	name := path.Base("/" + key)
	if key == "" {
		name = "/"
	}
	return virtualDirInfo{name: name}
}

func (v virtualDirInfo) Name() string       { return v.name }
func (v virtualDirInfo) Size() int64        { return 0 }
func (v virtualDirInfo) Mode() fs.FileMode  { return fs.ModeDir | 0o555 }
func (v virtualDirInfo) ModTime() time.Time { return time.Time{} }
func (v virtualDirInfo) IsDir() bool        { return true }
func (v virtualDirInfo) Sys() any           { return nil }

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || verrors.HasCode(err, verrors.CodeNotFound)
}
