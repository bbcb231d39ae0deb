package vfs

import (
	"os"
	"path/filepath"
	"runtime"

	verrors "github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
	"go.uber.org/zap"
)

// TemporaryDir returns the directory for temporary files with a trailing
// slash. On POSIX systems it is $TMPDIR, falling back to /tmp/.
func TemporaryDir() string {
	if runtime.GOOS == "windows" {
		return pathutil.AddTrailingSlash(os.TempDir())
	}
	if dir := os.Getenv("TMPDIR"); dir != "" {
		return pathutil.AddTrailingSlash(dir)
	}
	return "/tmp/"
}

// ProgramDir returns the directory of the running executable with a
// trailing slash, or "" when it cannot be determined.
func ProgramDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return pathutil.AddTrailingSlash(filepath.Dir(exe))
}

// CurrentDir returns the working directory with a trailing slash, or ""
// when it cannot be determined.
func CurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return pathutil.AddTrailingSlash(dir)
}

// AppPreferencesDir returns the per-user preferences directory for org and
// app with a trailing slash, creating it if needed. Returns "" when the
// directory cannot be resolved or created.
func (f *FileSystem) AppPreferencesDir(org, app string) string {
	base, err := os.UserConfigDir()
	if err == nil {
		dir := filepath.Join(base, org, app)
		if err = os.MkdirAll(dir, dirPerm); err == nil {
			return pathutil.AddTrailingSlash(dir)
		}
	}
	f.logger.Warn("Could not get application preferences directory",
		zap.String("organization", org),
		zap.String("application", app),
		zap.Error(err))
	return ""
}

// LoadIdentity mounts the preferences directory of org and app at the
// namespace root, ahead of every other container, and makes it the write
// directory.
func (f *FileSystem) LoadIdentity(org, app string) bool {
	dir := f.AppPreferencesDir(org, app)
	if dir == "" {
		f.logger.Error("Failed to load identity",
			zap.String("organization", org),
			zap.String("application", app),
			zap.String("code", string(verrors.CodeNotFound)))
		return false
	}
	if !f.Mount(dir, "", Prepend) {
		return false
	}
	return f.SetWriteDirectory(dir)
}
