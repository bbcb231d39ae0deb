package vfs

import (
	"github.com/jmgilman/go/vfs/config"
	verrors "github.com/jmgilman/go/vfs/errors"
)

// NewFromConfig creates a FileSystem from cfg. Allowed paths are registered
// first, then the identity is loaded, then the manifest is applied, and
// finally WriteDir overrides any earlier write directory. opts are applied
// after the settings taken from cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) (*FileSystem, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	base := []Option{
		WithPermitSymlinks(cfg.PermitSymlinks),
		WithAsyncWorkers(cfg.AsyncWorkers),
		WithConsoleCommands(cfg.ConsoleCommands),
	}
	f := New(append(base, opts...)...)

	for _, p := range cfg.AllowedPaths {
		f.RegisterPath(p)
	}

	if cfg.Organization != "" || cfg.Application != "" {
		if !f.LoadIdentity(cfg.Organization, cfg.Application) {
			return nil, verrors.Newf(verrors.CodeMountFailed,
				"failed to load identity %s/%s", cfg.Organization, cfg.Application)
		}
	}

	if cfg.Manifest != "" {
		m, err := config.LoadManifest(cfg.Manifest)
		if err != nil {
			return nil, err
		}
		if err := f.ApplyManifest(m); err != nil {
			return nil, err
		}
	}

	if cfg.WriteDir != "" && !f.SetWriteDirectory(cfg.WriteDir) {
		return nil, verrors.WithContext(
			verrors.New(verrors.CodeMountFailed, "failed to set write directory"),
			"path", cfg.WriteDir)
	}
	return f, nil
}

// ApplyManifest registers the manifest's allowed paths, mounts its
// containers in order and sets its write directory. It stops at the first
// mount that fails.
func (f *FileSystem) ApplyManifest(m *config.Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}

	for _, p := range m.AllowedPaths {
		f.RegisterPath(p)
	}

	for _, spec := range m.Mounts {
		priority := Append
		if spec.Prepend() {
			priority = Prepend
		}
		if !f.Mount(spec.Path, spec.MountPoint, priority) {
			return verrors.WithContext(
				verrors.New(verrors.CodeMountFailed, "failed to mount container"),
				"path", spec.Path)
		}
	}

	if m.WriteDir != "" && !f.SetWriteDirectory(m.WriteDir) {
		return verrors.WithContext(
			verrors.New(verrors.CodeMountFailed, "failed to set write directory"),
			"path", m.WriteDir)
	}
	return nil
}
