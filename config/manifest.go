package config

import (
	"os"
	"strings"

	"github.com/jmgilman/go/vfs/errors"
	"gopkg.in/yaml.v3"
)

// Manifest describes containers to mount at startup.
//
//	mounts:
//	  - path: /games/mygame/Data
//	  - path: /games/mygame/Patch.zip
//	    priority: prepend
//	  - path: /games/mygame/Music.tar.zst
//	    mount_point: music
//	allowed_paths:
//	  - /games/mygame
//	write_dir: /home/me/.local/share/mygame
type Manifest struct {
	Mounts       []MountSpec `yaml:"mounts"`
	AllowedPaths []string    `yaml:"allowed_paths"`
	WriteDir     string      `yaml:"write_dir"`
}

// MountSpec is one mount entry. Priority is "append" (the default) or
// "prepend".
type MountSpec struct {
	Path       string `yaml:"path"`
	MountPoint string `yaml:"mount_point"`
	Priority   string `yaml:"priority"`
}

// Prepend reports whether the mount goes to the front of the search order.
func (m MountSpec) Prepend() bool {
	return strings.EqualFold(m.Priority, "prepend")
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithContext(
			errors.Wrap(err, errors.CodeNotFound, "failed to read manifest"),
			"path", path)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, errors.WithContext(err, "path", path)
	}
	return m, nil
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to parse manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every mount has a path and a known priority.
func (m *Manifest) Validate() error {
	for i, mount := range m.Mounts {
		if strings.TrimSpace(mount.Path) == "" {
			return errors.Newf(errors.CodeInvalidInput, "mount %d: path is required", i)
		}
		switch strings.ToLower(mount.Priority) {
		case "", "append", "prepend":
		default:
			return errors.Newf(errors.CodeInvalidInput,
				"mount %d: unknown priority %q (want append or prepend)", i, mount.Priority)
		}
	}
	return nil
}
