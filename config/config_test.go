package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/vfs/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"VFS_ALLOWED_PATHS", "VFS_WRITE_DIR", "VFS_ORGANIZATION", "VFS_APPLICATION",
		"VFS_PERMIT_SYMLINKS", "VFS_ASYNC_WORKERS", "VFS_CONSOLE_COMMANDS",
		"VFS_MANIFEST", "VFS_LOG_LEVEL", "VFS_LOG_DEV", "LOG_LEVEL", "LOG_DEV",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("VFS_ALLOWED_PATHS", "/games/a,/games/b")
	t.Setenv("VFS_WRITE_DIR", "/tmp/saves")
	t.Setenv("VFS_ORGANIZATION", "acme")
	t.Setenv("VFS_APPLICATION", "rocket")
	t.Setenv("VFS_PERMIT_SYMLINKS", "true")
	t.Setenv("VFS_ASYNC_WORKERS", "8")
	t.Setenv("VFS_CONSOLE_COMMANDS", "false")
	t.Setenv("VFS_LOG_LEVEL", "debug")
	t.Setenv("VFS_LOG_DEV", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/games/a", "/games/b"}, cfg.AllowedPaths)
	assert.Equal(t, "/tmp/saves", cfg.WriteDir)
	assert.Equal(t, "acme", cfg.Organization)
	assert.Equal(t, "rocket", cfg.Application)
	assert.True(t, cfg.PermitSymlinks)
	assert.Equal(t, 8, cfg.AsyncWorkers)
	assert.False(t, cfg.ConsoleCommands)

	lc := cfg.Logging()
	assert.Equal(t, "debug", lc.Level)
	assert.True(t, lc.Development)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("VFS_ASYNC_WORKERS", "many")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, Default(), LoadOrDefault())
}

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(`
mounts:
  - path: /games/mygame/Data
  - path: Patch.zip
    priority: Prepend
  - path: /games/mygame/Music.tar.zst
    mount_point: music
allowed_paths: [/games/mygame]
write_dir: /home/me/saves
`))
	require.NoError(t, err)
	require.Len(t, m.Mounts, 3)
	assert.False(t, m.Mounts[0].Prepend())
	assert.True(t, m.Mounts[1].Prepend())
	assert.Equal(t, "music", m.Mounts[2].MountPoint)
	assert.Equal(t, []string{"/games/mygame"}, m.AllowedPaths)
	assert.Equal(t, "/home/me/saves", m.WriteDir)
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":         "mounts: [",
		"missing path":     "mounts:\n  - mount_point: x\n",
		"unknown priority": "mounts:\n  - path: /a\n    priority: first\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseManifest([]byte(doc))
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mounts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mounts:\n  - path: /data\n"), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "/data", m.Mounts[0].Path)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
