package vfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/vfs/config"
	verrors "github.com/jmgilman/go/vfs/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyManifest(t *testing.T) {
	base := writeTree(t, t.TempDir(), map[string]string{"config.xml": "base"})
	patch := writeZip(t, filepath.Join(t.TempDir(), "patch.zip"), map[string]string{"config.xml": "patch"})
	music := writeTree(t, t.TempDir(), map[string]string{"theme.ogg": "ogg"})
	write := t.TempDir()

	m := &config.Manifest{
		Mounts: []config.MountSpec{
			{Path: base},
			{Path: patch, Priority: "prepend"},
			{Path: music, MountPoint: "music"},
		},
		WriteDir: write,
	}
	f, _ := newTestFS(t)

	require.NoError(t, f.ApplyManifest(m))
	assert.Equal(t, []string{patch, base, music}, f.SearchPaths())
	assert.Equal(t, "music/", f.GetMountPoint(music))
	assert.Equal(t, write, f.GetWriteDirectory())
	assert.Equal(t, "patch", readString(t, f, "config.xml"))
}

func TestApplyManifest_StopsAtFailure(t *testing.T) {
	good := t.TempDir()
	m := &config.Manifest{
		Mounts: []config.MountSpec{
			{Path: filepath.Join(t.TempDir(), "missing")},
			{Path: good},
		},
	}
	f, _ := newTestFS(t)

	err := f.ApplyManifest(m)
	assert.True(t, verrors.HasCode(err, verrors.CodeMountFailed), "got %v", err)
	assert.Empty(t, f.SearchPaths())
}

func TestApplyManifest_Invalid(t *testing.T) {
	f, _ := newTestFS(t)
	err := f.ApplyManifest(&config.Manifest{Mounts: []config.MountSpec{{Path: "x", Priority: "middle"}}})
	assert.True(t, verrors.HasCode(err, verrors.CodeInvalidInput), "got %v", err)
}

func TestNewFromConfig(t *testing.T) {
	root := t.TempDir()
	data := writeTree(t, filepath.Join(root, "data"), map[string]string{"config.xml": "c"})
	write := filepath.Join(root, "write")
	require.NoError(t, os.MkdirAll(write, 0o755))

	manifest := filepath.Join(root, "mounts.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("mounts:\n  - path: "+data+"\n"), 0o644))

	cfg := config.Default()
	cfg.AllowedPaths = []string{root}
	cfg.Manifest = manifest
	cfg.WriteDir = write
	cfg.PermitSymlinks = true
	cfg.ConsoleCommands = false

	f, err := NewFromConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{data}, f.SearchPaths())
	assert.Equal(t, write, f.GetWriteDirectory())
	assert.True(t, f.Guard().Restricted())
	assert.True(t, f.CheckAccess(data+"/config.xml"))
	assert.False(t, f.ExecuteConsoleCommands())
	assert.True(t, f.permitSymlinks)
}

func TestNewFromConfig_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Manifest = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := NewFromConfig(cfg)
	assert.True(t, verrors.HasCode(err, verrors.CodeNotFound), "got %v", err)

	cfg = config.Default()
	cfg.WriteDir = filepath.Join(t.TempDir(), "missing")
	_, err = NewFromConfig(cfg)
	assert.True(t, verrors.HasCode(err, verrors.CodeMountFailed), "got %v", err)
}

func TestNewFromConfig_Defaults(t *testing.T) {
	f, err := NewFromConfig(nil)
	require.NoError(t, err)
	assert.False(t, f.Guard().Restricted())
	assert.True(t, f.ExecuteConsoleCommands())
	assert.Empty(t, f.SearchPaths())
}
