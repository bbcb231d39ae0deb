package vfs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/jmgilman/go/vfs/pathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemporaryDir(t *testing.T) {
	skipOnWindows(t)

	t.Setenv("TMPDIR", "/var/scratch")
	assert.Equal(t, "/var/scratch/", TemporaryDir())

	t.Setenv("TMPDIR", "")
	assert.Equal(t, "/tmp/", TemporaryDir())
}

func TestCurrentDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, pathutil.AddTrailingSlash(cwd), CurrentDir())
}

func TestProgramDir(t *testing.T) {
	dir := ProgramDir()
	assert.NotEmpty(t, dir)
	assert.True(t, strings.HasSuffix(dir, "/"))
}

func usePreferencesHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("preferences location is only redirected on linux")
	}
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	return home
}

func TestAppPreferencesDir(t *testing.T) {
	home := usePreferencesHome(t)
	f, _ := newTestFS(t)

	dir := f.AppPreferencesDir("acme", "game")
	assert.Equal(t, home+"/acme/game/", dir)
	assert.DirExists(t, filepath.Join(home, "acme", "game"))
}

func TestAppPreferencesDir_Failure(t *testing.T) {
	home := usePreferencesHome(t)
	blocker := filepath.Join(home, "acme")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	f, logs := newTestFS(t)

	assert.Equal(t, "", f.AppPreferencesDir("acme", "game"))
	assert.Equal(t, 1, logs.FilterMessage("Could not get application preferences directory").Len())
	assert.False(t, f.LoadIdentity("acme", "game"))
	assert.Empty(t, f.SearchPaths())
}

func TestLoadIdentity(t *testing.T) {
	home := usePreferencesHome(t)
	base := writeTree(t, t.TempDir(), map[string]string{"config.xml": "default"})
	f, _ := newTestFS(t)
	require.True(t, f.Mount(base, "", Append))

	require.True(t, f.LoadIdentity("acme", "game"))

	prefs := filepath.Join(home, "acme", "game")
	assert.Equal(t, []string{prefs, base}, f.SearchPaths())
	assert.Equal(t, prefs, f.GetWriteDirectory())

	require.NoError(t, f.WriteFile("config.xml", []byte("user")))
	assert.Equal(t, "user", readString(t, f, "config.xml"), "user preferences shadow defaults")
}

// chdir changes the working directory for the duration of the test,
// restoring the previous one on cleanup (equivalent to testing.T.Chdir,
// which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}
