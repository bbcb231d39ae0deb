// Package fstest provides a conformance test suite for container drivers
// implementing core.FS.
//
// Driver packages import it from their tests and hand it a factory that
// returns a container holding the requested files:
//
//	func TestMemoryFS(t *testing.T) {
//	    fstest.TestSuite(t, func(t *testing.T, files map[string][]byte) core.FS {
//	        fs := billy.NewMemory()
//	        fstest.Seed(t, fs, files)
//	        return fs
//	    }, fstest.Config{})
//	}
//
// Read-only drivers such as archives build the container from files directly
// and set Config.ReadOnly, which switches the write and manage groups to
// asserting core.ErrReadOnly.
package fstest

import (
	"path"
	"sort"
	"testing"

	"github.com/jmgilman/go/vfs/fs/core"
)

// Factory returns a fresh container holding exactly the given files.
// Keys are slash-separated names relative to the container root.
type Factory func(t *testing.T, files map[string][]byte) core.FS

// Config describes driver behavior the suite adapts to.
type Config struct {
	// ReadOnly indicates every write and remove must fail with
	// core.ErrReadOnly.
	ReadOnly bool

	// SkipTests lists group or subtest names to skip, for example
	// "ReadFS/ModTime".
	SkipTests []string
}

func (c Config) skip(t *testing.T, name string) {
	t.Helper()
	for _, s := range c.SkipTests {
		if s == name {
			t.Skip("Skipped by driver configuration")
		}
	}
}

// Fixture is the tree the read tests run against.
func Fixture() map[string][]byte {
	return map[string][]byte{
		"config.xml":              []byte("<config/>"),
		"data/readme.txt":         []byte("read me"),
		"data/textures/stone.png": []byte("\x89PNG stone"),
		"data/textures/grass.png": []byte("\x89PNG grass"),
		"data/.hidden":            []byte("secret"),
	}
}

// Seed writes files into a writable container, creating parent directories.
func Seed(t *testing.T, filesystem core.FS, files map[string][]byte) {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if dir := path.Dir(name); dir != "." {
			if err := filesystem.MkdirAll(dir, 0o755); err != nil {
				t.Fatalf("MkdirAll(%q): setup failed: %v", dir, err)
			}
		}
		if err := filesystem.WriteFile(name, files[name], 0o644); err != nil {
			t.Fatalf("WriteFile(%q): setup failed: %v", name, err)
		}
	}
}

// TestSuite runs every conformance group. Each group gets its own container.
func TestSuite(t *testing.T, newFS Factory, config Config) {
	t.Run("ReadFS", func(t *testing.T) {
		config.skip(t, "ReadFS")
		TestReadFS(t, newFS(t, Fixture()), config)
	})

	t.Run("WalkFS", func(t *testing.T) {
		config.skip(t, "WalkFS")
		TestWalkFS(t, newFS(t, Fixture()), config)
	})

	t.Run("WriteFS", func(t *testing.T) {
		config.skip(t, "WriteFS")
		TestWriteFS(t, newFS(t, Fixture()), config)
	})

	t.Run("ManageFS", func(t *testing.T) {
		config.skip(t, "ManageFS")
		TestManageFS(t, newFS(t, Fixture()), config)
	})
}
