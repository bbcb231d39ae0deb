package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/vfs/fs/core"
)

// TestManageFS tests Remove.
func TestManageFS(t *testing.T, filesystem core.FS, config Config) {
	if config.ReadOnly {
		t.Run("ReadOnly", func(t *testing.T) {
			config.skip(t, "ManageFS/ReadOnly")
			if err := filesystem.Remove("config.xml"); !errors.Is(err, core.ErrReadOnly) {
				t.Errorf("Remove(%q): got error %v, want core.ErrReadOnly", "config.xml", err)
			}
			if exists, _ := filesystem.Exists("config.xml"); !exists {
				t.Errorf("Exists(%q): got false after rejected Remove", "config.xml")
			}
		})
		return
	}

	run := func(name string, fn func(t *testing.T)) {
		t.Run(name, func(t *testing.T) {
			config.skip(t, "ManageFS/"+name)
			fn(t)
		})
	}

	run("RemoveFile", func(t *testing.T) { testManageFSRemoveFile(t, filesystem) })
	run("RemoveEmptyDir", func(t *testing.T) { testManageFSRemoveEmptyDir(t, filesystem) })
	run("RemoveNonEmptyDir", func(t *testing.T) { testManageFSRemoveNonEmptyDir(t, filesystem) })
	run("RemoveNotExist", func(t *testing.T) { testManageFSRemoveNotExist(t, filesystem) })
}

func testManageFSRemoveFile(t *testing.T, filesystem core.FS) {
	if err := filesystem.Remove("data/readme.txt"); err != nil {
		t.Fatalf("Remove(%q): got error %v, want nil", "data/readme.txt", err)
	}
	_, err := filesystem.Stat("data/readme.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(%q) after Remove: got error %v, want fs.ErrNotExist", "data/readme.txt", err)
	}
}

func testManageFSRemoveEmptyDir(t *testing.T, filesystem core.FS) {
	if err := filesystem.MkdirAll("emptydir", 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): setup failed: %v", "emptydir", err)
	}
	if err := filesystem.Remove("emptydir"); err != nil {
		t.Fatalf("Remove(%q): got error %v, want nil", "emptydir", err)
	}
	if exists, _ := filesystem.Exists("emptydir"); exists {
		t.Errorf("Exists(%q) after Remove: got true", "emptydir")
	}
}

func testManageFSRemoveNonEmptyDir(t *testing.T, filesystem core.FS) {
	if err := filesystem.Remove("data/textures"); err == nil {
		t.Errorf("Remove(%q) on non-empty directory: got nil, want error", "data/textures")
	}
	if exists, _ := filesystem.Exists("data/textures/stone.png"); !exists {
		t.Errorf("Exists(%q): got false after failed Remove", "data/textures/stone.png")
	}
}

func testManageFSRemoveNotExist(t *testing.T, filesystem core.FS) {
	err := filesystem.Remove("nonexistent")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Remove(%q): got error %v, want fs.ErrNotExist", "nonexistent", err)
	}
}
