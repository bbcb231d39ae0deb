package fstest

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/jmgilman/go/vfs/fs/core"
)

// TestWalkFS checks that fs.WalkDir over the container visits the Fixture
// tree in lexical pre-order.
func TestWalkFS(t *testing.T, filesystem core.FS, config Config) {
	run := func(name string, fn func(t *testing.T)) {
		t.Run(name, func(t *testing.T) {
			config.skip(t, "WalkFS/"+name)
			fn(t)
		})
	}

	run("Tree", func(t *testing.T) { testWalkFSTree(t, filesystem) })
	run("Subtree", func(t *testing.T) { testWalkFSSubtree(t, filesystem) })
	run("SkipDir", func(t *testing.T) { testWalkFSSkipDir(t, filesystem) })
	run("Missing", func(t *testing.T) { testWalkFSMissing(t, filesystem) })
}

func walk(t *testing.T, filesystem core.FS, root string, skip string) []string {
	t.Helper()
	var visited []string
	err := fs.WalkDir(filesystem, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		visited = append(visited, p)
		if d.IsDir() && p == skip {
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir(%q): got error %v, want nil", root, err)
	}
	return visited
}

func testWalkFSTree(t *testing.T, filesystem core.FS) {
	got := walk(t, filesystem, ".", "")
	want := []string{
		".",
		"config.xml",
		"data",
		"data/.hidden",
		"data/readme.txt",
		"data/textures",
		"data/textures/grass.png",
		"data/textures/stone.png",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("WalkDir(.): got %v, want %v", got, want)
	}
}

func testWalkFSSubtree(t *testing.T, filesystem core.FS) {
	got := walk(t, filesystem, "data/textures", "")
	want := []string{"data/textures", "data/textures/grass.png", "data/textures/stone.png"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("WalkDir(data/textures): got %v, want %v", got, want)
	}
}

func testWalkFSSkipDir(t *testing.T, filesystem core.FS) {
	got := walk(t, filesystem, ".", "data")
	want := []string{".", "config.xml", "data"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("WalkDir(.) skipping data: got %v, want %v", got, want)
	}
}

func testWalkFSMissing(t *testing.T, filesystem core.FS) {
	err := fs.WalkDir(filesystem, "nonexistent", func(_ string, _ fs.DirEntry, err error) error {
		return err
	})
	if err == nil {
		t.Error("WalkDir(nonexistent): got nil error, want fs.ErrNotExist")
	}
}
