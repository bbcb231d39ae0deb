package fstest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/vfs/fs/core"
)

// TestReadFS tests Open, Stat, ReadDir, ReadFile and Exists against a
// container populated with Fixture.
func TestReadFS(t *testing.T, filesystem core.FS, config Config) {
	run := func(name string, fn func(t *testing.T)) {
		t.Run(name, func(t *testing.T) {
			config.skip(t, "ReadFS/"+name)
			fn(t)
		})
	}

	run("Open", func(t *testing.T) { testReadFSOpen(t, filesystem) })
	run("OpenNotExist", func(t *testing.T) { testReadFSOpenNotExist(t, filesystem) })
	run("StatFile", func(t *testing.T) { testReadFSStatFile(t, filesystem) })
	run("StatDir", func(t *testing.T) { testReadFSStatDir(t, filesystem) })
	run("StatRoot", func(t *testing.T) { testReadFSStatRoot(t, filesystem) })
	run("ModTime", func(t *testing.T) { testReadFSModTime(t, filesystem) })
	run("ReadDir", func(t *testing.T) { testReadFSReadDir(t, filesystem) })
	run("ReadDirRoot", func(t *testing.T) { testReadFSReadDirRoot(t, filesystem) })
	run("ReadFile", func(t *testing.T) { testReadFSReadFile(t, filesystem) })
	run("Exists", func(t *testing.T) { testReadFSExists(t, filesystem) })
	run("IOFS", func(t *testing.T) { testReadFSIOFS(t, filesystem) })
}

func testReadFSOpen(t *testing.T, filesystem core.FS) {
	want := Fixture()["data/readme.txt"]

	f, err := filesystem.Open("data/readme.txt")
	if err != nil {
		t.Fatalf("Open(%q): got error %v, want nil", "data/readme.txt", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			t.Errorf("Close(): got error %v", closeErr)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll(): got error %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Read(): got %q, want %q", data, want)
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("File.Stat(): got error %v", err)
	}
	if info.Size() != int64(len(want)) {
		t.Errorf("File.Stat(): Size() = %d, want %d", info.Size(), len(want))
	}
}

func testReadFSOpenNotExist(t *testing.T, filesystem core.FS) {
	_, err := filesystem.Open("nonexistent")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open(%q): got error %v, want fs.ErrNotExist", "nonexistent", err)
	}
	_, err = filesystem.Stat("data/nonexistent.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(%q): got error %v, want fs.ErrNotExist", "data/nonexistent.txt", err)
	}
}

func testReadFSStatFile(t *testing.T, filesystem core.FS) {
	want := Fixture()["data/textures/stone.png"]

	info, err := filesystem.Stat("data/textures/stone.png")
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", "data/textures/stone.png", err)
	}
	if info.IsDir() {
		t.Errorf("Stat(%q): IsDir() = true, want false", "data/textures/stone.png")
	}
	if !info.Mode().IsRegular() {
		t.Errorf("Stat(%q): Mode() = %v, want regular", "data/textures/stone.png", info.Mode())
	}
	if info.Size() != int64(len(want)) {
		t.Errorf("Stat(%q): Size() = %d, want %d", "data/textures/stone.png", info.Size(), len(want))
	}
	if info.Name() != "stone.png" {
		t.Errorf("Stat(%q): Name() = %q, want %q", "data/textures/stone.png", info.Name(), "stone.png")
	}
}

func testReadFSStatDir(t *testing.T, filesystem core.FS) {
	for _, name := range []string{"data", "data/textures", "data/textures/"} {
		info, err := filesystem.Stat(name)
		if err != nil {
			t.Errorf("Stat(%q): got error %v, want nil", name, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = false, want true", name)
		}
	}
}

func testReadFSStatRoot(t *testing.T, filesystem core.FS) {
	for _, name := range []string{"", ".", "/"} {
		info, err := filesystem.Stat(name)
		if err != nil {
			t.Errorf("Stat(%q): got error %v, want nil", name, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = false, want true", name)
		}
	}
}

func testReadFSModTime(t *testing.T, filesystem core.FS) {
	info, err := filesystem.Stat("config.xml")
	if err != nil {
		t.Fatalf("Stat(%q): got error %v", "config.xml", err)
	}
	if info.ModTime().IsZero() {
		t.Errorf("Stat(%q): ModTime() is zero", "config.xml")
	}
}

func testReadFSReadDir(t *testing.T, filesystem core.FS) {
	entries, err := filesystem.ReadDir("data/textures")
	if err != nil {
		t.Fatalf("ReadDir(%q): got error %v, want nil", "data/textures", err)
	}
	got := entryNames(entries)
	want := []string{"grass.png", "stone.png"}
	if !equalStrings(got, want) {
		t.Errorf("ReadDir(%q): got %v, want %v", "data/textures", got, want)
	}
	for _, e := range entries {
		if e.IsDir() {
			t.Errorf("ReadDir(%q): entry %q IsDir() = true, want false", "data/textures", e.Name())
		}
	}

	if _, err := filesystem.ReadDir("nonexistent"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadDir(%q): got error %v, want fs.ErrNotExist", "nonexistent", err)
	}
}

func testReadFSReadDirRoot(t *testing.T, filesystem core.FS) {
	entries, err := filesystem.ReadDir("")
	if err != nil {
		t.Fatalf("ReadDir(%q): got error %v, want nil", "", err)
	}
	got := entryNames(entries)
	want := []string{"config.xml", "data"}
	if !equalStrings(got, want) {
		t.Errorf("ReadDir(%q): got %v, want %v", "", got, want)
	}
	for _, e := range entries {
		if e.Name() == "data" && !e.IsDir() {
			t.Errorf("ReadDir(%q): entry %q IsDir() = false, want true", "", e.Name())
		}
	}
}

func testReadFSReadFile(t *testing.T, filesystem core.FS) {
	for name, want := range Fixture() {
		data, err := filesystem.ReadFile(name)
		if err != nil {
			t.Errorf("ReadFile(%q): got error %v, want nil", name, err)
			continue
		}
		if !bytes.Equal(data, want) {
			t.Errorf("ReadFile(%q): got %q, want %q", name, data, want)
		}
	}
}

func testReadFSExists(t *testing.T, filesystem core.FS) {
	tests := []struct {
		name string
		want bool
	}{
		{"data/readme.txt", true},
		{"data", true},
		{"data/.hidden", true},
		{"nonexistent", false},
		{"data/nonexistent/deeper", false},
	}
	for _, tt := range tests {
		got, err := filesystem.Exists(tt.name)
		if err != nil {
			t.Errorf("Exists(%q): got error %v, want nil", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Exists(%q): got %v, want %v", tt.name, got, tt.want)
		}
	}
}

// testReadFSIOFS checks the driver composes with the io/fs helpers.
func testReadFSIOFS(t *testing.T, filesystem core.FS) {
	data, err := fs.ReadFile(filesystem, "config.xml")
	if err != nil {
		t.Fatalf("fs.ReadFile(%q): got error %v", "config.xml", err)
	}
	if !bytes.Equal(data, Fixture()["config.xml"]) {
		t.Errorf("fs.ReadFile(%q): got %q", "config.xml", data)
	}
}

func entryNames(entries []fs.DirEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
