package fstest

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/jmgilman/go/vfs/fs/core"
)

// TestWriteFS tests Create, OpenFile, WriteFile and MkdirAll. For read-only
// drivers it asserts every write fails with core.ErrReadOnly and leaves the
// tree untouched.
func TestWriteFS(t *testing.T, filesystem core.FS, config Config) {
	if config.ReadOnly {
		t.Run("ReadOnly", func(t *testing.T) {
			config.skip(t, "WriteFS/ReadOnly")
			testWriteFSReadOnly(t, filesystem)
		})
		return
	}

	run := func(name string, fn func(t *testing.T)) {
		t.Run(name, func(t *testing.T) {
			config.skip(t, "WriteFS/"+name)
			fn(t)
		})
	}

	run("CreateAndWrite", func(t *testing.T) { testWriteFSCreate(t, filesystem) })
	run("WriteFileTruncates", func(t *testing.T) { testWriteFSTruncate(t, filesystem) })
	run("OpenFileAppend", func(t *testing.T) { testWriteFSOpenFileAppend(t, filesystem) })
	run("MkdirAll", func(t *testing.T) { testWriteFSMkdirAll(t, filesystem) })
	run("ParentEscapeClamped", func(t *testing.T) { testWriteFSParentEscape(t, filesystem) })
}

func testWriteFSCreate(t *testing.T, filesystem core.FS) {
	testData := []byte("test data for Create")

	f, err := filesystem.Create("created.txt")
	if err != nil {
		t.Fatalf("Create(%q): got error %v, want nil", "created.txt", err)
	}
	n, err := f.Write(testData)
	if err != nil {
		_ = f.Close()
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	if n != len(testData) {
		_ = f.Close()
		t.Fatalf("Write(): wrote %d bytes, want %d", n, len(testData))
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	data, err := filesystem.ReadFile("created.txt")
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v, want nil", "created.txt", err)
	}
	if !bytes.Equal(data, testData) {
		t.Errorf("ReadFile(%q): got %q, want %q", "created.txt", data, testData)
	}
}

func testWriteFSTruncate(t *testing.T, filesystem core.FS) {
	if err := filesystem.WriteFile("data/readme.txt", []byte("short"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): got error %v", "data/readme.txt", err)
	}
	data, err := filesystem.ReadFile("data/readme.txt")
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v", "data/readme.txt", err)
	}
	if string(data) != "short" {
		t.Errorf("ReadFile(%q): got %q, want %q", "data/readme.txt", data, "short")
	}
}

func testWriteFSOpenFileAppend(t *testing.T, filesystem core.FS) {
	f, err := filesystem.OpenFile("config.xml", os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("OpenFile(%q, O_APPEND): got error %v", "config.xml", err)
	}
	if _, err := io.WriteString(f, "<more/>"); err != nil {
		_ = f.Close()
		t.Fatalf("Write(): got error %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v", err)
	}

	data, err := filesystem.ReadFile("config.xml")
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v", "config.xml", err)
	}
	if string(data) != "<config/><more/>" {
		t.Errorf("ReadFile(%q): got %q, want %q", "config.xml", data, "<config/><more/>")
	}
}

func testWriteFSMkdirAll(t *testing.T, filesystem core.FS) {
	if err := filesystem.MkdirAll("a/b/c", 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): got error %v", "a/b/c", err)
	}
	for _, dir := range []string{"a", "a/b", "a/b/c"} {
		info, err := filesystem.Stat(dir)
		if err != nil {
			t.Errorf("Stat(%q): got error %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = false, want true", dir)
		}
	}
	if err := filesystem.MkdirAll("a/b/c", 0o755); err != nil {
		t.Errorf("MkdirAll(%q) on existing: got error %v, want nil", "a/b/c", err)
	}
}

func testWriteFSParentEscape(t *testing.T, filesystem core.FS) {
	if err := filesystem.WriteFile("../../escaped.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): got error %v", "../../escaped.txt", err)
	}
	exists, err := filesystem.Exists("escaped.txt")
	if err != nil || !exists {
		t.Errorf("Exists(%q) = %v, %v; want the write clamped to the root", "escaped.txt", exists, err)
	}
}

func testWriteFSReadOnly(t *testing.T, filesystem core.FS) {
	if !filesystem.ReadOnly() {
		t.Errorf("ReadOnly(): got false, want true")
	}

	if _, err := filesystem.Create("new.txt"); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("Create(): got error %v, want core.ErrReadOnly", err)
	}
	if _, err := filesystem.OpenFile("config.xml", os.O_WRONLY, 0o644); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("OpenFile(O_WRONLY): got error %v, want core.ErrReadOnly", err)
	}
	if err := filesystem.WriteFile("config.xml", []byte("x"), 0o644); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("WriteFile(): got error %v, want core.ErrReadOnly", err)
	}
	if err := filesystem.MkdirAll("newdir", 0o755); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("MkdirAll(): got error %v, want core.ErrReadOnly", err)
	}

	data, err := filesystem.ReadFile("config.xml")
	if err != nil || !bytes.Equal(data, Fixture()["config.xml"]) {
		t.Errorf("ReadFile(%q) after rejected writes: got %q, %v", "config.xml", data, err)
	}
	if exists, _ := filesystem.Exists("new.txt"); exists {
		t.Errorf("Exists(%q): got true after rejected Create", "new.txt")
	}
}
