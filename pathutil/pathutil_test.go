package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		lower bool
		dir   string
		file  string
		ext   string
	}{
		{name: "absolute with extension", input: "/a/b/c.txt", dir: "/a/b/", file: "c", ext: ".txt"},
		{name: "relative", input: "data/maps/level.xml", dir: "data/maps/", file: "level", ext: ".xml"},
		{name: "no directory", input: "readme.md", dir: "", file: "readme", ext: ".md"},
		{name: "no extension", input: "/usr/bin/sh", dir: "/usr/bin/", file: "sh", ext: ""},
		{name: "dot in directory only", input: "/a.d/file", dir: "/a.d/", file: "file", ext: ""},
		{name: "multiple dots", input: "pack.tar.gz", dir: "", file: "pack.tar", ext: ".gz"},
		{name: "backslashes", input: "C:\\games\\Data\\Tex.PNG", dir: "C:/games/Data/", file: "Tex", ext: ".PNG"},
		{name: "lowercase extension only", input: "Data/Tex.PNG", lower: true, dir: "Data/", file: "Tex", ext: ".png"},
		{name: "trailing slash", input: "a/b/", dir: "a/b/", file: "", ext: ""},
		{name: "hidden file", input: "dir/.hidden", dir: "dir/", file: "", ext: ".hidden"},
		{name: "empty", input: "", dir: "", file: "", ext: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, file, ext := SplitPath(tt.input, tt.lower)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.file, file)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestSplitPath_RoundTrip(t *testing.T) {
	for _, p := range []string{"/a/b/c.txt", "x/y.z", "file", "/root/", "a/b.c/d.e"} {
		dir, name, ext := SplitPath(p, false)
		assert.Equal(t, InternalPath(p), dir+name+ext, p)
	}
}

func TestHelpersBuiltOnSplit(t *testing.T) {
	assert.Equal(t, "/a/b/", Path("/a/b/c.txt"))
	assert.Equal(t, "c", FileName("/a/b/c.txt"))
	assert.Equal(t, ".txt", Extension("/a/b/c.TXT", true))
	assert.Equal(t, "c.TXT", FileNameAndExtension("/a/b/c.TXT", false))
	assert.Equal(t, "/a/b/c.bin", ReplaceExtension("/a/b/c.txt", ".bin"))
	assert.Equal(t, "noext.bin", ReplaceExtension("noext", ".bin"))
}

func TestTrailingSlash(t *testing.T) {
	assert.Equal(t, "a/b/", AddTrailingSlash("a/b"))
	assert.Equal(t, "a/b/", AddTrailingSlash("a/b/"))
	assert.Equal(t, "a/b/", AddTrailingSlash(" a\\b "))
	assert.Equal(t, "", AddTrailingSlash(""))
	assert.Equal(t, "a/b", RemoveTrailingSlash("a/b/"))
	assert.Equal(t, "a/b", RemoveTrailingSlash("a\\b\\"))
	assert.Equal(t, "a/b", RemoveTrailingSlash("a/b"))
	assert.Equal(t, "", RemoveTrailingSlash("/"))
}

func TestTrailingSlash_Idempotent(t *testing.T) {
	for _, p := range []string{"a", "a/", "/x/y", "/x/y/", "c:\\dir\\", " spaced/ "} {
		assert.Equal(t, AddTrailingSlash(p), AddTrailingSlash(RemoveTrailingSlash(p)), p)
		assert.Equal(t, AddTrailingSlash(p), AddTrailingSlash(AddTrailingSlash(p)), p)
		assert.Equal(t, RemoveTrailingSlash(p), RemoveTrailingSlash(RemoveTrailingSlash(p)), p)
	}
}

func TestParentPath(t *testing.T) {
	assert.Equal(t, "data/", ParentPath("data/maps/"))
	assert.Equal(t, "data/", ParentPath("data/maps"))
	assert.Equal(t, "/", ParentPath("/data"))
	assert.Equal(t, "", ParentPath("data"))
	assert.Equal(t, "", ParentPath(""))
}

func TestNativePath(t *testing.T) {
	assert.Equal(t, "a\\b\\c", nativePath("a/b/c", "windows"))
	assert.Equal(t, "a/b/c", nativePath("a/b/c", "linux"))
}

func TestIsAbsolute(t *testing.T) {
	assert.True(t, isAbsolute("/usr", "linux"))
	assert.True(t, isAbsolute("\\share", "linux"))
	assert.False(t, isAbsolute("usr", "linux"))
	assert.False(t, isAbsolute("", "linux"))
	assert.False(t, isAbsolute("C:/games", "linux"))
	assert.True(t, isAbsolute("C:/games", "windows"))
	assert.True(t, isAbsolute("d:\\", "windows"))
	assert.False(t, isAbsolute("1:/x", "windows"))
}
