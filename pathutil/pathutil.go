// Package pathutil provides the path normalization and splitting helpers
// shared by every other package in this module.
//
// Paths are handled in two forms. The internal form always uses forward
// slashes and is what the virtual filesystem stores and compares. The native
// form uses the host separator and is only produced when a path is handed to
// the operating system.
//
// All functions are pure and total: they never fail for any input string.
package pathutil

import (
	"runtime"
	"strings"
)

// SplitPath splits a path into its directory (with trailing slash), file
// name and extension (with leading dot).
//
// The extension is taken from the last '.' that occurs after the last '/'.
// When lowercaseExt is true only the extension is lowercased.
//
//	SplitPath("/a/b/c.txt", false) // "/a/b/", "c", ".txt"
func SplitPath(full string, lowercaseExt bool) (dir, name, ext string) {
	p := InternalPath(full)

	extPos := strings.LastIndexByte(p, '.')
	slashPos := strings.LastIndexByte(p, '/')
	if extPos >= 0 && extPos > slashPos {
		ext = p[extPos:]
		if lowercaseExt {
			ext = strings.ToLower(ext)
		}
		p = p[:extPos]
	}

	if slashPos = strings.LastIndexByte(p, '/'); slashPos >= 0 {
		return p[:slashPos+1], p[slashPos+1:], ext
	}
	return "", p, ext
}

// Path returns the directory part of a path, including the trailing slash.
func Path(full string) string {
	dir, _, _ := SplitPath(full, false)
	return dir
}

// FileName returns the file name of a path without directory or extension.
func FileName(full string) string {
	_, name, _ := SplitPath(full, false)
	return name
}

// Extension returns the extension of a path, including the leading dot.
func Extension(full string, lowercase bool) string {
	_, _, ext := SplitPath(full, lowercase)
	return ext
}

// FileNameAndExtension returns the file name and extension without the
// directory.
func FileNameAndExtension(full string, lowercaseExt bool) string {
	_, name, ext := SplitPath(full, lowercaseExt)
	return name + ext
}

// ReplaceExtension swaps the extension of a path for newExt.
// newExt should include the leading dot.
func ReplaceExtension(full, newExt string) string {
	dir, name, _ := SplitPath(full, false)
	return dir + name + newExt
}

// AddTrailingSlash trims whitespace, normalizes separators and appends a
// '/' if the path does not already end with one. Empty input stays empty.
func AddTrailingSlash(p string) string {
	p = InternalPath(strings.TrimSpace(p))
	if p != "" && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// RemoveTrailingSlash trims whitespace, normalizes separators and removes a
// single trailing '/'.
func RemoveTrailingSlash(p string) string {
	p = InternalPath(strings.TrimSpace(p))
	return strings.TrimSuffix(p, "/")
}

// ParentPath returns the parent directory of p with a trailing slash, or an
// empty string when p has no parent component.
//
//	ParentPath("data/maps/")  // "data/"
//	ParentPath("data")        // ""
func ParentPath(p string) string {
	p = InternalPath(p)
	pos := strings.LastIndexByte(RemoveTrailingSlash(p), '/')
	if pos < 0 {
		return ""
	}
	return p[:pos+1]
}

// InternalPath converts backslashes to forward slashes.
func InternalPath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// NativePath converts a path to the host's native separator.
func NativePath(p string) string {
	return nativePath(p, runtime.GOOS)
}

// IsAbsolute reports whether p is absolute. A normalized path starting with
// '/' is always absolute; on Windows a drive prefix such as "C:" also counts.
func IsAbsolute(p string) bool {
	return isAbsolute(p, runtime.GOOS)
}

func nativePath(p, goos string) string {
	if goos == "windows" {
		return strings.ReplaceAll(p, "/", "\\")
	}
	return p
}

func isAbsolute(p, goos string) bool {
	if p == "" {
		return false
	}
	p = InternalPath(p)
	if p[0] == '/' {
		return true
	}
	if goos == "windows" && len(p) > 1 && isAlpha(p[0]) && p[1] == ':' {
		return true
	}
	return false
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
