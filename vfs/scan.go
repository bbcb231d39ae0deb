package vfs

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	verrors "github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
	"go.uber.org/zap"
)

// ScanFlags selects what ScanDir reports.
type ScanFlags uint

const (
	// ScanFiles reports regular files.
	ScanFiles ScanFlags = 1 << iota
	// ScanDirs reports directories.
	ScanDirs
	// ScanHidden includes names starting with '.'.
	ScanHidden
)

// ScanDir lists the entries under root, relative to root. Entries come from
// every container in search order; a name already reported by an earlier
// container is skipped.
//
// filter is reduced to its extension, everything from the last '.', and
// files are kept when their name ends with it. A filter without a '.' or
// whose extension contains '*' keeps every file. Directories are never
// filtered. With recursive set, subdirectories are descended and their
// entries are reported as "sub/name".
func (f *FileSystem) ScanDir(root, filter string, flags ScanFlags, recursive bool) []string {
	result := []string{}
	if !f.allow("scan", root) {
		return result
	}

	start := pathutil.AddTrailingSlash(root)
	f.scanDir(&result, start, start, filterExtension(filter), flags, recursive)
	return result
}

func (f *FileSystem) scanDir(result *[]string, dir, start, ext string, flags ScanFlags, recursive bool) {
	dir = pathutil.AddTrailingSlash(dir)
	delta := dir[len(start):]

	names, err := f.readDirNames(dir)
	if err != nil {
		return
	}

	for _, name := range names {
		if strings.HasPrefix(name, ".") && flags&ScanHidden == 0 {
			continue
		}

		_, _, info, err := f.resolve(dir + name)
		if err != nil {
			continue
		}

		if info.IsDir() {
			if flags&ScanDirs != 0 {
				*result = append(*result, delta+name)
			}
			if recursive {
				f.scanDir(result, dir+name, start, ext, flags, recursive)
			}
		} else if flags&ScanFiles != 0 {
			if ext == "" || strings.HasSuffix(name, ext) {
				*result = append(*result, delta+name)
			}
		}
	}
}

func filterExtension(filter string) string {
	dot := strings.LastIndexByte(filter, '.')
	if dot < 0 {
		return ""
	}
	ext := filter[dot:]
	if strings.Contains(ext, "*") {
		return ""
	}
	return ext
}

// Match returns the files under root whose root-relative path matches the
// doublestar pattern, for example "**/*.png". Hidden entries are included
// only when the pattern names them explicitly.
func (f *FileSystem) Match(root, pattern string) []string {
	if !doublestar.ValidatePattern(pattern) {
		f.logger.Error("Invalid glob pattern",
			zap.String("pattern", pattern),
			zap.String("code", string(verrors.CodeInvalidInput)))
		return []string{}
	}

	flags := ScanFiles
	if strings.Contains(pattern, "/.") || strings.HasPrefix(pattern, ".") {
		flags |= ScanHidden
	}

	matches := []string{}
	for _, name := range f.ScanDir(root, "", flags, true) {
		if ok, _ := doublestar.Match(pattern, name); ok {
			matches = append(matches, name)
		}
	}
	return matches
}
