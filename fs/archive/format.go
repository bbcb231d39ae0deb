package archive

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format identifies an archive encoding.
type Format int

const (
	// FormatUnknown means the data is not a supported archive.
	FormatUnknown Format = iota
	// FormatZip is a zip archive.
	FormatZip
	// FormatTar is an uncompressed tar archive.
	FormatTar
	// FormatTarGzip is a gzip-compressed tar archive.
	FormatTarGzip
	// FormatTarZstd is a zstd-compressed tar archive.
	FormatTarZstd
)

// String returns the conventional extension of the format.
func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatTarGzip:
		return "tar.gz"
	case FormatTarZstd:
		return "tar.zst"
	default:
		return "unknown"
	}
}

var mimeFormats = []struct {
	mime   string
	format Format
}{
	{"application/zip", FormatZip},
	{"application/x-tar", FormatTar},
	{"application/gzip", FormatTarGzip},
	{"application/zstd", FormatTarZstd},
}

// Detect returns the format of data. Content sniffing wins; the name's
// extension is consulted only when the content is not recognized.
// Zip-based formats such as jar or docx are reported as FormatZip.
func Detect(name string, data []byte) Format {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		for _, mf := range mimeFormats {
			if m.Is(mf.mime) {
				return mf.format
			}
		}
	}
	return detectByName(name)
}

func detectByName(name string) Format {
	name = strings.ToLower(name)
	switch {
	case strings.HasSuffix(name, ".zip"), strings.HasSuffix(name, ".pak"):
		return FormatZip
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return FormatTarGzip
	case strings.HasSuffix(name, ".tar.zst"), strings.HasSuffix(name, ".tzst"):
		return FormatTarZstd
	case strings.HasSuffix(name, ".tar"):
		return FormatTar
	default:
		return FormatUnknown
	}
}
