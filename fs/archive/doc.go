// Package archive implements a read-only container driver over packed
// archive files.
//
// Supported formats are zip, tar, gzip-compressed tar and zstd-compressed
// tar. The format is sniffed from the content and falls back to the file
// extension when sniffing is inconclusive.
//
// An archive is decoded once into memory when it is opened:
//
//	pak, err := archive.Open("/games/mygame/Data.zip")
//	if err != nil {
//	    return err
//	}
//	data, err := pak.ReadFile("textures/stone.png")
//
// Archives nested inside other containers are opened from their bytes with
// FromBytes. Every write and remove fails with core.ErrReadOnly.
package archive
