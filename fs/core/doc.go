// Package core defines the container driver contract used by the virtual
// filesystem.
//
// A container is anything that can be mounted into the virtual namespace: a
// real directory on disk, an in-memory tree, or an archive file. Each
// container is exposed through the FS interface, and the mount table in
// package vfs holds an ordered list of them.
//
// # Interface Hierarchy
//
// FS is composed of three small interfaces:
//
//   - ReadFS: Open, Stat, ReadDir, ReadFile, Exists
//   - WriteFS: Create, OpenFile, WriteFile, MkdirAll
//   - ManageFS: Remove
//
// Optional capabilities are discovered with type assertions:
//
//   - LstatFS: Lstat, for drivers that can report symbolic links
//
// # Read-only Containers
//
// Archive containers report ReadOnly() == true and return ErrReadOnly from
// every write operation. The virtual filesystem relies on this to refuse
// writes that resolve into an archive instead of redirecting them.
//
// # Paths
//
// Names passed to a driver are slash-separated and relative to the
// container root. "." names the root itself.
package core
