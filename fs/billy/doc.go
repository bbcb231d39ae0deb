// Package billy provides go-billy-backed container drivers implementing
// core.FS.
//
// Two drivers are available:
//
//	// A real directory, rooted at its path. Names passed to the driver are
//	// relative to the root and cannot escape it.
//	local := billy.NewLocal("/games/mygame/Data")
//
//	// An in-memory tree, used for tests and as the backing store of
//	// archive containers.
//	mem := billy.NewMemory()
//
// Both accept slash-separated names relative to the container root; "." and
// "" name the root.
//
// # Thread Safety
//
// Drivers are safe for concurrent use by multiple goroutines. File handles
// are not.
package billy
