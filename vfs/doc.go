// Package vfs implements a virtual filesystem that merges directories and
// archives into a single namespace.
//
// Containers are mounted into an ordered search path. Lookups walk the
// search path and use the first container that holds the requested path,
// so containers mounted with Prepend shadow older ones. Writes always go to
// a single write directory on disk.
//
//	fsys := vfs.New(vfs.WithLogger(logger))
//	fsys.Mount("/games/mygame/Data", "", vfs.Append)
//	fsys.Mount("/games/mygame/Patch.zip", "", vfs.Prepend)
//	fsys.SetWriteDirectory("/home/me/.local/share/mygame")
//
//	data, err := fsys.ReadFile("config.xml")
//
// An access guard restricts every operation to registered path prefixes.
// Once any path is registered, running external programs is refused as
// well.
//
// External programs run through an exec.Runner, either blocking or queued.
// Queued requests complete in the background and are delivered by
// BeginFrame, which the host calls once per tick:
//
//	fsys.OnAsyncExecFinished(func(c exec.Completion) {
//		log.Printf("request %d exited with %d", c.RequestID, c.ExitCode)
//	})
//	fsys.SystemCommandAsync("make assets")
//	for running {
//		fsys.BeginFrame()
//		// ...
//	}
package vfs
