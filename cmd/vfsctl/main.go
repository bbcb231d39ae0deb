// Command vfsctl inspects and manipulates a virtual filesystem built from
// directories and archives.
//
//	vfsctl --mount ./Data --prepend ./Patch.zip ls -r --filter '*.xml'
//	vfsctl --manifest mounts.yaml cat config.xml
//	vfsctl --write-dir ./out cp config.xml backup/config.xml
//
// Settings not given on the command line are read from VFS_* environment
// variables.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
