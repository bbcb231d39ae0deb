package exec

import (
	"runtime"

	"github.com/jmgilman/go/vfs/pathutil"
)

// Shell wraps executor so that Run receives a single command line and hands
// it to the platform shell: "sh -c" on POSIX and "cmd /C" on Windows.
func Shell(executor Executor) *CommandWrapper {
	return NewWrapper(executor, shellPrefix(runtime.GOOS)...)
}

func shellPrefix(goos string) []string {
	if goos == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"sh", "-c"}
}

// ExecutablePath converts p to native separators and appends the platform's
// default executable extension when p has none.
func ExecutablePath(p string) string {
	return executablePath(p, runtime.GOOS)
}

func executablePath(p, goos string) string {
	if goos == "windows" && pathutil.Extension(p, false) == "" {
		p += ".exe"
	}
	return pathutil.NativePath(p)
}
