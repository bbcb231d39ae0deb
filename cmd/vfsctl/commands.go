package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmgilman/go/vfs/exec"
	"github.com/jmgilman/go/vfs/vfs"
	"github.com/spf13/cobra"
)

// tickInterval is how often the async command sweeps for completions.
const tickInterval = 10 * time.Millisecond

func (a *app) lsCmd() *cobra.Command {
	var (
		filter    string
		recursive bool
		dirs      bool
		hidden    bool
	)
	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List files in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) == 1 {
				root = args[0]
			}
			flags := vfs.ScanFiles
			if dirs {
				flags |= vfs.ScanDirs
			}
			if hidden {
				flags |= vfs.ScanHidden
			}
			for _, name := range a.fsys.ScanDir(root, filter, flags, recursive) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "Only list files with this extension, e.g. '*.xml'")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().BoolVar(&dirs, "dirs", false, "Also list directories")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Include names starting with '.'")
	return cmd
}

func (a *app) globCmd() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "glob pattern",
		Short: "List files matching a pattern such as '**/*.png'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range a.fsys.Match(root, args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "Directory the pattern is relative to")
	return cmd
}

func (a *app) existsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists path",
		Short: "Report whether a path is a file or a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case a.fsys.FileExists(args[0]):
				fmt.Fprintln(cmd.OutOrStdout(), "file")
			case a.fsys.DirExists(args[0]):
				fmt.Fprintln(cmd.OutOrStdout(), "directory")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "missing")
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

func (a *app) statCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat path",
		Short: "Show metadata for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.fsys.Stat(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name:      %s\n", info.Name())
			fmt.Fprintf(out, "size:      %d\n", info.Size())
			fmt.Fprintf(out, "mode:      %s\n", info.Mode())
			fmt.Fprintf(out, "modified:  %d\n", a.fsys.GetLastModifiedTime(args[0]))
			fmt.Fprintf(out, "container: %s\n", a.fsys.RealDir(args[0]))
			return nil
		},
	}
}

func (a *app) catCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat path...",
		Short: "Print file contents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				data, err := a.fsys.ReadFile(p)
				if err != nil {
					return err
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// boolCmd builds a command around one of the boolean filesystem operations.
func boolCmd(use, short string, nargs int, op func(args []string) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(_ *cobra.Command, args []string) error {
			if !op(args) {
				return fmt.Errorf("%s failed", strings.Fields(use)[0])
			}
			return nil
		},
	}
}

func (a *app) cpCmd() *cobra.Command {
	return boolCmd("cp src dest", "Copy a file into the write directory", 2, func(args []string) bool {
		return a.fsys.Copy(args[0], args[1])
	})
}

func (a *app) mvCmd() *cobra.Command {
	return boolCmd("mv src dest", "Copy a file into the write directory, then delete the source", 2, func(args []string) bool {
		return a.fsys.Rename(args[0], args[1])
	})
}

func (a *app) rmCmd() *cobra.Command {
	return boolCmd("rm path", "Delete a file or empty directory from the write directory", 1, func(args []string) bool {
		return a.fsys.Delete(args[0])
	})
}

func (a *app) mkdirCmd() *cobra.Command {
	return boolCmd("mkdir path", "Create a directory and its parents in the write directory", 1, func(args []string) bool {
		return a.fsys.CreateDir(args[0])
	})
}

func (a *app) mountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mounts",
		Short: "List mounted containers in search order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, p := range a.fsys.SearchPaths() {
				fmt.Fprintf(out, "%s\t%s\n", a.fsys.GetMountPoint(p), p)
			}
			if dir := a.fsys.GetWriteDirectory(); dir != "" {
				fmt.Fprintf(out, "write\t%s\n", dir)
			}
			return nil
		},
	}
}

func exitCode(code int) error {
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func (a *app) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- command [args...]",
		Short: "Run a command line through the platform shell",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return exitCode(a.fsys.SystemCommand(strings.Join(args, " "), false))
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) execCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec path [args...]",
		Short: "Run an executable without a shell",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return exitCode(a.fsys.SystemRun(args[0], args[1:]))
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) asyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "async command...",
		Short: "Run each argument as a shell command line in the background",
		Long: `async queues every argument as a separate command line, then ticks
until all of them have finished, printing each request ID and exit code as
it completes. Output is captured into the log.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pending := make(map[uint32]bool, len(args))
			for _, line := range args {
				id := a.fsys.SystemCommandAsync(line)
				if id == exec.InvalidRequestID {
					return errors.New("failed to queue command: " + line)
				}
				pending[id] = true
			}

			failed := 0
			a.fsys.OnAsyncExecFinished(func(c exec.Completion) {
				delete(pending, c.RequestID)
				if c.ExitCode != 0 {
					failed++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\n", c.RequestID, c.ExitCode)
			})

			ticker := time.NewTicker(tickInterval)
			defer ticker.Stop()
			for len(pending) > 0 {
				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case <-ticker.C:
					a.fsys.BeginFrame()
				}
			}

			if failed > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}
