package main

import (
	"fmt"
	"strings"

	"github.com/jmgilman/go/vfs/config"
	"github.com/jmgilman/go/vfs/exec"
	"github.com/jmgilman/go/vfs/logging"
	"github.com/jmgilman/go/vfs/vfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exitError carries a child process exit code out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// app holds the persistent flags and the filesystem they produce.
type app struct {
	mounts   []string
	prepends []string
	allow    []string
	writeDir string
	manifest string
	logLevel string

	fsys   *vfs.FileSystem
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "vfsctl",
		Short: "Inspect and manipulate a virtual filesystem",
		Long: `vfsctl merges directories and archives (zip, tar, tar.gz, tar.zst) into
one namespace and runs file operations against it.

Containers given with --mount are searched after those given earlier;
containers given with --prepend are searched first.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringArrayVar(&a.mounts, "mount", nil, "Mount a container, as path or path=point (repeatable)")
	flags.StringArrayVar(&a.prepends, "prepend", nil, "Mount a container ahead of all others, as path or path=point (repeatable)")
	flags.StringArrayVar(&a.allow, "allow", nil, "Restrict access to this directory prefix (repeatable)")
	flags.StringVar(&a.writeDir, "write-dir", "", "Directory that receives writes")
	flags.StringVar(&a.manifest, "manifest", "", "YAML mount manifest to apply")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		a.lsCmd(),
		a.globCmd(),
		a.existsCmd(),
		a.statCmd(),
		a.catCmd(),
		a.cpCmd(),
		a.mvCmd(),
		a.rmCmd(),
		a.mkdirCmd(),
		a.mountsCmd(),
		a.runCmd(),
		a.execCmd(),
		a.asyncCmd(),
	)
	return root
}

// setup builds the filesystem from the environment and the flags.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.manifest != "" {
		cfg.Manifest = a.manifest
	}
	if a.writeDir != "" {
		cfg.WriteDir = a.writeDir
	}
	cfg.AllowedPaths = append(cfg.AllowedPaths, a.allow...)

	logCfg := cfg.Logging()
	logCfg.OutputPaths = []string{"stderr"}
	a.logger, err = logging.New(logCfg)
	if err != nil {
		return err
	}

	runner := exec.NewRunner(
		exec.WithLogger(a.logger.Named("exec")),
		exec.WithTempDir(vfs.TemporaryDir()),
		exec.WithWorkers(cfg.AsyncWorkers),
		exec.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)
	a.fsys, err = vfs.NewFromConfig(cfg, vfs.WithLogger(a.logger), vfs.WithRunner(runner))
	if err != nil {
		return err
	}

	for _, spec := range a.prepends {
		if err := a.mount(spec, vfs.Prepend); err != nil {
			return err
		}
	}
	for _, spec := range a.mounts {
		if err := a.mount(spec, vfs.Append); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) mount(spec string, priority vfs.Priority) error {
	path, point, _ := strings.Cut(spec, "=")
	if !a.fsys.Mount(path, point, priority) {
		return fmt.Errorf("failed to mount %s", path)
	}
	return nil
}
