package vfs

import (
	"sync"

	verrors "github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/exec"
	"github.com/jmgilman/go/vfs/fs/core"
	"github.com/jmgilman/go/vfs/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ConsoleTarget is the console command target handled by HandleConsoleCommand.
const ConsoleTarget = "FileSystem"

// FileSystem is a virtual filesystem built from an ordered list of mounted
// containers, an access guard and a process runner.
//
// Mount table operations are safe for concurrent use. BeginFrame and the
// completion listeners are expected to run on a single driving goroutine.
type FileSystem struct {
	logger  *zap.Logger
	guard   *Guard
	runner  *exec.Runner
	metrics *metrics

	mu             sync.RWMutex
	mounts         []*mount
	writeDir       string
	writer         core.FS
	permitSymlinks bool

	consoleCommands bool
	listeners       []func(exec.Completion)

	// options consumed by New
	registerer prometheus.Registerer
	workers    int
	async      bool
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(f *FileSystem) {
		f.logger = logging.OrNop(logger)
	}
}

// WithRunner sets the process runner. When unset, New creates one that
// shares the filesystem's logger.
func WithRunner(r *exec.Runner) Option {
	return func(f *FileSystem) {
		f.runner = r
	}
}

// WithRegisterer registers the filesystem's metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(f *FileSystem) {
		f.registerer = reg
	}
}

// WithAsyncWorkers bounds how many async requests run at once. Ignored when
// WithRunner is used.
func WithAsyncWorkers(n int) Option {
	return func(f *FileSystem) {
		if n > 0 {
			f.workers = n
		}
	}
}

// WithAsync enables or disables async requests. Ignored when WithRunner is
// used.
func WithAsync(enabled bool) Option {
	return func(f *FileSystem) {
		f.async = enabled
	}
}

// WithPermitSymlinks sets the initial symlink policy.
func WithPermitSymlinks(permit bool) Option {
	return func(f *FileSystem) {
		f.permitSymlinks = permit
	}
}

// WithConsoleCommands sets whether console commands are executed.
func WithConsoleCommands(enabled bool) Option {
	return func(f *FileSystem) {
		f.consoleCommands = enabled
	}
}

// New creates an empty FileSystem with no mounts, no write directory and an
// unrestricted guard.
func New(opts ...Option) *FileSystem {
	f := &FileSystem{
		logger:          zap.NewNop(),
		guard:           NewGuard(),
		workers:         exec.DefaultWorkers,
		async:           true,
		consoleCommands: true,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.metrics = newMetrics(f.registerer)
	if f.runner == nil {
		f.runner = exec.NewRunner(
			exec.WithLogger(f.logger.Named("exec")),
			exec.WithTempDir(TemporaryDir()),
			exec.WithWorkers(f.workers),
			exec.WithAsync(f.async),
		)
	}
	return f
}

// Guard returns the access guard.
func (f *FileSystem) Guard() *Guard {
	return f.guard
}

// Runner returns the process runner.
func (f *FileSystem) Runner() *exec.Runner {
	return f.runner
}

// RegisterPath adds p to the access guard's allowed prefixes.
func (f *FileSystem) RegisterPath(p string) {
	f.guard.RegisterPath(p)
}

// CheckAccess reports whether the access guard allows p.
func (f *FileSystem) CheckAccess(p string) bool {
	return f.guard.CheckAccess(p)
}

// PermitSymlinks sets whether symbolic links inside mounted directories are
// visible. Links are hidden by default.
func (f *FileSystem) PermitSymlinks(permit bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.permitSymlinks = permit
}

// allow runs the guard for op and logs and counts a denial.
func (f *FileSystem) allow(op, p string) bool {
	if f.guard.CheckAccess(p) {
		return true
	}
	f.metrics.accessDenied.WithLabelValues(op).Inc()
	f.logger.Error("Access denied",
		zap.String("op", op),
		zap.String("path", p),
		zap.String("code", string(verrors.CodeAccessDenied)),
	)
	return false
}
