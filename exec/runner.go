package exec

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"

	verrors "github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// DefaultWorkers is the default bound on concurrently running async
// requests.
const DefaultWorkers = 4

// Runner runs external processes synchronously or as asynchronous requests
// whose completions are collected with Drain.
//
// A Runner is safe for concurrent use.
type Runner struct {
	executor Executor
	shell    Executor
	logger   *zap.Logger
	tempDir  string
	stdout   io.Writer
	stderr   io.Writer
	async    bool
	workers  int64

	ctx      context.Context
	sem      *semaphore.Weighted
	inflight sync.WaitGroup

	mu       sync.Mutex
	nextID   uint32
	requests []*request
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithExecutor sets the executor processes are started with.
func WithExecutor(e Executor) RunnerOption {
	return func(r *Runner) {
		r.executor = e
	}
}

// WithLogger sets the logger that receives captured output and failures.
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logging.OrNop(logger)
	}
}

// WithTempDir sets the directory captured stderr is spooled to.
func WithTempDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.tempDir = dir
	}
}

// WithOutput sets where uncaptured process output is streamed.
func WithOutput(stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithWorkers bounds the number of async requests running at once.
// Values below one are ignored.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = int64(n)
		}
	}
}

// WithAsync enables or disables async requests. Async requests are always
// disabled in builds with the nothreads tag.
func WithAsync(enabled bool) RunnerOption {
	return func(r *Runner) {
		r.async = enabled
	}
}

// WithRunContext sets the context every process is started under.
// Cancelling it kills running processes.
func WithRunContext(ctx context.Context) RunnerOption {
	return func(r *Runner) {
		r.ctx = ctx
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger:  zap.NewNop(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		async:   true,
		workers: DefaultWorkers,
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.executor == nil {
		r.executor = New(WithInheritEnv())
	}
	r.executor = r.executor.WithContext(r.ctx)
	r.shell = Shell(r.executor)
	r.async = r.async && threadingAvailable
	r.sem = semaphore.NewWeighted(r.workers)
	return r
}

// AsyncEnabled reports whether async requests are accepted.
func (r *Runner) AsyncEnabled() bool {
	return r.async
}

// RunCommand runs commandLine through the platform shell and blocks until
// it exits. With capture set, stdout is logged line by line at info level
// and stderr is spooled to a temporary file that is logged at error level
// once the process exits. Returns the exit code, or -1 when the process
// could not be started.
func (r *Runner) RunCommand(commandLine string, capture bool) int {
	if !capture {
		res, err := r.shell.
			WithPassthrough().
			WithStdout(r.stdout).
			WithStderr(r.stderr).
			Run(commandLine)
		return r.exitCode(res, err)
	}

	spool, err := os.CreateTemp(r.tempDir, "vfs-stderr-*")
	if err != nil {
		r.logger.Error("Failed to create stderr spool file",
			zap.String("dir", r.tempDir),
			zap.String("code", string(verrors.CodeInternal)),
			zap.Error(err))
		return -1
	}
	defer func() {
		_ = spool.Close()
		_ = os.Remove(spool.Name())
	}()

	stdout := newLineLogger(func(line string) {
		r.logger.Info(line, zap.String("stream", "stdout"))
	})
	res, err := r.shell.
		WithPassthrough().
		WithStdout(stdout).
		WithStderr(spool).
		Run(commandLine)
	stdout.Flush()

	if _, seekErr := spool.Seek(0, io.SeekStart); seekErr == nil {
		scanner := bufio.NewScanner(spool)
		for scanner.Scan() {
			r.logger.Error(scanner.Text(), zap.String("stream", "stderr"))
		}
	}

	return r.exitCode(res, err)
}

// RunExecutable starts the executable at path with args, without a shell,
// and blocks until it exits. Output streams to the runner's writers.
// Returns the exit code, or -1 when the process could not be started.
func (r *Runner) RunExecutable(path string, args []string) int {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, ExecutablePath(path))
	argv = append(argv, args...)

	res, err := r.executor.
		WithPassthrough().
		WithStdout(r.stdout).
		WithStderr(r.stderr).
		Run(argv...)
	return r.exitCode(res, err)
}

func (r *Runner) exitCode(res *Result, err error) int {
	if err == nil {
		return res.ExitCode
	}

	var execErr *ExecError
	if errors.As(err, &execErr) && execErr.Started() {
		r.logger.Debug("Process exited with non-zero status",
			zap.Strings("argv", execErr.Command),
			zap.Int("exit_code", execErr.ExitCode))
		return execErr.ExitCode
	}

	r.logger.Error("Failed to start process",
		zap.String("code", string(verrors.CodeSpawnFailed)),
		zap.Error(err))
	return -1
}
