package exec

import (
	"context"
	"io"
)

// Executor runs external processes. Configuration methods return a new
// Executor and leave the receiver unchanged, so one base executor can be
// shared by concurrent callers.
type Executor interface {
	// WithEnv adds environment variables. Later values override earlier ones.
	WithEnv(env map[string]string) Executor

	// WithDir sets the working directory of the process.
	WithDir(dir string) Executor

	// WithContext sets the context; the process is killed when it is done.
	WithContext(ctx context.Context) Executor

	// WithInheritEnv starts from the parent process environment.
	WithInheritEnv() Executor

	// WithStdout sets the writer stdout is streamed to when passthrough is
	// enabled.
	WithStdout(w io.Writer) Executor

	// WithStderr sets the writer stderr is streamed to when passthrough is
	// enabled.
	WithStderr(w io.Writer) Executor

	// WithPassthrough streams output to the stdout and stderr writers while
	// it is also captured into the Result.
	WithPassthrough() Executor

	// Run starts args[0] with the remaining arguments and waits for it.
	// A non-zero exit returns both a Result and an *ExecError.
	Run(args ...string) (*Result, error)

	// Clone returns an independent copy of the executor.
	Clone() Executor
}

// Result is the outcome of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	Combined string

	// ExitCode is -1 when the process could not be started or was killed.
	ExitCode int
}

// Option configures a Command at creation time.
type Option func(*Command)

// WithEnv returns an Option that sets environment variables.
func WithEnv(env map[string]string) Option {
	return func(c *Command) {
		c.setEnv(env)
	}
}

// WithDir returns an Option that sets the working directory.
func WithDir(dir string) Option {
	return func(c *Command) {
		c.dir = dir
	}
}

// WithContext returns an Option that sets the context.
func WithContext(ctx context.Context) Option {
	return func(c *Command) {
		c.ctx = ctx
	}
}

// WithInheritEnv returns an Option that inherits the parent environment.
func WithInheritEnv() Option {
	return func(c *Command) {
		c.inheritEnv = true
	}
}

// WithStdout returns an Option that sets the stdout writer.
func WithStdout(w io.Writer) Option {
	return func(c *Command) {
		c.stdout = w
	}
}

// WithStderr returns an Option that sets the stderr writer.
func WithStderr(w io.Writer) Option {
	return func(c *Command) {
		c.stderr = w
	}
}

// WithPassthrough returns an Option that enables output passthrough.
func WithPassthrough() Option {
	return func(c *Command) {
		c.passthrough = true
	}
}
