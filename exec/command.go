package exec

import (
	"context"
	"io"
	"os"
	osexec "os/exec"
)

// Command is the os/exec backed Executor.
type Command struct {
	env         map[string]string
	dir         string
	inheritEnv  bool
	passthrough bool
	ctx         context.Context
	stdout      io.Writer
	stderr      io.Writer
}

// New creates a Command. Output passthrough defaults to os.Stdout and
// os.Stderr.
func New(opts ...Option) *Command {
	cmd := &Command{
		env:    make(map[string]string),
		ctx:    context.Background(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(cmd)
	}
	return cmd
}

func (c *Command) setEnv(env map[string]string) {
	for k, v := range env {
		c.env[k] = v
	}
}

func (c *Command) copy() *Command {
	cp := *c
	cp.env = make(map[string]string, len(c.env))
	for k, v := range c.env {
		cp.env[k] = v
	}
	return &cp
}

func (c *Command) WithEnv(env map[string]string) Executor {
	cp := c.copy()
	cp.setEnv(env)
	return cp
}

func (c *Command) WithDir(dir string) Executor {
	cp := c.copy()
	cp.dir = dir
	return cp
}

func (c *Command) WithContext(ctx context.Context) Executor {
	cp := c.copy()
	cp.ctx = ctx
	return cp
}

func (c *Command) WithInheritEnv() Executor {
	cp := c.copy()
	cp.inheritEnv = true
	return cp
}

func (c *Command) WithStdout(w io.Writer) Executor {
	cp := c.copy()
	cp.stdout = w
	return cp
}

func (c *Command) WithStderr(w io.Writer) Executor {
	cp := c.copy()
	cp.stderr = w
	return cp
}

func (c *Command) WithPassthrough() Executor {
	cp := c.copy()
	cp.passthrough = true
	return cp
}

// Clone returns an independent copy of the command.
func (c *Command) Clone() Executor {
	return c.copy()
}

// Run starts the process and waits for it to exit.
func (c *Command) Run(args ...string) (*Result, error) {
	if len(args) == 0 {
		return nil, &ExecError{ExitCode: -1, Err: osexec.ErrNotFound}
	}

	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := osexec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = c.dir
	if c.inheritEnv {
		cmd.Env = os.Environ()
	}
	for k, v := range c.env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	stdout := &captureBuffer{}
	stderr := &captureBuffer{}
	combined := &captureBuffer{}
	if c.passthrough {
		cmd.Stdout = newTeeWriter(stdout, combined, c.stdout)
		cmd.Stderr = newTeeWriter(stderr, combined, c.stderr)
	} else {
		cmd.Stdout = newTeeWriter(stdout, combined)
		cmd.Stderr = newTeeWriter(stderr, combined)
	}

	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Combined: combined.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	if err != nil {
		return result, &ExecError{
			Command:  args,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
			Err:      err,
		}
	}
	return result, nil
}

var _ Executor = (*Command)(nil)
