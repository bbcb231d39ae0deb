package exec

import (
	"context"
	"io"
)

// CommandWrapper prepends a fixed argv prefix to every Run, for example a
// shell and its command flag. It implements Executor.
type CommandWrapper struct {
	executor Executor
	prefix   []string
}

// NewWrapper creates a CommandWrapper around executor.
//
//	sh := exec.NewWrapper(exec.New(), "sh", "-c")
//	res, err := sh.Run("ls | wc -l")
func NewWrapper(executor Executor, prefix ...string) *CommandWrapper {
	return &CommandWrapper{
		executor: executor,
		prefix:   append([]string(nil), prefix...),
	}
}

func (w *CommandWrapper) with(executor Executor) Executor {
	return &CommandWrapper{executor: executor, prefix: w.prefix}
}

func (w *CommandWrapper) WithEnv(env map[string]string) Executor {
	return w.with(w.executor.WithEnv(env))
}

func (w *CommandWrapper) WithDir(dir string) Executor {
	return w.with(w.executor.WithDir(dir))
}

func (w *CommandWrapper) WithContext(ctx context.Context) Executor {
	return w.with(w.executor.WithContext(ctx))
}

func (w *CommandWrapper) WithInheritEnv() Executor {
	return w.with(w.executor.WithInheritEnv())
}

func (w *CommandWrapper) WithStdout(out io.Writer) Executor {
	return w.with(w.executor.WithStdout(out))
}

func (w *CommandWrapper) WithStderr(out io.Writer) Executor {
	return w.with(w.executor.WithStderr(out))
}

func (w *CommandWrapper) WithPassthrough() Executor {
	return w.with(w.executor.WithPassthrough())
}

// Run executes the prefix followed by args.
func (w *CommandWrapper) Run(args ...string) (*Result, error) {
	full := make([]string, 0, len(w.prefix)+len(args))
	full = append(full, w.prefix...)
	full = append(full, args...)
	return w.executor.Run(full...)
}

func (w *CommandWrapper) Clone() Executor {
	return w.with(w.executor.Clone())
}

var _ Executor = (*CommandWrapper)(nil)
