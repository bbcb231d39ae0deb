package vfs

import (
	verrors "github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/exec"
	"go.uber.org/zap"
)

// SystemCommand runs commandLine through the platform shell and returns
// its exit code. With capture set, output is logged instead of passed
// through. Returns -1 when the guard is restricted or the process could
// not be started.
func (f *FileSystem) SystemCommand(commandLine string, capture bool) int {
	if !f.execAllowed(commandLine) {
		return -1
	}
	return f.runner.RunCommand(commandLine, capture)
}

// SystemRun runs the executable at path with args and returns its exit
// code, or -1 when the guard is restricted or the process could not be
// started.
func (f *FileSystem) SystemRun(path string, args []string) int {
	if !f.execAllowed(path) {
		return -1
	}
	return f.runner.RunExecutable(path, args)
}

// SystemCommandAsync queues commandLine and returns its request ID, or
// exec.InvalidRequestID when the request was refused.
func (f *FileSystem) SystemCommandAsync(commandLine string) uint32 {
	if !f.execAllowed(commandLine) {
		return exec.InvalidRequestID
	}
	return f.submitted("command", f.runner.RunCommandAsync(commandLine))
}

// SystemRunAsync queues the executable at path and returns its request ID,
// or exec.InvalidRequestID when the request was refused.
func (f *FileSystem) SystemRunAsync(path string, args []string) uint32 {
	if !f.execAllowed(path) {
		return exec.InvalidRequestID
	}
	return f.submitted("executable", f.runner.RunExecutableAsync(path, args))
}

// OnAsyncExecFinished registers fn to be called by BeginFrame for every
// completed async request.
func (f *FileSystem) OnAsyncExecFinished(fn func(exec.Completion)) {
	f.listeners = append(f.listeners, fn)
}

// BeginFrame delivers every completed async request, in submission order,
// to the registered listeners and returns them. Requests still running are
// left queued. Call it once per tick from the driving goroutine.
func (f *FileSystem) BeginFrame() []exec.Completion {
	completions := f.runner.Drain()
	for _, c := range completions {
		for _, fn := range f.listeners {
			fn(c)
		}
	}
	if len(completions) > 0 {
		f.metrics.asyncCompleted.Add(float64(len(completions)))
	}
	f.metrics.asyncPending.Set(float64(f.runner.Pending()))
	return completions
}

// SetExecuteConsoleCommands sets whether HandleConsoleCommand runs
// commands.
func (f *FileSystem) SetExecuteConsoleCommands(enabled bool) {
	f.consoleCommands = enabled
}

// ExecuteConsoleCommands reports whether console commands are executed.
func (f *FileSystem) ExecuteConsoleCommands() bool {
	return f.consoleCommands
}

// HandleConsoleCommand runs command through SystemCommand with captured
// output when target is ConsoleTarget and console commands are enabled.
// It reports whether the command was handled.
func (f *FileSystem) HandleConsoleCommand(target, command string) bool {
	if !f.consoleCommands || target != ConsoleTarget {
		return false
	}
	f.SystemCommand(command, true)
	return true
}

func (f *FileSystem) execAllowed(what string) bool {
	if !f.guard.Restricted() {
		return true
	}
	f.metrics.accessDenied.WithLabelValues("exec").Inc()
	f.logger.Error("Executing an external command is not allowed",
		zap.String("command", what),
		zap.String("code", string(verrors.CodeExecDisabled)))
	return false
}

func (f *FileSystem) submitted(kind string, id uint32) uint32 {
	if id != exec.InvalidRequestID {
		f.metrics.asyncSubmitted.WithLabelValues(kind).Inc()
		f.metrics.asyncPending.Set(float64(f.runner.Pending()))
	}
	return id
}
