package vfs

import (
	"path/filepath"
	"sort"
	"testing"

	verrors "github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/exec"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newProcessFS returns a FileSystem whose runner logs to the same observer.
func newProcessFS(t *testing.T, runnerOpts ...exec.RunnerOption) (*FileSystem, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	runnerOpts = append([]exec.RunnerOption{
		exec.WithLogger(logger),
		exec.WithTempDir(t.TempDir()),
	}, runnerOpts...)
	f := New(
		WithLogger(logger),
		WithRunner(exec.NewRunner(runnerOpts...)),
		WithRegisterer(prometheus.NewRegistry()),
	)
	return f, logs
}

func TestSystemCommand(t *testing.T) {
	skipOnWindows(t)
	f, logs := newProcessFS(t)

	assert.Equal(t, 0, f.SystemCommand("true", false))
	assert.Equal(t, 3, f.SystemCommand("echo captured; exit 3", true))
	assert.Equal(t, 1, logs.FilterMessage("captured").Len())
}

func TestSystemRun(t *testing.T) {
	skipOnWindows(t)
	f, _ := newProcessFS(t)

	assert.Equal(t, 5, f.SystemRun("/bin/sh", []string{"-c", "exit 5"}))
	assert.Equal(t, -1, f.SystemRun("/definitely/not/here", nil))
}

func TestSystem_RefusedWhenRestricted(t *testing.T) {
	skipOnWindows(t)
	f, logs := newProcessFS(t)
	marker := filepath.Join(t.TempDir(), "ran")
	f.RegisterPath("/games/")

	assert.Equal(t, -1, f.SystemCommand("touch "+marker, false))
	assert.Equal(t, -1, f.SystemRun("/usr/bin/touch", []string{marker}))
	assert.Equal(t, exec.InvalidRequestID, f.SystemCommandAsync("touch "+marker))
	assert.Equal(t, exec.InvalidRequestID, f.SystemRunAsync("/usr/bin/touch", []string{marker}))

	f.Runner().Wait()
	assert.NoFileExists(t, marker)

	refused := logs.FilterMessage("Executing an external command is not allowed").All()
	require.Len(t, refused, 4)
	assert.Equal(t, string(verrors.CodeExecDisabled), refused[0].ContextMap()["code"])
	assert.Equal(t, float64(4), testutil.ToFloat64(f.metrics.accessDenied.WithLabelValues("exec")))
}

func TestBeginFrame_DeliversCompletions(t *testing.T) {
	skipOnWindows(t)
	f, _ := newProcessFS(t)
	if !f.Runner().AsyncEnabled() {
		t.Skip("built without async support")
	}

	var delivered []exec.Completion
	f.OnAsyncExecFinished(func(c exec.Completion) {
		delivered = append(delivered, c)
	})

	ids := []uint32{
		f.SystemCommandAsync("exit 0"),
		f.SystemCommandAsync("exit 7"),
		f.SystemRunAsync("/bin/sh", []string{"-c", "exit 9"}),
	}
	assert.Equal(t, []uint32{1, 2, 3}, ids)
	assert.Equal(t, float64(2), testutil.ToFloat64(f.metrics.asyncSubmitted.WithLabelValues("command")))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.asyncSubmitted.WithLabelValues("executable")))

	f.Runner().Wait()
	completions := f.BeginFrame()
	require.Len(t, completions, 3)
	assert.Equal(t, completions, delivered)

	codes := map[uint32]int{}
	for _, c := range completions {
		codes[c.RequestID] = c.ExitCode
	}
	assert.Equal(t, map[uint32]int{1: 0, 2: 7, 3: 9}, codes)

	assert.Empty(t, f.BeginFrame(), "each completion is delivered once")
	assert.Len(t, delivered, 3)
	assert.Equal(t, float64(3), testutil.ToFloat64(f.metrics.asyncCompleted))
	assert.Equal(t, float64(0), testutil.ToFloat64(f.metrics.asyncPending))
}

func TestBeginFrame_SubmissionOrder(t *testing.T) {
	skipOnWindows(t)
	f, _ := newProcessFS(t, exec.WithWorkers(1))
	if !f.Runner().AsyncEnabled() {
		t.Skip("built without async support")
	}

	for i := 0; i < 5; i++ {
		require.NotEqual(t, exec.InvalidRequestID, f.SystemCommandAsync("true"))
	}
	f.Runner().Wait()

	var ids []uint32
	for _, c := range f.BeginFrame() {
		ids = append(ids, c.RequestID)
	}
	assert.True(t, sort.SliceIsSorted(ids, func(i, j int) bool { return ids[i] < ids[j] }))
	assert.Len(t, ids, 5)
}

func TestBeginFrame_Empty(t *testing.T) {
	f, _ := newProcessFS(t)
	assert.Empty(t, f.BeginFrame())
}

func TestSystemAsync_Disabled(t *testing.T) {
	f, logs := newProcessFS(t, exec.WithAsync(false))

	assert.Equal(t, exec.InvalidRequestID, f.SystemCommandAsync("true"))
	assert.Equal(t, 1, logs.FilterMessage("Cannot run asynchronously: threading is disabled").Len())
	assert.Equal(t, float64(0), testutil.ToFloat64(f.metrics.asyncSubmitted.WithLabelValues("command")))
}

func TestHandleConsoleCommand(t *testing.T) {
	skipOnWindows(t)
	f, _ := newProcessFS(t)
	dir := t.TempDir()

	assert.True(t, f.ExecuteConsoleCommands())
	assert.False(t, f.HandleConsoleCommand("Script", "touch "+filepath.Join(dir, "wrong")))
	assert.NoFileExists(t, filepath.Join(dir, "wrong"))

	assert.True(t, f.HandleConsoleCommand(ConsoleTarget, "touch "+filepath.Join(dir, "right")))
	assert.FileExists(t, filepath.Join(dir, "right"))

	f.SetExecuteConsoleCommands(false)
	assert.False(t, f.HandleConsoleCommand(ConsoleTarget, "touch "+filepath.Join(dir, "off")))
	assert.NoFileExists(t, filepath.Join(dir, "off"))
}
