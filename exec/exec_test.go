package exec

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestCommand_Run(t *testing.T) {
	skipOnWindows(t)

	result, err := New().Run("echo", "hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Stdout, "hello world") {
		t.Errorf("expected stdout to contain 'hello world', got: %s", result.Stdout)
	}
	if result.ExitCode != 0 {
		t.Errorf("expected exit code 0, got: %d", result.ExitCode)
	}
}

func TestCommand_NonZeroExit(t *testing.T) {
	skipOnWindows(t)

	result, err := New().Run("sh", "-c", "echo oops >&2; exit 3")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got: %T", err)
	}
	if execErr.ExitCode != 3 || result.ExitCode != 3 {
		t.Errorf("expected exit code 3, got: %d / %d", execErr.ExitCode, result.ExitCode)
	}
	if !execErr.Started() {
		t.Error("expected Started() to be true for a process that ran")
	}
	if !strings.Contains(execErr.Stderr, "oops") {
		t.Errorf("expected stderr to contain 'oops', got: %s", execErr.Stderr)
	}
}

func TestCommand_SpawnFailure(t *testing.T) {
	result, err := New().Run("/definitely/not/a/real/binary")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got: %T", err)
	}
	if execErr.Started() {
		t.Error("expected Started() to be false")
	}
	if result.ExitCode != -1 {
		t.Errorf("expected exit code -1, got: %d", result.ExitCode)
	}
}

func TestCommand_NoArgs(t *testing.T) {
	if _, err := New().Run(); err == nil {
		t.Fatal("expected error for empty argv")
	}
}

func TestCommand_WithDirAndEnv(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	result, err := New().
		WithDir(dir).
		WithEnv(map[string]string{"VFS_TEST_VAR": "test_value"}).
		Run("sh", "-c", "pwd; echo $VFS_TEST_VAR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Stdout, "test_value") {
		t.Errorf("expected stdout to contain 'test_value', got: %s", result.Stdout)
	}
	// Temp dirs may sit behind a symlink such as /private on macOS.
	if !strings.Contains(result.Stdout, strings.TrimPrefix(dir, "/private")) {
		t.Errorf("expected stdout to contain %q, got: %s", dir, result.Stdout)
	}
}

func TestCommand_WithIsCopy(t *testing.T) {
	skipOnWindows(t)

	base := New()
	_ = base.WithEnv(map[string]string{"VFS_LEAK": "1"})

	result, err := base.Run("sh", "-c", "echo \"[$VFS_LEAK]\"")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Stdout, "[]") {
		t.Errorf("expected configuration not to leak into the base command, got: %s", result.Stdout)
	}
}

func TestCommand_Passthrough(t *testing.T) {
	skipOnWindows(t)

	var stdout, stderr bytes.Buffer
	result, err := New().
		WithPassthrough().
		WithStdout(&stdout).
		WithStderr(&stderr).
		Run("sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stdout.String() != "out\n" {
		t.Errorf("expected passthrough stdout 'out\\n', got: %q", stdout.String())
	}
	if stderr.String() != "err\n" {
		t.Errorf("expected passthrough stderr 'err\\n', got: %q", stderr.String())
	}
	if result.Stdout != "out\n" || result.Stderr != "err\n" {
		t.Errorf("expected output to also be captured, got: %q / %q", result.Stdout, result.Stderr)
	}
	if !strings.Contains(result.Combined, "out") || !strings.Contains(result.Combined, "err") {
		t.Errorf("expected combined output, got: %q", result.Combined)
	}
}

func TestCommand_ContextCancel(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := New(WithContext(ctx)).Run("sleep", "5")
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if time.Since(start) > 3*time.Second {
		t.Errorf("expected process to be killed promptly, took %v", time.Since(start))
	}
}

func TestCommand_Clone(t *testing.T) {
	skipOnWindows(t)

	base := New(WithEnv(map[string]string{"A": "1"}))
	clone := base.Clone().WithEnv(map[string]string{"B": "2"})

	result, err := clone.Run("sh", "-c", "echo $A$B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(result.Stdout) != "12" {
		t.Errorf("expected '12', got: %q", result.Stdout)
	}
	if len(base.env) != 1 {
		t.Errorf("expected base env untouched, got: %v", base.env)
	}
}

func TestLineLogger(t *testing.T) {
	var lines []string
	ll := newLineLogger(func(line string) { lines = append(lines, line) })

	_, _ = ll.Write([]byte("first\nsec"))
	_, _ = ll.Write([]byte("ond\r\nthird"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 complete lines before flush, got: %v", lines)
	}
	ll.Flush()

	want := []string{"first", "second", "third"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("expected %v, got: %v", want, lines)
	}
}
