// Package exec runs external processes for the virtual filesystem.
//
// Two layers are provided. Command is a small os/exec backed Executor with
// output capture and passthrough:
//
//	res, err := exec.New(exec.WithInheritEnv()).
//		WithDir("/games/mygame").
//		Run("git", "status")
//
// Runner builds on an Executor to offer the engine-facing operations: run a
// shell command line or an executable and get its exit code, either blocking
// or as an asynchronous request collected later with Drain:
//
//	r := exec.NewRunner(exec.WithLogger(logger), exec.WithWorkers(4))
//
//	code := r.RunCommand("make assets", true) // blocks, output logged
//
//	id := r.RunCommandAsync("bake-lightmaps level1")
//	// once per frame:
//	for _, c := range r.Drain() {
//		fmt.Println(c.RequestID, c.ExitCode)
//	}
//
// Executor configuration methods return copies, so a single executor can be
// shared by concurrent async requests.
//
// # Exit codes
//
// Every Runner operation returns the process exit code. -1 means the process
// could not be started (missing executable, failed fork or, with capture
// enabled, no temporary file for stderr). Async submission returns
// InvalidRequestID when async execution is disabled, either with
// WithAsync(false) or by building with the nothreads tag.
//
// # Errors
//
// Command.Run returns an *ExecError for a non-zero exit or a failed start.
// ExecError.Started distinguishes the two:
//
//	var execErr *exec.ExecError
//	if errors.As(err, &execErr) && !execErr.Started() {
//		// binary missing
//	}
package exec
