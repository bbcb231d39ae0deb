package exec

import (
	"math"
	"sync/atomic"

	verrors "github.com/jmgilman/go/vfs/errors"
	"go.uber.org/zap"
)

// InvalidRequestID is returned when an async request could not be queued.
// It is never assigned to a real request.
const InvalidRequestID uint32 = math.MaxUint32

// Completion reports a finished async request.
type Completion struct {
	RequestID uint32
	ExitCode  int
}

type request struct {
	id uint32
	// exitCode is written before completed is set and read only after
	// completed is observed.
	exitCode  int
	completed atomic.Bool
}

// RunCommandAsync queues commandLine to run through the platform shell with
// its output streamed to the runner's output writers. It returns the request
// ID, or InvalidRequestID when async requests are disabled.
func (r *Runner) RunCommandAsync(commandLine string) uint32 {
	return r.submit(func() int {
		return r.RunCommand(commandLine, false)
	})
}

// RunExecutableAsync queues the executable at path with args. It returns
// the request ID, or InvalidRequestID when async requests are disabled.
func (r *Runner) RunExecutableAsync(path string, args []string) uint32 {
	args = append([]string(nil), args...)
	return r.submit(func() int {
		return r.RunExecutable(path, args)
	})
}

func (r *Runner) submit(work func() int) uint32 {
	if !r.async {
		r.logger.Error("Cannot run asynchronously: threading is disabled",
			zap.String("code", string(verrors.CodeThreadingDisabled)))
		return InvalidRequestID
	}

	r.mu.Lock()
	req := &request{id: r.allocID()}
	r.requests = append(r.requests, req)
	r.mu.Unlock()

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		if err := r.sem.Acquire(r.ctx, 1); err != nil {
			req.exitCode = -1
			req.completed.Store(true)
			return
		}
		defer r.sem.Release(1)

		req.exitCode = work()
		req.completed.Store(true)
	}()

	return req.id
}

// allocID returns the next request ID. IDs start at 1 and skip
// InvalidRequestID when they wrap. Callers hold r.mu.
func (r *Runner) allocID() uint32 {
	r.nextID++
	if r.nextID == InvalidRequestID || r.nextID == 0 {
		r.nextID = 1
	}
	return r.nextID
}

// Drain removes every completed request and returns their completions in
// submission order. Each request is reported exactly once.
func (r *Runner) Drain() []Completion {
	r.mu.Lock()
	defer r.mu.Unlock()

	var done []Completion
	pending := r.requests[:0]
	for _, req := range r.requests {
		if req.completed.Load() {
			done = append(done, Completion{RequestID: req.id, ExitCode: req.exitCode})
			continue
		}
		pending = append(pending, req)
	}
	for i := len(pending); i < len(r.requests); i++ {
		r.requests[i] = nil
	}
	r.requests = pending
	return done
}

// Pending returns the number of requests not yet drained.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// Wait blocks until every submitted request has finished running.
// Completed requests still have to be collected with Drain.
func (r *Runner) Wait() {
	r.inflight.Wait()
}
