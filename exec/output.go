package exec

import (
	"bytes"
	"io"
	"sync"
)

// teeWriter writes every chunk to all writers in order. Nil writers are
// skipped.
type teeWriter struct {
	mu      sync.Mutex
	writers []io.Writer
}

func newTeeWriter(writers ...io.Writer) *teeWriter {
	tw := &teeWriter{}
	for _, w := range writers {
		if w != nil {
			tw.writers = append(tw.writers, w)
		}
	}
	return tw
}

func (tw *teeWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	for _, w := range tw.writers {
		n, err := w.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// captureBuffer is a bytes.Buffer safe for the concurrent stdout and stderr
// copiers of one process.
type captureBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *captureBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *captureBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// lineLogger forwards complete lines to a logger as they arrive. A trailing
// partial line is emitted by Flush.
type lineLogger struct {
	mu      sync.Mutex
	pending []byte
	emit    func(line string)
}

func newLineLogger(emit func(line string)) *lineLogger {
	return &lineLogger{emit: emit}
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = append(l.pending, p...)
	for {
		i := bytes.IndexByte(l.pending, '\n')
		if i < 0 {
			break
		}
		l.emit(string(bytes.TrimSuffix(l.pending[:i], []byte("\r"))))
		l.pending = l.pending[i+1:]
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (l *lineLogger) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.pending) > 0 {
		l.emit(string(l.pending))
		l.pending = nil
	}
}
