package testutil

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestLogger creates a test logger that writes to t.Log() when the test
// runs with -v and discards output otherwise.
func NewTestLogger(t *testing.T) zerolog.Logger {
	t.Helper()
	if !testing.Verbose() {
		return zerolog.New(io.Discard)
	}
	return zerolog.New(&testLogWriter{t: t}).With().Timestamp().Logger()
}

// NewCapturingLogger creates a debug-level logger whose JSON lines are kept in
// the returned buffer, for assertions on log output.
func NewCapturingLogger(t *testing.T) (zerolog.Logger, *SyncBuffer) {
	t.Helper()
	buf := &SyncBuffer{}
	return zerolog.New(buf).Level(zerolog.DebugLevel), buf
}

// SyncBuffer is a bytes.Buffer safe for use from the watcher goroutine.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns the buffered output.
func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testLogWriter wraps testing.T to implement io.Writer.
type testLogWriter struct {
	t *testing.T
}

func (w *testLogWriter) Write(p []byte) (n int, err error) {
	w.t.Log(string(p))
	return len(p), nil
}
