package sensitivedata

import (
	"io"
	"sync"
)

// ScrubFunc sanitizes a piece of text before it leaves the process.
type ScrubFunc func(string) string

// Writer wraps an io.Writer and redacts all data before writing.
// Thread-safe: can be used concurrently by multiple goroutines.
type Writer struct {
	underlying io.Writer
	scrub      ScrubFunc
	mu         sync.Mutex // Protects writes to underlying writer
}

// NewWriter creates a redacting writer that scrubs text through the
// given function before it reaches the underlying writer.
func NewWriter(w io.Writer, scrub ScrubFunc) *Writer {
	return &Writer{
		underlying: w,
		scrub:      scrub,
	}
}

// Write implements io.Writer, redacting data before passing it on.
func (w *Writer) Write(p []byte) (n int, err error) {
	// If no scrub function configured, pass through unchanged
	if w.scrub == nil {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.underlying.Write(p)
	}

	redacted := []byte(w.scrub(string(p)))

	w.mu.Lock()
	defer w.mu.Unlock()
	n, err = w.underlying.Write(redacted)

	// Return original length to caller (io.Writer contract expects len(p)).
	// This prevents short write errors even if redacted length differs.
	if err == nil {
		n = len(p)
	}

	return n, err
}
