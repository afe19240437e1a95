package console

import (
	"io"
	"sync/atomic"
)

// WriteFailure describes one failed write of a rendered line.
type WriteFailure struct {
	Err       error
	Written   int
	Attempted int
}

// Stats captures aggregated failure counters of a console sink.
type Stats struct {
	Lines       uint64
	Failures    uint64
	ShortWrites uint64
}

// ObservedWriter wraps an io.Writer and records write failures. Sink publish
// has no error return, so this is how lost lines become visible.
type ObservedWriter struct {
	dst        io.Writer
	onFailure  func(WriteFailure)
	lines      atomic.Uint64
	failures   atomic.Uint64
	shortWrite atomic.Uint64
}

// NewObservedWriter wraps dst with failure observation hooks.
func NewObservedWriter(dst io.Writer, onFailure func(WriteFailure)) *ObservedWriter {
	if dst == nil {
		dst = io.Discard
	}
	return &ObservedWriter{
		dst:       dst,
		onFailure: onFailure,
	}
}

func (w *ObservedWriter) Write(p []byte) (int, error) {
	if w == nil || w.dst == nil {
		return len(p), nil
	}
	w.lines.Add(1)

	n, err := w.dst.Write(p)
	if n != len(p) {
		w.shortWrite.Add(1)
		if err == nil {
			err = io.ErrShortWrite
		}
	}

	if err != nil {
		w.failures.Add(1)
		if w.onFailure != nil {
			w.onFailure(WriteFailure{
				Err:       err,
				Written:   n,
				Attempted: len(p),
			})
		}
	}

	return n, err
}

// Stats returns cumulative counters.
func (w *ObservedWriter) Stats() Stats {
	if w == nil {
		return Stats{}
	}
	return Stats{
		Lines:       w.lines.Load(),
		Failures:    w.failures.Load(),
		ShortWrites: w.shortWrite.Load(),
	}
}

// Unwrap returns the wrapped destination.
func (w *ObservedWriter) Unwrap() io.Writer {
	return w.dst
}

// Close closes the wrapped destination when the console sink owns it.
func (w *ObservedWriter) Close() error {
	if w == nil {
		return nil
	}
	return closeOutput(w.dst)
}
