package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ParseOutput resolves an output target:
//
//	stdout | stderr | default       the named stream (default is base)
//	<path>                          append to the file at path
//	stdout+<path> | stderr+<path>   tee to the stream and the file
//	default+<path>                  tee to base and the file
//
// Files opened here are owned by the returned writer and closed by
// Console.Close.
func ParseOutput(value string, base io.Writer) (io.Writer, error) {
	trimmed := strings.TrimSpace(value)
	if base == nil {
		base = io.Discard
	}
	if trimmed == "" {
		return base, nil
	}
	lowered := strings.ToLower(trimmed)
	switch lowered {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "default":
		return base, nil
	}
	for _, stream := range []struct {
		prefix string
		writer io.Writer
	}{
		{"stdout+", os.Stdout},
		{"stderr+", os.Stderr},
		{"default+", base},
	} {
		if !strings.HasPrefix(lowered, stream.prefix) {
			continue
		}
		path := strings.TrimSpace(trimmed[len(stream.prefix):])
		if path == "" {
			return stream.writer, nil
		}
		file, err := openOutputFile(path)
		if err != nil {
			return base, err
		}
		return newOwnedOutput(newTeeWriter(stream.writer, file), file), nil
	}
	file, err := openOutputFile(trimmed)
	if err != nil {
		return base, err
	}
	return newOwnedOutput(file, file), nil
}

func openOutputFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open console output %q: %w", path, err)
	}
	return file, nil
}

type teeWriter struct {
	writers []io.Writer
}

func newTeeWriter(writers ...io.Writer) io.Writer {
	return &teeWriter{writers: writers}
}

func (t *teeWriter) Write(p []byte) (int, error) {
	for _, w := range t.writers {
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

type ownedCloser interface {
	ownedClose() error
}

// ownedOutput marks a writer whose closer belongs to the console sink.
type ownedOutput struct {
	writer   io.Writer
	closer   io.Closer
	closeErr error
	once     sync.Once
}

func newOwnedOutput(writer io.Writer, closer io.Closer) io.Writer {
	if writer == nil {
		writer = io.Discard
	}
	if closer == nil {
		return writer
	}
	if existing, ok := writer.(*ownedOutput); ok {
		return existing
	}
	return &ownedOutput{writer: writer, closer: closer}
}

func (o *ownedOutput) Write(p []byte) (int, error) {
	return o.writer.Write(p)
}

func (o *ownedOutput) Unwrap() io.Writer {
	return o.writer
}

func (o *ownedOutput) ownedClose() error {
	o.once.Do(func() {
		o.closeErr = o.closer.Close()
	})
	return o.closeErr
}

// closeOutput closes w only when the sink opened it; caller-supplied writers
// and the standard streams are left alone.
func closeOutput(w io.Writer) error {
	if w == nil || w == os.Stdout || w == os.Stderr {
		return nil
	}
	if c, ok := w.(ownedCloser); ok {
		return c.ownedClose()
	}
	return nil
}
