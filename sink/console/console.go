// Package console is a gatelog sink that renders records as human-readable
// lines on a terminal, pipe or file.
//
// Full records render as
//
//	\n[LEVEL][category][timestamp]file:line(function) - message
//
// where file keeps its last 15 bytes and function its last 10, and the
// location part is omitted when the record carries none. Message-only records
// render as "\n" followed by the message. TrailingNewline moves the newline
// to the end of the line, which is friendlier to line-oriented collectors.
package console

import (
	"io"
	"os"
	"sync/atomic"

	"pkt.systems/gatelog"
	"pkt.systems/gatelog/ansi"
)

const (
	// MaxFileLength is how many trailing bytes of a source path are shown.
	MaxFileLength = 15
	// MaxFunctionLength is how many trailing bytes of a function name are shown.
	MaxFunctionLength = 10
)

// Options controls how the console sink formats and filters output.
type Options struct {
	// Name identifies the sink in the registry. Defaults to "console".
	Name string

	// Level is the initial sink threshold. The zero value (LevelOff) selects
	// LevelMax; lower the threshold after creation to start silent.
	Level gatelog.Level

	// Format selects full or message-only lines.
	Format gatelog.Format

	// TimeFormat is a time layout for the timestamp field. When empty the
	// timestamp is rendered as Unix milliseconds.
	TimeFormat string

	// UTC renders layout-formatted timestamps in UTC.
	UTC bool

	// NoColor forces colour escape codes off regardless of terminal detection.
	NoColor bool

	// ForceColor bypasses terminal detection and emits colour even when the
	// destination is not a TTY.
	ForceColor bool

	// Palette overrides the ANSI palette. When nil the ansi package variables
	// are read on every line, so ansi.SetPalette takes effect immediately.
	Palette *ansi.Palette

	// TrailingNewline ends lines with '\n' instead of starting them with one.
	TrailingNewline bool

	// OnWriteFailure is called for every failed or short write.
	OnWriteFailure func(WriteFailure)
}

// Console is a console sink. Register Sink() with gatelog.Core.Init.
type Console struct {
	sink     *gatelog.Sink
	out      *ObservedWriter
	opts     Options
	color    atomic.Bool
	lineHint atomic.Int64
}

// New returns a console sink writing to w. A nil w discards output. Colour is
// decided by the sink initializer when the sink is registered.
func New(w io.Writer, opts Options) *Console {
	if w == nil {
		w = io.Discard
	}
	if opts.Name == "" {
		opts.Name = "console"
	}
	if opts.Level == gatelog.LevelOff {
		opts.Level = gatelog.LevelMax
	}
	c := &Console{
		out:  NewObservedWriter(w, opts.OnWriteFailure),
		opts: opts,
	}
	c.sink = gatelog.NewSink(gatelog.SinkConfig{
		Name:    opts.Name,
		Init:    c.init,
		InitArg: w,
		Format:  opts.Format,
		Level:   opts.Level,
		Publish: c.Publish,
	})
	return c
}

// Stdout returns a full-format console sink on os.Stdout.
func Stdout() *Console {
	return New(os.Stdout, Options{Name: "stdout"})
}

// Stderr returns a full-format console sink on os.Stderr.
func Stderr() *Console {
	return New(os.Stderr, Options{Name: "stderr"})
}

// Sink returns the registrable sink.
func (c *Console) Sink() *gatelog.Sink {
	return c.sink
}

// Stats returns the write counters.
func (c *Console) Stats() Stats {
	return c.out.Stats()
}

// Close releases an output opened by ParseOutput or NewFromEnv. Caller
// supplied writers are not closed.
func (c *Console) Close() error {
	return c.out.Close()
}

func (c *Console) init(arg any) error {
	w, _ := arg.(io.Writer)
	c.color.Store(!c.opts.NoColor && (c.opts.ForceColor || isTerminal(w)))
	return nil
}

func (c *Console) palette() ansi.Palette {
	if c.opts.Palette != nil {
		return *c.opts.Palette
	}
	return ansi.Snapshot()
}

// Publish renders record in format and writes it as one line. It is the
// sink's PublishFunc, exported so wrapping sinks can reuse the renderer.
func (c *Console) Publish(record *gatelog.Record, format gatelog.Format) {
	lw := acquireLineWriter(c.out)
	if hint := c.lineHint.Load(); hint > 0 {
		lw.preallocate(int(hint))
	}
	var palette ansi.Palette
	color := c.color.Load()
	if color {
		palette = c.palette()
	}
	if !c.opts.TrailingNewline {
		lw.writeByte('\n')
	}
	if format == gatelog.FormatMessageOnly {
		c.writeMessage(lw, record, color, palette)
	} else {
		c.writeFull(lw, record, color, palette)
	}
	if c.opts.TrailingNewline {
		lw.writeByte('\n')
	}
	lw.commit()
	updateLineHint(&c.lineHint, lw.lastLen)
	releaseLineWriter(lw)
}

func (c *Console) writeFull(lw *lineWriter, record *gatelog.Record, color bool, palette ansi.Palette) {
	lw.writeByte('[')
	writeColored(lw, color, levelColor(palette, record.Level), record.Level.String())
	lw.writeString("][")
	writeColored(lw, color, palette.Category, record.CategoryName())
	lw.writeString("][")
	if color {
		lw.writeString(palette.Timestamp)
	}
	lw.buf = appendTimestamp(lw.buf, record.Time, c.opts.TimeFormat, c.opts.UTC)
	if color {
		lw.writeString(ansi.Reset)
	}
	lw.writeByte(']')
	if loc := record.Location; loc != nil {
		if color {
			lw.writeString(palette.Location)
		}
		lw.writeTail(loc.File, MaxFileLength)
		lw.writeByte(':')
		lw.writeInt(int64(loc.Line))
		lw.writeByte('(')
		lw.writeTail(loc.Function, MaxFunctionLength)
		lw.writeByte(')')
		if color {
			lw.writeString(ansi.Reset)
		}
	}
	lw.writeString(" - ")
	c.writeMessage(lw, record, color, palette)
}

func (c *Console) writeMessage(lw *lineWriter, record *gatelog.Record, color bool, palette ansi.Palette) {
	if color {
		lw.writeString(palette.Message)
	}
	lw.buf = record.AppendMessage(lw.buf)
	if color {
		lw.writeString(ansi.Reset)
	}
}

func writeColored(lw *lineWriter, color bool, code, text string) {
	if !color || code == "" {
		lw.writeString(text)
		return
	}
	lw.writeString(code)
	lw.writeString(text)
	lw.writeString(ansi.Reset)
}

func levelColor(p ansi.Palette, level gatelog.Level) string {
	switch level {
	case gatelog.LevelFatal:
		return p.Fatal
	case gatelog.LevelError:
		return p.Error
	case gatelog.LevelWarn:
		return p.Warn
	case gatelog.LevelInfo:
		return p.Info
	case gatelog.LevelDebug:
		return p.Debug
	case gatelog.LevelTrace:
		return p.Trace
	case gatelog.LevelTest:
		return p.Test
	default:
		return ""
	}
}
