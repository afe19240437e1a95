// Package file is a gatelog sink that appends plain console-layout lines to a
// size-rotated log file.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"pkt.systems/gatelog"
	"pkt.systems/gatelog/sink/console"
)

// Config describes the file and its rotation policy.
type Config struct {
	// Name identifies the sink in the registry. Defaults to "file".
	Name string
	// Path is the active log file. Required.
	Path string
	// Level is the initial sink threshold; zero selects LevelMax.
	Level gatelog.Level
	// Format selects full or message-only lines.
	Format gatelog.Format
	// TimeFormat and UTC are passed to the console renderer.
	TimeFormat string
	UTC        bool

	// MaxSizeMB is the size in megabytes that triggers rotation. Zero means
	// lumberjack's default of 100.
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep; zero keeps all.
	MaxBackups int
	// MaxAgeDays removes rotated files older than this; zero disables.
	MaxAgeDays int
	// Compress gzips rotated files.
	Compress bool
	// LocalTime names rotated files with local rather than UTC timestamps.
	LocalTime bool
}

// DefaultConfig mirrors the rotation defaults used for field devices with
// small flash partitions.
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// File is a rotating file sink. Register Sink() with gatelog.Core.Init and
// Close it on shutdown.
type File struct {
	cfg      Config
	sink     *gatelog.Sink
	out      *lumberjack.Logger
	renderer *console.Console
	opened   atomic.Bool
}

// New returns a file sink for cfg. Nothing is opened until the sink
// initializer runs during Core.Init.
func New(cfg Config) *File {
	if cfg.Name == "" {
		cfg.Name = "file"
	}
	if cfg.Level == gatelog.LevelOff {
		cfg.Level = gatelog.LevelMax
	}
	f := &File{
		cfg: cfg,
		out: &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		},
	}
	f.renderer = console.New(f.out, console.Options{
		Name:            cfg.Name,
		Level:           cfg.Level,
		Format:          cfg.Format,
		TimeFormat:      cfg.TimeFormat,
		UTC:             cfg.UTC,
		NoColor:         true,
		TrailingNewline: true,
	})
	f.sink = gatelog.NewSink(gatelog.SinkConfig{
		Name:    cfg.Name,
		Init:    f.init,
		InitArg: cfg,
		Format:  cfg.Format,
		Level:   cfg.Level,
		Publish: f.publish,
	})
	return f
}

// Sink returns the registrable sink.
func (f *File) Sink() *gatelog.Sink {
	return f.sink
}

// Stats returns the write counters of the underlying renderer.
func (f *File) Stats() console.Stats {
	return f.renderer.Stats()
}

// Rotate closes the active file and starts a new one.
func (f *File) Rotate() error {
	return f.out.Rotate()
}

// Close closes the active file. A record published afterwards reopens it.
func (f *File) Close() error {
	return f.out.Close()
}

func (f *File) init(arg any) error {
	cfg, ok := arg.(Config)
	if !ok {
		return fmt.Errorf("file sink: unexpected init argument %T", arg)
	}
	if cfg.Path == "" {
		return errors.New("file sink: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return fmt.Errorf("file sink: create log directory: %w", err)
	}
	// Open eagerly so a bad path fails Init instead of every publish.
	if _, err := f.out.Write(nil); err != nil {
		return fmt.Errorf("file sink: open %q: %w", cfg.Path, err)
	}
	f.opened.Store(true)
	return nil
}

func (f *File) publish(record *gatelog.Record, format gatelog.Format) {
	if !f.opened.Load() {
		return
	}
	f.renderer.Publish(record, format)
}
