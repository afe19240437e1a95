package gatelog

import "sync/atomic"

// Format selects how much of a record a sink renders.
type Format uint8

const (
	// FormatFull renders level, category, timestamp, location and message.
	FormatFull Format = iota
	// FormatMessageOnly renders the message alone.
	FormatMessageOnly
)

func (f Format) String() string {
	switch f {
	case FormatFull:
		return "full"
	case FormatMessageOnly:
		return "message"
	default:
		return "unknown"
	}
}

// InitFunc prepares a sink. It runs once, when the sink is registered by
// Core.Init, and receives the sink's init argument. A non-nil error rejects
// the registration.
type InitFunc func(arg any) error

// PublishFunc renders one record. The record is only valid for the duration of
// the call; implementations must copy anything they keep. Publish has no
// failure channel: a sink that cannot write drops the record.
type PublishFunc func(record *Record, format Format)

// SinkConfig describes a sink for NewSink.
type SinkConfig struct {
	Name    string
	Init    InitFunc
	InitArg any
	Format  Format
	Level   Level
	Publish PublishFunc
}

// Sink is a registered output destination with its own threshold.
type Sink struct {
	name    string
	init    InitFunc
	initArg any
	format  Format
	publish PublishFunc
	level   atomic.Uint32
}

// NewSink builds a sink from cfg. Missing capabilities are not rejected here;
// Core.Init refuses a sink without Init or Publish.
func NewSink(cfg SinkConfig) *Sink {
	s := &Sink{
		name:    cfg.Name,
		init:    cfg.Init,
		initArg: cfg.InitArg,
		format:  cfg.Format,
		publish: cfg.Publish,
	}
	s.level.Store(uint32(cfg.Level))
	return s
}

// NopInit is an InitFunc for sinks with nothing to prepare.
func NopInit(any) error { return nil }

// Name returns the sink name.
func (s *Sink) Name() string {
	return s.name
}

// Format returns the sink's configured format mode.
func (s *Sink) Format() Format {
	return s.format
}

// Level returns the current threshold.
func (s *Sink) Level() Level {
	return Level(s.level.Load())
}

// SetLevel replaces the threshold without validation.
func (s *Sink) SetLevel(level Level) {
	s.level.Store(uint32(level))
}

// Enabled reports whether level passes the sink gate.
func (s *Sink) Enabled(level Level) bool {
	return Level(s.level.Load()) >= level
}

func (s *Sink) valid() bool {
	return s != nil && s.init != nil && s.publish != nil
}

func (s *Sink) String() string {
	return s.name
}
