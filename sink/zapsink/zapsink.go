// Package zapsink forwards gatelog records to a zap logger, for firmware
// that shares a process with services already logging through zap.
package zapsink

import (
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pkt.systems/gatelog"
)

// New returns a sink named name that forwards to logger. Full-format records
// carry category, glevel and, when captured, caller fields; message-only
// records carry only the message.
func New(name string, logger *zap.Logger, level gatelog.Level) *gatelog.Sink {
	return NewWithFormat(name, logger, level, gatelog.FormatFull)
}

// NewWithFormat is New with an explicit record format.
func NewWithFormat(name string, logger *zap.Logger, level gatelog.Level, format gatelog.Format) *gatelog.Sink {
	s := &zapSink{}
	return gatelog.NewSink(gatelog.SinkConfig{
		Name:    name,
		Init:    s.init,
		InitArg: logger,
		Format:  format,
		Level:   level,
		Publish: s.publish,
	})
}

type zapSink struct {
	logger *zap.Logger
}

func (s *zapSink) init(arg any) error {
	logger, _ := arg.(*zap.Logger)
	if logger == nil {
		return errors.New("zap sink: nil logger")
	}
	// Caller is taken from the record, not from zap's own stack walk.
	s.logger = logger.WithOptions(zap.WithCaller(false))
	return nil
}

func (s *zapSink) publish(record *gatelog.Record, format gatelog.Format) {
	zl := ZapLevel(record.Level)
	ce := s.logger.Check(zl, "")
	if ce == nil {
		return
	}
	// Formatted only once zap has accepted the level.
	ce.Message = record.Message()
	if format == gatelog.FormatMessageOnly {
		ce.Write()
		return
	}
	ce.Time = record.Time
	fields := make([]zap.Field, 0, 3)
	fields = append(fields,
		zap.String("category", record.CategoryName()),
		zap.Stringer("glevel", record.Level),
	)
	if loc := record.Location; loc != nil {
		fields = append(fields, zap.Stringer("caller", loc))
	}
	ce.Write(fields...)
}

// ZapLevel maps a gatelog level to the zap level it is logged at. Fatal maps
// to ErrorLevel since zap's FatalLevel exits the process.
func ZapLevel(level gatelog.Level) zapcore.Level {
	switch level {
	case gatelog.LevelFatal, gatelog.LevelError:
		return zapcore.ErrorLevel
	case gatelog.LevelWarn:
		return zapcore.WarnLevel
	case gatelog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
