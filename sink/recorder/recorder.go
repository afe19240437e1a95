// Package recorder is an in-memory gatelog sink for tests. It keeps a copy of
// every record it receives.
package recorder

import (
	"sync"
	"time"

	"pkt.systems/gatelog"
)

// Entry is a retained copy of a published record with the message already
// formatted.
type Entry struct {
	Time time.Time
	// Category is the record's category, compared by identity.
	Category     *gatelog.Category
	CategoryName string
	Level        gatelog.Level
	Format       gatelog.Format
	Message      string
	Location     *gatelog.Location
}

// Recorder collects entries. It is safe for concurrent publishes.
type Recorder struct {
	sink *gatelog.Sink

	mu      sync.Mutex
	entries []Entry
	inits   int
	initErr error
}

// Option customizes a Recorder.
type Option func(*config)

type config struct {
	format  gatelog.Format
	level   gatelog.Level
	initErr error
}

// WithFormat sets the sink's record format.
func WithFormat(format gatelog.Format) Option {
	return func(cfg *config) {
		cfg.format = format
	}
}

// WithLevel sets the initial sink threshold; the default is LevelMax.
func WithLevel(level gatelog.Level) Option {
	return func(cfg *config) {
		cfg.level = level
	}
}

// WithInitError makes the sink initializer fail with err.
func WithInitError(err error) Option {
	return func(cfg *config) {
		cfg.initErr = err
	}
}

// New returns a recorder registered under name.
func New(name string, opts ...Option) *Recorder {
	cfg := config{level: gatelog.LevelMax}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	r := &Recorder{initErr: cfg.initErr}
	r.sink = gatelog.NewSink(gatelog.SinkConfig{
		Name:    name,
		Init:    r.init,
		Format:  cfg.format,
		Level:   cfg.level,
		Publish: r.publish,
	})
	return r
}

// Sink returns the registrable sink.
func (r *Recorder) Sink() *gatelog.Sink {
	return r.sink
}

// Entries returns a copy of the recorded entries in publish order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the recorded messages in publish order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, entry := range r.entries {
		out[i] = entry.Message
	}
	return out
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Inits returns how many times the sink initializer ran.
func (r *Recorder) Inits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inits
}

// Reset drops all recorded entries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}

func (r *Recorder) init(any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inits++
	return r.initErr
}

func (r *Recorder) publish(record *gatelog.Record, format gatelog.Format) {
	entry := Entry{
		Time:         record.Time,
		Category:     record.Category,
		CategoryName: record.CategoryName(),
		Level:        record.Level,
		Format:       format,
		Message:      record.Message(),
	}
	if record.Location != nil {
		loc := *record.Location
		entry.Location = &loc
	}
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
}
