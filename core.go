package gatelog

import "fmt"

// Config holds the construction-time settings of a Core.
type Config struct {
	// Clock supplies record timestamps. Defaults to SystemClock.
	Clock TimeSource
	// MaxLevel caps the levels this core dispatches, on top of the
	// link-time maximum. It can only lower the compiled-in limit.
	MaxLevel Level
	// Location enables source location capture. Defaults to the link-time
	// setting; production binaries should not mix cores with different
	// values.
	Location bool
}

// Option customizes NewCore.
type Option func(*Config)

// WithClock sets the time source.
func WithClock(clock TimeSource) Option {
	return func(cfg *Config) {
		cfg.Clock = clock
	}
}

// WithMaxLevel lowers the most verbose level the core dispatches. Values
// above the compiled-in maximum are clamped to it.
func WithMaxLevel(level Level) Option {
	return func(cfg *Config) {
		cfg.MaxLevel = level
	}
}

// WithLocation overrides the link-time location capture setting.
func WithLocation(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Location = enabled
	}
}

// Core is the registry and dispatch context. A process normally creates one
// during start-up, registers its categories and sinks with Init, and passes
// the core to every component that logs.
//
// Init must be called from a single goroutine before any logging. After
// that, dispatch is safe from any goroutine as long as sinks are; thresholds
// may be changed concurrently (see Category).
type Core struct {
	clock       TimeSource
	maxLevel    Level
	location    bool
	initialized bool
	categories  []*Category
	sinks       []*Sink
}

// NewCore returns an uninitialized core.
func NewCore(opts ...Option) *Core {
	cfg := Config{
		Clock:    SystemClock,
		MaxLevel: compiledLevel,
		Location: compiledLocation,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock
	}
	if cfg.MaxLevel > compiledLevel {
		cfg.MaxLevel = compiledLevel
	}
	return &Core{
		clock:    cfg.Clock,
		maxLevel: cfg.MaxLevel,
		location: cfg.Location,
	}
}

// Init registers categories and sinks and runs every sink initializer once,
// in order. The slices are kept, not copied; the caller must not reorder or
// shrink them afterwards.
//
// Init fails with ErrInvalidParameter when an entry is nil, when a sink lacks
// its Init or Publish capability, or when a sink initializer returns an error;
// the core then stays uninitialized and Init may be retried. A second call
// after success fails with ErrAlreadyInitialized and changes nothing.
func (c *Core) Init(categories []*Category, sinks []*Sink) error {
	if c.initialized {
		return ErrAlreadyInitialized
	}
	for i, category := range categories {
		if category == nil {
			return invalidf("category %d is nil", i)
		}
	}
	for i, sink := range sinks {
		if !sink.valid() {
			return invalidf("sink %d %s", i, describeInvalidSink(sink))
		}
	}
	for _, sink := range sinks {
		if err := sink.init(sink.initArg); err != nil {
			return fmt.Errorf("%w: init sink %q: %w", ErrInvalidParameter, sink.name, err)
		}
	}
	c.categories = categories
	c.sinks = sinks
	c.initialized = true
	return nil
}

func describeInvalidSink(s *Sink) string {
	switch {
	case s == nil:
		return "is nil"
	case s.init == nil:
		return fmt.Sprintf("%q has no initializer", s.name)
	default:
		return fmt.Sprintf("%q has no publish function", s.name)
	}
}

// Initialized reports whether Init has succeeded.
func (c *Core) Initialized() bool {
	return c.initialized
}

// MaxLevel returns the most verbose level this core dispatches.
func (c *Core) MaxLevel() Level {
	return c.maxLevel
}

// LocationEnabled reports whether this core captures call locations.
func (c *Core) LocationEnabled() bool {
	return c.location
}

// Categories returns the registered categories, or nil before Init. The
// categories themselves may be mutated; the slice must not be.
func (c *Core) Categories() []*Category {
	return c.categories
}

// Sinks returns the registered sinks, or nil before Init.
func (c *Core) Sinks() []*Sink {
	return c.sinks
}

// Category finds a registered category by name.
func (c *Core) Category(name string) (*Category, bool) {
	for _, category := range c.categories {
		if category.name == name {
			return category, true
		}
	}
	return nil, false
}

// Sink finds a registered sink by name.
func (c *Core) Sink(name string) (*Sink, bool) {
	for _, sink := range c.sinks {
		if sink.name == name {
			return sink, true
		}
	}
	return nil, false
}

// SetLevels sets every category threshold to level. It fails with
// ErrInvalidParameter when level exceeds MaxLevel and with ErrNotInitialized
// before Init; in both cases no threshold changes.
func (c *Core) SetLevels(level Level) error {
	if level > c.maxLevel {
		return invalidf("level %s above compiled maximum %s", level, c.maxLevel)
	}
	if !c.initialized {
		return ErrNotInitialized
	}
	for _, category := range c.categories {
		category.SetLevel(level)
	}
	return nil
}

// SetCategoryLevel sets the threshold of the category called name. Like
// SetLevels it refuses levels above the core's maximum.
func (c *Core) SetCategoryLevel(name string, level Level) error {
	if level > c.maxLevel {
		return invalidf("level %s above compiled maximum %s", level, c.maxLevel)
	}
	if !c.initialized {
		return ErrNotInitialized
	}
	category, ok := c.Category(name)
	if !ok {
		return invalidf("unknown category %q", name)
	}
	category.SetLevel(level)
	return nil
}

// SetSinkLevel sets the threshold of the sink called name.
func (c *Core) SetSinkLevel(name string, level Level) error {
	if !level.Valid() {
		return invalidf("level %s", level)
	}
	if !c.initialized {
		return ErrNotInitialized
	}
	sink, ok := c.Sink(name)
	if !ok {
		return invalidf("unknown sink %q", name)
	}
	sink.SetLevel(level)
	return nil
}
