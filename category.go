package gatelog

import "sync/atomic"

// Category is a named severity gate, usually one per subsystem. Dispatch
// identifies a category by pointer; the name exists for administrative
// lookup only.
//
// The threshold may be changed at any time. Reads and writes are atomic but
// otherwise unsynchronized: a dispatch racing with SetLevel sees either the old
// or the new threshold.
type Category struct {
	name  string
	level atomic.Uint32
}

// NewCategory returns a category named name with threshold level.
func NewCategory(name string, level Level) *Category {
	c := &Category{name: name}
	c.level.Store(uint32(level))
	return c
}

// Name returns the category name.
func (c *Category) Name() string {
	return c.name
}

// Level returns the current threshold.
func (c *Category) Level() Level {
	return Level(c.level.Load())
}

// SetLevel replaces the threshold. It performs no validation; use
// Core.SetCategoryLevel for a checked update.
func (c *Category) SetLevel(level Level) {
	c.level.Store(uint32(level))
}

// Enabled reports whether level passes the category gate.
func (c *Category) Enabled(level Level) bool {
	return Level(c.level.Load()) >= level
}

func (c *Category) String() string {
	return c.name
}
