package gatelog

// IsActive reports whether level passes category's gate. Call sites use it to
// skip expensive argument preparation:
//
//	if gatelog.IsActive(net, gatelog.LevelDebug) {
//		core.Debug(net, "routes: %v", dumpRoutes())
//	}
func IsActive(category *Category, level Level) bool {
	return category != nil && category.Enabled(level)
}

// Enabled reports whether a call at level against category would reach the
// sink fan-out: the core is initialized, the level is dispatchable and the
// category gate is open. Sink thresholds are not considered.
func (c *Core) Enabled(category *Category, level Level) bool {
	if !c.initialized || category == nil {
		return false
	}
	if level == LevelOff || level > LevelMax || elided(level, c.maxLevel) {
		return false
	}
	return category.Enabled(level)
}

// Log dispatches a message at level. It returns ErrNotInitialized before Init
// and ErrInvalidParameter for a nil category or a level outside the scale.
// Calls that are filtered out, compiled out or at LevelOff return nil without
// formatting anything or reading the clock.
func (c *Core) Log(category *Category, level Level, format string, args ...any) error {
	return c.dispatch(category, level, format, args)
}

// Logv is Log with a prepared argument list, for wrapping by other logging
// front ends.
func (c *Core) Logv(category *Category, level Level, format string, args []any) error {
	return c.dispatch(category, level, format, args)
}

func (c *Core) dispatch(category *Category, level Level, format string, args []any) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if level > LevelMax {
		return invalidf("level %s", level)
	}
	// Retired and compiled-out calls never look at their arguments.
	if level == LevelOff || elided(level, c.maxLevel) {
		return nil
	}
	if category == nil {
		return invalidf("nil category")
	}
	if !category.Enabled(level) {
		return nil
	}
	record := Record{
		Time:     c.clock.Now(),
		Category: category,
		Level:    level,
		Format:   format,
		Args:     args,
	}
	if c.location {
		location := callerLocation()
		record.Location = &location
	}
	c.fanOut(&record)
	return nil
}

// fanOut gates every sink on the level the event was dispatched at, so a sink
// writing to the shared record cannot change who else receives it.
func (c *Core) fanOut(record *Record) {
	level := record.Level
	for _, sink := range c.sinks {
		if sink.Enabled(level) {
			publish(sink, record)
		}
	}
}

// publish shields the fan-out from a panicking sink.
func publish(sink *Sink, record *Record) {
	defer func() {
		_ = recover()
	}()
	sink.publish(record, sink.format)
}
