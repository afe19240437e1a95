package gatelog

// Fatal logs at LevelFatal. Unlike general-purpose loggers it does not exit.
func (c *Core) Fatal(category *Category, format string, args ...any) error {
	return c.dispatch(category, LevelFatal, format, args)
}

// Error logs at LevelError.
func (c *Core) Error(category *Category, format string, args ...any) error {
	return c.dispatch(category, LevelError, format, args)
}

// Warn logs at LevelWarn.
func (c *Core) Warn(category *Category, format string, args ...any) error {
	return c.dispatch(category, LevelWarn, format, args)
}

// Info logs at LevelInfo.
func (c *Core) Info(category *Category, format string, args ...any) error {
	return c.dispatch(category, LevelInfo, format, args)
}

// Debug logs at LevelDebug.
func (c *Core) Debug(category *Category, format string, args ...any) error {
	return c.dispatch(category, LevelDebug, format, args)
}

// Trace logs at LevelTrace.
func (c *Core) Trace(category *Category, format string, args ...any) error {
	return c.dispatch(category, LevelTrace, format, args)
}

// Test logs at LevelTest, which is never compiled out.
func (c *Core) Test(category *Category, format string, args ...any) error {
	return c.dispatch(category, LevelTest, format, args)
}

// Fatalv is Fatal with a prepared argument list.
func (c *Core) Fatalv(category *Category, format string, args []any) error {
	return c.dispatch(category, LevelFatal, format, args)
}

// Errorv is Error with a prepared argument list.
func (c *Core) Errorv(category *Category, format string, args []any) error {
	return c.dispatch(category, LevelError, format, args)
}

// Warnv is Warn with a prepared argument list.
func (c *Core) Warnv(category *Category, format string, args []any) error {
	return c.dispatch(category, LevelWarn, format, args)
}

// Infov is Info with a prepared argument list.
func (c *Core) Infov(category *Category, format string, args []any) error {
	return c.dispatch(category, LevelInfo, format, args)
}

// Debugv is Debug with a prepared argument list.
func (c *Core) Debugv(category *Category, format string, args []any) error {
	return c.dispatch(category, LevelDebug, format, args)
}

// Tracev is Trace with a prepared argument list.
func (c *Core) Tracev(category *Category, format string, args []any) error {
	return c.dispatch(category, LevelTrace, format, args)
}

// Testv is Test with a prepared argument list.
func (c *Core) Testv(category *Category, format string, args []any) error {
	return c.dispatch(category, LevelTest, format, args)
}

// Off documents a log statement that has been retired. It never reaches a
// sink, whatever the thresholds, and returns what an inactive call would:
// ErrNotInitialized before Init, nil after.
func (c *Core) Off(_ *Category, _ string, _ ...any) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	return nil
}
