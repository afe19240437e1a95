// Package gatelog is a category-gated logging facade for embedded-style Go
// programs. Application code logs through named categories; a Core filters
// each event twice (category threshold, then each sink's threshold) and fans
// the surviving events out to registered sinks in registration order.
//
// # Design overview
//
//   - Explicit context: all registry state lives in a *Core created with
//     NewCore and populated once with Init. There are no package globals to
//     reset between tests.
//   - Cheap rejection: a filtered call costs a nil check, a level comparison
//     and one atomic load. The clock is not read and nothing is formatted.
//     Message formatting is deferred to the sink, so a sink that never prints
//     the message never pays for it.
//   - Link-time elision: the most verbose dispatchable level and location
//     capture are set with -ldflags -X (see MaxLevel). Calls above the
//     compiled maximum return immediately; LevelTest is never elided.
//   - Best-effort sinks: PublishFunc has no error return. A sink that fails
//     drops the record; a panicking sink is isolated from the rest of the
//     fan-out.
//
// # Usage
//
//	network := gatelog.NewCategory("Network", gatelog.LevelInfo)
//	gui := gatelog.NewCategory("GUI", gatelog.LevelWarn)
//	stdout := console.Stdout()
//
//	core := gatelog.NewCore()
//	if err := core.Init([]*gatelog.Category{network, gui}, []*gatelog.Sink{stdout.Sink()}); err != nil {
//		return err
//	}
//	core.Info(network, "link up on %s", iface)
//
// Thresholds can change at any time, directly (Category.SetLevel,
// Sink.SetLevel), by name (Core.SetCategoryLevel, Core.SetSinkLevel), in bulk
// (Core.SetLevels), from the environment (ApplyEnv), from YAML (levelconf) or
// over HTTP (adminhttp).
//
// # Expensive arguments
//
// Go evaluates arguments before the call. Guard expensive preparation with
// IsActive or Core.Enabled, or wrap the value in Lazy so it is only computed
// when a sink formats the message.
//
// # Integration notes
//
//   - The sink subpackages provide a console sink (sink/console), a rotating
//     file sink (sink/file), a zap bridge (sink/zapsink) and an in-memory
//     recorder for tests (sink/recorder).
//   - StdLogger bridges the standard library: it returns a *log.Logger whose
//     lines feed a category.
//   - The ansi subpackage holds the console palettes (ansi.SetPalette).
package gatelog
