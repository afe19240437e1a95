// Package ansi provides the ANSI escape sequences and palette helpers used by
// gatelog's colored sinks. The exported strings can be overridden or swapped
// via SetPalette so callers can apply 16- or 256-colour schemes without
// touching sink internals.
package ansi

import "sync"

// Reset is the ANSI escape code that clears all terminal styling; the
// remaining constants expose common ANSI color sequences.
const (
	Reset         = "\x1b[0m"
	Bold          = "\x1b[1m"
	Faint         = "\x1b[90m"
	Red           = "\x1b[31m"
	Green         = "\x1b[32m"
	Yellow        = "\x1b[33m"
	Blue          = "\x1b[34m"
	Magenta       = "\x1b[35m"
	Cyan          = "\x1b[36m"
	Gray          = "\x1b[37m"
	BrightRed     = "\x1b[1;31m"
	BrightGreen   = "\x1b[1;32m"
	BrightYellow  = "\x1b[1;33m"
	BrightBlue    = "\x1b[1;34m"
	BrightMagenta = "\x1b[1;35m"
	BrightCyan    = "\x1b[1;36m"
	BrightWhite   = "\x1b[1;37m"
)

// Semantic aliases describing how sinks use the colours.
var (
	Fatal     = BrightRed
	Error     = Red
	Warn      = BrightYellow
	Info      = BrightGreen
	Debug     = Green
	Trace     = Blue
	Test      = Magenta
	Category  = Cyan
	Timestamp = Faint
	Location  = Faint
	Message   = Bold
)

var paletteMu sync.RWMutex

// Palette is the input type to SetPalette, see the Palette* variables for
// examples. Empty fields keep the current value.
type Palette struct {
	Fatal     string
	Error     string
	Warn      string
	Info      string
	Debug     string
	Trace     string
	Test      string
	Category  string
	Timestamp string
	Location  string
	Message   string
}

// SetPalette sets the package-level ANSI color variables. Sinks can also take
// an explicit *Palette, which bypasses the package variables.
//
//	ansi.SetPalette(ansi.PaletteSynthwave84)
//	// Reset to default
//	ansi.SetPalette(ansi.PaletteDefault)
func SetPalette(palette Palette) {
	paletteMu.Lock()
	defer paletteMu.Unlock()

	current := snapshotLocked()
	Fatal = f(palette.Fatal, current.Fatal)
	Error = f(palette.Error, current.Error)
	Warn = f(palette.Warn, current.Warn)
	Info = f(palette.Info, current.Info)
	Debug = f(palette.Debug, current.Debug)
	Trace = f(palette.Trace, current.Trace)
	Test = f(palette.Test, current.Test)
	Category = f(palette.Category, current.Category)
	Timestamp = f(palette.Timestamp, current.Timestamp)
	Location = f(palette.Location, current.Location)
	Message = f(palette.Message, current.Message)
}

// Snapshot returns the current ANSI palette values.
//
// Typical usage in tests:
//
//	snap := ansi.Snapshot()
//	defer ansi.SetPalette(snap)
//	ansi.SetPalette(ansi.PaletteSynthwave84)
func Snapshot() Palette {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return snapshotLocked()
}

func snapshotLocked() Palette {
	return Palette{
		Fatal:     Fatal,
		Error:     Error,
		Warn:      Warn,
		Info:      Info,
		Debug:     Debug,
		Trace:     Trace,
		Test:      Test,
		Category:  Category,
		Timestamp: Timestamp,
		Location:  Location,
		Message:   Message,
	}
}

func f(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
