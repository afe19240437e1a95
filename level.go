package gatelog

import (
	"os"
	"strconv"
	"strings"
)

// Level is a severity. Higher values are more verbose. A level is active for
// a gate (category or sink) when the gate's threshold is greater than or equal
// to the level.
type Level uint8

const (
	// LevelOff disables all output when used as a threshold.
	LevelOff Level = iota
	// LevelFatal is for unrecoverable failures.
	LevelFatal
	// LevelError is for failures the application survives.
	LevelError
	// LevelWarn is for unexpected but handled conditions.
	LevelWarn
	// LevelInfo is for normal operational messages.
	LevelInfo
	// LevelDebug is for diagnostics.
	LevelDebug
	// LevelTrace is for fine-grained diagnostics.
	LevelTrace
	// LevelTest is reserved for test builds and is never compiled out.
	LevelTest
)

const (
	// LevelMin is the least verbose level.
	LevelMin = LevelOff
	// LevelMax is the most verbose level.
	LevelMax = LevelTest
)

var levelNames = [...]string{"OFF", "FATAL", "ERROR", "WARN", "INFO", "DEBUG", "TRACE", "TEST"}

// String returns the canonical upper-case name of l, or the decimal value for
// levels outside the scale.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return strconv.Itoa(int(l))
}

// Valid reports whether l is on the severity scale.
func (l Level) Valid() bool {
	return l <= LevelMax
}

// ParseLevel converts a textual level into a Level value. It accepts the
// canonical names ("off", "fatal", "error", "warn", "info", "debug", "trace",
// "test") case insensitively, the aliases "warning", "disabled", "disable" and
// "none", and the decimal values 0 through 7.
func ParseLevel(value string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "off", "disabled", "disable", "none":
		return LevelOff, true
	case "fatal":
		return LevelFatal, true
	case "error":
		return LevelError, true
	case "warn", "warning":
		return LevelWarn, true
	case "info":
		return LevelInfo, true
	case "debug":
		return LevelDebug, true
	case "trace":
		return LevelTrace, true
	case "test":
		return LevelTest, true
	}
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 8)
	if err != nil || Level(n) > LevelMax {
		return LevelOff, false
	}
	return Level(n), true
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, ok := ParseLevel(string(text))
	if !ok {
		return invalidf("unknown level %q", string(text))
	}
	*l = parsed
	return nil
}

// LevelFromEnv looks up key in the environment and parses it into a Level.
func LevelFromEnv(key string) (Level, bool) {
	if key == "" {
		return LevelOff, false
	}
	value, ok := os.LookupEnv(key)
	if !ok {
		return LevelOff, false
	}
	return ParseLevel(value)
}
