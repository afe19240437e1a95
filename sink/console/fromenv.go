package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"pkt.systems/gatelog"
	"pkt.systems/gatelog/ansi"
)

// EnvOption customizes NewFromEnv behavior.
type EnvOption func(*envConfig)

type envConfig struct {
	prefix  string
	options Options
	writer  io.Writer
}

// WithEnvPrefix overrides the environment variable prefix used by NewFromEnv.
func WithEnvPrefix(prefix string) EnvOption {
	return func(cfg *envConfig) {
		cfg.prefix = prefix
	}
}

// WithEnvOptions seeds NewFromEnv with explicit Options values.
func WithEnvOptions(opts Options) EnvOption {
	return func(cfg *envConfig) {
		cfg.options = opts
	}
}

// WithEnvWriter seeds NewFromEnv with a default output writer.
func WithEnvWriter(w io.Writer) EnvOption {
	return func(cfg *envConfig) {
		cfg.writer = w
	}
}

// NewFromEnv builds a console sink from environment variables. Environment
// values override seeded options.
//
// Recognised variables (default prefix "GATELOG_CONSOLE_") are LEVEL, FORMAT
// (full|message), TIME_FORMAT, NO_COLOR, FORCE_COLOR, PALETTE, UTC,
// TRAILING_NEWLINE and OUTPUT. OUTPUT accepts the values of ParseOutput.
// PALETTE falls back to the default palette for unknown names. Other invalid
// values are skipped and reported in the returned error, which wraps
// gatelog.ErrInvalidParameter. When OUTPUT cannot be opened the sink falls
// back to the default writer and the open error is joined in as well. The
// returned sink is usable in every case.
func NewFromEnv(opts ...EnvOption) (*Console, error) {
	cfg := envConfig{prefix: "GATELOG_CONSOLE_"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	resolved := cfg.options
	base := cfg.writer
	if base == nil {
		base = os.Stdout
	}
	prefix := cfg.prefix
	var errs []error
	reject := func(key, value string) {
		errs = append(errs, fmt.Errorf("%w: %s%s=%q", gatelog.ErrInvalidParameter, prefix, key, value))
	}
	if value, ok := lookupEnv(prefix, "LEVEL"); ok {
		if level, ok := gatelog.ParseLevel(value); ok {
			resolved.Level = level
		} else {
			reject("LEVEL", value)
		}
	}
	if value, ok := lookupEnv(prefix, "FORMAT"); ok {
		if parsed, ok := parseEnvFormat(value); ok {
			resolved.Format = parsed
		} else {
			reject("FORMAT", value)
		}
	}
	if value, ok := lookupEnv(prefix, "TIME_FORMAT"); ok {
		if parsed := strings.TrimSpace(value); parsed != "" {
			resolved.TimeFormat = parseEnvTimeFormat(parsed)
		}
	}
	if value, ok := lookupEnv(prefix, "PALETTE"); ok {
		resolved.Palette = ansi.PaletteByName(value)
	}
	for _, flag := range []struct {
		key string
		dst *bool
	}{
		{"NO_COLOR", &resolved.NoColor},
		{"FORCE_COLOR", &resolved.ForceColor},
		{"UTC", &resolved.UTC},
		{"TRAILING_NEWLINE", &resolved.TrailingNewline},
	} {
		value, ok := lookupEnv(prefix, flag.key)
		if !ok {
			continue
		}
		if parsed, ok := parseEnvBool(value); ok {
			*flag.dst = parsed
		} else {
			reject(flag.key, value)
		}
	}
	writer := base
	if value, ok := lookupEnv(prefix, "OUTPUT"); ok {
		if w, err := ParseOutput(value, base); err != nil {
			errs = append(errs, err)
		} else {
			writer = w
		}
	}
	return New(writer, resolved), errors.Join(errs...)
}

func lookupEnv(prefix, key string) (string, bool) {
	return os.LookupEnv(prefix + key)
}

func parseEnvBool(value string) (bool, bool) {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}

func parseEnvFormat(value string) (gatelog.Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "full", "":
		return gatelog.FormatFull, true
	case "message", "message-only", "messageonly", "msg":
		return gatelog.FormatMessageOnly, true
	default:
		return gatelog.FormatFull, false
	}
}

// parseEnvTimeFormat maps a few well-known layout names to Go layouts; other
// values are used as layouts verbatim. "unixmilli" selects TimeUnixMilli.
func parseEnvTimeFormat(value string) string {
	switch strings.ToLower(value) {
	case "unixmilli", "unix-milli", "millis":
		return TimeUnixMilli
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	case "kitchen":
		return time.Kitchen
	case "stamp":
		return time.Stamp
	case "stampmilli":
		return time.StampMilli
	default:
		return value
	}
}
