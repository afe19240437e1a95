package gatelog

import (
	"errors"
	"os"
	"strings"
)

// EnvOption customizes ApplyEnv.
type EnvOption func(*envConfig)

type envConfig struct {
	prefix string
	report *Category
	lookup func(string) (string, bool)
}

// WithEnvPrefix overrides the environment variable prefix used by ApplyEnv.
func WithEnvPrefix(prefix string) EnvOption {
	return func(cfg *envConfig) {
		cfg.prefix = prefix
	}
}

// WithEnvReport makes ApplyEnv log every rejected variable as a warning
// against category, in addition to returning the error.
func WithEnvReport(category *Category) EnvOption {
	return func(cfg *envConfig) {
		cfg.report = category
	}
}

// ApplyEnv adjusts the thresholds of an initialized core from environment
// variables. With the default prefix "GATELOG_" the recognised variables are:
//
//	GATELOG_LEVEL             every category (as SetLevels)
//	GATELOG_LEVEL_<CATEGORY>  one category
//	GATELOG_SINK_<SINK>       one sink
//
// <CATEGORY> and <SINK> are the registered names upper-cased with every
// character outside [A-Z0-9] replaced by '_'. GATELOG_LEVEL is applied first
// so per-category values override it. Values are parsed with ParseLevel.
// Valid variables are applied even when others are rejected; the returned
// error joins every rejection.
func ApplyEnv(core *Core, opts ...EnvOption) error {
	cfg := envConfig{prefix: "GATELOG_", lookup: os.LookupEnv}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if !core.Initialized() {
		return ErrNotInitialized
	}
	var errs []error
	reject := func(key, value string, err error) {
		errs = append(errs, invalidf("%s=%q: %v", key, value, err))
		if cfg.report != nil {
			_ = core.Warn(cfg.report, "env %s=%q rejected: %v", key, value, err)
		}
	}
	apply := func(key string, set func(Level) error) {
		value, ok := cfg.lookup(key)
		if !ok {
			return
		}
		level, ok := ParseLevel(value)
		if !ok {
			reject(key, value, errors.New("unknown level"))
			return
		}
		if err := set(level); err != nil {
			reject(key, value, err)
		}
	}
	apply(cfg.prefix+"LEVEL", core.SetLevels)
	for _, category := range core.Categories() {
		apply(cfg.prefix+"LEVEL_"+envName(category.name), func(level Level) error {
			return core.SetCategoryLevel(category.name, level)
		})
	}
	for _, sink := range core.Sinks() {
		apply(cfg.prefix+"SINK_"+envName(sink.name), func(level Level) error {
			sink.SetLevel(level)
			return nil
		})
	}
	return errors.Join(errs...)
}

func envName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}
