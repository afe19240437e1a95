// Package levelconf loads category and sink thresholds from YAML and applies
// them to an initialized gatelog core.
//
//	level: info
//	categories:
//	  Network: debug
//	  GUI: warn
//	sinks:
//	  console: trace
//
// level is applied first with Core.SetLevels, so per-category entries
// override it.
package levelconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"pkt.systems/gatelog"
)

// Document is a parsed level configuration.
type Document struct {
	// Level is applied to every category when set.
	Level      *gatelog.Level
	Categories map[string]gatelog.Level
	Sinks      map[string]gatelog.Level
}

type rawDocument struct {
	Level      string            `yaml:"level,omitempty"`
	Categories map[string]string `yaml:"categories,omitempty"`
	Sinks      map[string]string `yaml:"sinks,omitempty"`
}

// Load reads and parses the file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level config %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level config %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML document. Unknown keys and unknown level names are
// rejected with gatelog.ErrInvalidParameter.
func Parse(data []byte) (*Document, error) {
	var raw rawDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", gatelog.ErrInvalidParameter, err)
	}
	doc := &Document{}
	if raw.Level != "" {
		level, err := parseLevel("level", raw.Level)
		if err != nil {
			return nil, err
		}
		doc.Level = &level
	}
	var err error
	if doc.Categories, err = parseLevels("categories", raw.Categories); err != nil {
		return nil, err
	}
	if doc.Sinks, err = parseLevels("sinks", raw.Sinks); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseLevels(section string, raw map[string]string) (map[string]gatelog.Level, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]gatelog.Level, len(raw))
	for _, name := range sortedKeys(raw) {
		level, err := parseLevel(section+"."+name, raw[name])
		if err != nil {
			return nil, err
		}
		out[name] = level
	}
	return out, nil
}

func parseLevel(key, value string) (gatelog.Level, error) {
	level, ok := gatelog.ParseLevel(value)
	if !ok {
		return gatelog.LevelOff, fmt.Errorf("%w: %s: unknown level %q", gatelog.ErrInvalidParameter, key, value)
	}
	return level, nil
}

// Apply validates the whole document against core and then applies it. When
// any entry is rejected nothing is changed.
func (d *Document) Apply(core *gatelog.Core) error {
	if !core.Initialized() {
		return gatelog.ErrNotInitialized
	}
	if err := d.Validate(core); err != nil {
		return err
	}
	if d.Level != nil {
		if err := core.SetLevels(*d.Level); err != nil {
			return err
		}
	}
	for name, level := range d.Categories {
		if err := core.SetCategoryLevel(name, level); err != nil {
			return err
		}
	}
	for name, level := range d.Sinks {
		if err := core.SetSinkLevel(name, level); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports every entry Apply would reject.
func (d *Document) Validate(core *gatelog.Core) error {
	var errs []error
	limit := core.MaxLevel()
	if d.Level != nil && *d.Level > limit {
		errs = append(errs, fmt.Errorf("%w: level %s above maximum %s", gatelog.ErrInvalidParameter, *d.Level, limit))
	}
	for _, name := range sortedKeys(d.Categories) {
		level := d.Categories[name]
		if _, ok := core.Category(name); !ok {
			errs = append(errs, fmt.Errorf("%w: unknown category %q", gatelog.ErrInvalidParameter, name))
		} else if level > limit {
			errs = append(errs, fmt.Errorf("%w: category %q level %s above maximum %s", gatelog.ErrInvalidParameter, name, level, limit))
		}
	}
	for _, name := range sortedKeys(d.Sinks) {
		if _, ok := core.Sink(name); !ok {
			errs = append(errs, fmt.Errorf("%w: unknown sink %q", gatelog.ErrInvalidParameter, name))
		}
	}
	return errors.Join(errs...)
}

// Snapshot captures the current thresholds of core.
func Snapshot(core *gatelog.Core) *Document {
	doc := &Document{}
	if categories := core.Categories(); len(categories) > 0 {
		doc.Categories = make(map[string]gatelog.Level, len(categories))
		for _, category := range categories {
			doc.Categories[category.Name()] = category.Level()
		}
	}
	if sinks := core.Sinks(); len(sinks) > 0 {
		doc.Sinks = make(map[string]gatelog.Level, len(sinks))
		for _, sink := range sinks {
			doc.Sinks[sink.Name()] = sink.Level()
		}
	}
	return doc
}

// Marshal encodes d as YAML with lower-case level names.
func (d *Document) Marshal() ([]byte, error) {
	raw := rawDocument{
		Categories: formatLevels(d.Categories),
		Sinks:      formatLevels(d.Sinks),
	}
	if d.Level != nil {
		raw.Level = levelName(*d.Level)
	}
	return yaml.Marshal(raw)
}

func formatLevels(levels map[string]gatelog.Level) map[string]string {
	if len(levels) == 0 {
		return nil
	}
	out := make(map[string]string, len(levels))
	for name, level := range levels {
		out[name] = levelName(level)
	}
	return out
}

func levelName(level gatelog.Level) string {
	return strings.ToLower(level.String())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
