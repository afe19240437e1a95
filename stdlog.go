package gatelog

import (
	"bytes"
	"log"
	"strings"
)

// StdLogger returns a standard library *log.Logger that feeds category. Each
// written line is classified by a leading level word ("warn: disk full",
// "[ERROR] boom"); unclassified lines are logged at LevelInfo.
func StdLogger(core *Core, category *Category) *log.Logger {
	return log.New(stdWriter{core: core, category: category}, "", 0)
}

// StdLoggerWithLevel returns a *log.Logger that logs every line at level.
func StdLoggerWithLevel(core *Core, category *Category, level Level) *log.Logger {
	return log.New(stdWriter{core: core, category: category, level: level, pinned: true}, "", 0)
}

type stdWriter struct {
	core     *Core
	category *Category
	level    Level
	pinned   bool
}

func (w stdWriter) Write(p []byte) (int, error) {
	if len(p) == 0 || w.core == nil {
		return len(p), nil
	}
	for line := range bytes.SplitSeq(p, []byte{'\n'}) {
		trimmed := strings.TrimSpace(string(bytes.TrimRight(line, "\r")))
		if trimmed == "" {
			continue
		}
		level, msg := w.level, trimmed
		if !w.pinned {
			level, msg = classifyLineLevel(trimmed)
		}
		if !w.core.Enabled(w.category, level) {
			continue
		}
		_ = w.core.dispatch(w.category, level, msg, nil)
	}
	return len(p), nil
}

func classifyLineLevel(line string) (Level, string) {
	if strings.HasPrefix(line, "[") {
		if end := strings.IndexRune(line, ']'); end > 1 {
			if level, ok := ParseLevel(line[1:end]); ok && level != LevelOff {
				return level, strings.TrimSpace(line[end+1:])
			}
		}
	}
	lowered := strings.ToLower(line)
	for _, candidate := range []struct {
		prefix string
		level  Level
	}{
		{"fatal", LevelFatal},
		{"error", LevelError},
		{"warning", LevelWarn},
		{"warn", LevelWarn},
		{"info", LevelInfo},
		{"debug", LevelDebug},
		{"trace", LevelTrace},
	} {
		if strings.HasPrefix(lowered, candidate.prefix) && levelWordEnds(line, len(candidate.prefix)) {
			tail := strings.TrimSpace(line[len(candidate.prefix):])
			return candidate.level, strings.TrimSpace(strings.TrimLeft(tail, ":-] "))
		}
	}
	return LevelInfo, line
}

// levelWordEnds reports whether a level word of length n at the start of line
// stands alone, so "errors were found" is not read as an error.
func levelWordEnds(line string, n int) bool {
	if n == len(line) {
		return true
	}
	switch line[n] {
	case ':', ' ', '\t', '-', ']':
		return true
	}
	return false
}
