package gatelog

import "strconv"

// Link-time configuration. Set with
//
//	go build -ldflags "-X pkt.systems/gatelog.buildMaxLevel=info -X pkt.systems/gatelog.buildLocation=true"
//
// buildMaxLevel accepts anything ParseLevel accepts; an unparsable value keeps
// every level. buildLocation accepts anything strconv.ParseBool accepts.
var (
	buildMaxLevel = "TEST"
	buildLocation = "false"
)

var (
	compiledLevel    = resolveBuildLevel(buildMaxLevel)
	compiledLocation = resolveBuildBool(buildLocation)
)

func resolveBuildLevel(value string) Level {
	level, ok := ParseLevel(value)
	if !ok {
		return LevelMax
	}
	return level
}

func resolveBuildBool(value string) bool {
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}

// MaxLevel returns the most verbose level compiled into this binary. Calls at
// more verbose levels are elided, except LevelTest, which is never elided.
func MaxLevel() Level {
	return compiledLevel
}

// LocationEnabled reports whether this binary was built with source location
// capture.
func LocationEnabled() bool {
	return compiledLocation
}

// Elided reports whether calls at level are compiled out of this binary.
func Elided(level Level) bool {
	return elided(level, compiledLevel)
}

func elided(level, max Level) bool {
	return level != LevelTest && level > max
}
