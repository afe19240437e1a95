package gatelog

import (
	"errors"
	"testing"
)

func TestElided(t *testing.T) {
	cases := []struct {
		level, max Level
		want       bool
	}{
		{LevelInfo, LevelInfo, false},
		{LevelDebug, LevelInfo, true},
		{LevelTrace, LevelOff, true},
		{LevelTest, LevelOff, false},
		{LevelTest, LevelInfo, false},
		{LevelFatal, LevelFatal, false},
	}
	for _, tc := range cases {
		if got := elided(tc.level, tc.max); got != tc.want {
			t.Fatalf("elided(%s, %s) = %v, want %v", tc.level, tc.max, got, tc.want)
		}
	}
}

func TestResolveBuildSettings(t *testing.T) {
	if got := resolveBuildLevel("info"); got != LevelInfo {
		t.Fatalf("expected INFO, got %s", got)
	}
	if got := resolveBuildLevel("bogus"); got != LevelMax {
		t.Fatalf("unparsable build level must keep every level, got %s", got)
	}
	if !resolveBuildBool("true") || !resolveBuildBool("1") {
		t.Fatalf("expected true for parsable true values")
	}
	if resolveBuildBool("") || resolveBuildBool("maybe") {
		t.Fatalf("expected false for empty or unparsable values")
	}
}

func TestMaxLevelClampsCoreMaximum(t *testing.T) {
	saved := compiledLevel
	compiledLevel = LevelInfo
	defer func() { compiledLevel = saved }()

	core := NewCore(WithMaxLevel(LevelTrace))
	if core.MaxLevel() != LevelInfo {
		t.Fatalf("core maximum must not exceed the compiled maximum, got %s", core.MaxLevel())
	}
	core = NewCore(WithMaxLevel(LevelWarn))
	if core.MaxLevel() != LevelWarn {
		t.Fatalf("core maximum may be lowered, got %s", core.MaxLevel())
	}
}

func TestTrimFunctionName(t *testing.T) {
	cases := map[string]string{
		"":                                     "unknown",
		"main.main":                            "main",
		"pkt.systems/gatelog.(*Core).dispatch": "dispatch",
		"example.com/app/net.handleLink.func1": "func1",
		"trailing.":                            "unknown",
	}
	for in, want := range cases {
		if got := trimFunctionName(in); got != want {
			t.Fatalf("trimFunctionName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInternalFrame(t *testing.T) {
	if !internalFrame("pkt.systems/gatelog.(*Core).Info") {
		t.Fatalf("gatelog frames are internal")
	}
	if !internalFrame("log.(*Logger).Output") {
		t.Fatalf("standard log frames are internal")
	}
	if internalFrame("pkt.systems/gatelog/sink/console.(*Console).Publish") {
		t.Fatalf("subpackage frames are not internal")
	}
	if internalFrame("main.main") {
		t.Fatalf("application frames are not internal")
	}
}

func TestClassifyLineLevel(t *testing.T) {
	cases := []struct {
		line  string
		level Level
		msg   string
	}{
		{"[ERROR] boom", LevelError, "boom"},
		{"[warn]disk full", LevelWarn, "disk full"},
		{"warning: low battery", LevelWarn, "low battery"},
		{"DEBUG - frame dropped", LevelDebug, "frame dropped"},
		{"[OFF] hidden", LevelInfo, "[OFF] hidden"},
		{"plain line", LevelInfo, "plain line"},
		{"errors were found in 3 files", LevelInfo, "errors were found in 3 files"},
		{"information about the link", LevelInfo, "information about the link"},
		{"debugger attached", LevelInfo, "debugger attached"},
		{"warnings: 2", LevelInfo, "warnings: 2"},
		{"error", LevelError, ""},
		{"trace\tframe 12", LevelTrace, "frame 12"},
		{"fatal] stack exhausted", LevelFatal, "stack exhausted"},
	}
	for _, tc := range cases {
		level, msg := classifyLineLevel(tc.line)
		if level != tc.level || msg != tc.msg {
			t.Fatalf("classifyLineLevel(%q) = %s %q, want %s %q", tc.line, level, msg, tc.level, tc.msg)
		}
	}
}

func TestEnvName(t *testing.T) {
	cases := map[string]string{
		"Network":    "NETWORK",
		"gui-main":   "GUI_MAIN",
		"radio.v2":   "RADIO_V2",
		"StdOut":     "STDOUT",
		"ünïcode 42": "_N_CODE_42",
	}
	for in, want := range cases {
		if got := envName(in); got != want {
			t.Fatalf("envName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInvalidfWrapsSentinel(t *testing.T) {
	err := invalidf("category %d is nil", 3)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if err.Error() != "gatelog: invalid parameter: category 3 is nil" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
