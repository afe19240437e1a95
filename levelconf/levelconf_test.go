package levelconf_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/gatelog"
	"pkt.systems/gatelog/levelconf"
	"pkt.systems/gatelog/sink/recorder"
)

func initCore(t *testing.T, opts ...gatelog.Option) (*gatelog.Core, *gatelog.Category, *gatelog.Category, *recorder.Recorder) {
	t.Helper()
	core := gatelog.NewCore(opts...)
	network := gatelog.NewCategory("Network", gatelog.LevelInfo)
	gui := gatelog.NewCategory("GUI", gatelog.LevelInfo)
	rec := recorder.New("console")
	if err := core.Init([]*gatelog.Category{network, gui}, []*gatelog.Sink{rec.Sink()}); err != nil {
		t.Fatalf("init: %v", err)
	}
	return core, network, gui, rec
}

func TestParseAndApply(t *testing.T) {
	doc, err := levelconf.Parse([]byte(`
level: warn
categories:
  Network: debug
sinks:
  console: "3"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	core, network, gui, rec := initCore(t)
	if err := doc.Apply(core); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if network.Level() != gatelog.LevelDebug {
		t.Fatalf("per-category entry must override level, got %s", network.Level())
	}
	if gui.Level() != gatelog.LevelWarn {
		t.Fatalf("expected GUI at WARN, got %s", gui.Level())
	}
	if rec.Sink().Level() != gatelog.LevelWarn {
		t.Fatalf("expected sink at WARN, got %s", rec.Sink().Level())
	}
}

func TestParseRejectsUnknownLevel(t *testing.T) {
	_, err := levelconf.Parse([]byte("categories:\n  Network: loud\n"))
	if !errors.Is(err, gatelog.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if !strings.Contains(err.Error(), "categories.Network") {
		t.Fatalf("error should name the entry, got %v", err)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := levelconf.Parse([]byte("levels: info\n"))
	if !errors.Is(err, gatelog.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	doc, err := levelconf.Parse(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Level != nil || doc.Categories != nil || doc.Sinks != nil {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}

func TestApplyIsAllOrNothing(t *testing.T) {
	doc, err := levelconf.Parse([]byte(`
level: off
categories:
  Network: trace
  Radio: debug
sinks:
  console: off
  uart: info
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	core, network, gui, rec := initCore(t)
	err = doc.Apply(core)
	if !errors.Is(err, gatelog.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	for _, want := range []string{`unknown category "Radio"`, `unknown sink "uart"`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
	if network.Level() != gatelog.LevelInfo || gui.Level() != gatelog.LevelInfo || rec.Sink().Level() != gatelog.LevelMax {
		t.Fatalf("rejected document must not change thresholds")
	}
}

func TestApplyRespectsCoreMaximum(t *testing.T) {
	doc, err := levelconf.Parse([]byte("categories:\n  GUI: trace\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	core, _, gui, _ := initCore(t, gatelog.WithMaxLevel(gatelog.LevelDebug))
	if err := doc.Apply(core); !errors.Is(err, gatelog.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if gui.Level() != gatelog.LevelInfo {
		t.Fatalf("threshold changed despite rejection")
	}
}

func TestApplyBeforeInit(t *testing.T) {
	doc := &levelconf.Document{}
	if err := doc.Apply(gatelog.NewCore()); !errors.Is(err, gatelog.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestLoadSnapshotRoundTrip(t *testing.T) {
	core, network, _, _ := initCore(t)
	network.SetLevel(gatelog.LevelTrace)

	data, err := levelconf.Snapshot(core).Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), "Network: trace") {
		t.Fatalf("unexpected yaml:\n%s", data)
	}
	path := filepath.Join(t.TempDir(), "levels.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	other, otherNetwork, _, _ := initCore(t)
	doc, err := levelconf.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := doc.Apply(other); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if otherNetwork.Level() != gatelog.LevelTrace {
		t.Fatalf("expected restored TRACE, got %s", otherNetwork.Level())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := levelconf.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
