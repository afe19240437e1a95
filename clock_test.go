package gatelog

import (
	"testing"
	"time"
)

func TestCachedClockCachesWithinTick(t *testing.T) {
	start := time.Date(2025, time.October, 12, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	tickCh := make(chan time.Time, 1)
	current := start

	clock := newCachedClock(time.Second,
		func() time.Time { return current },
		func(time.Duration) tickerControl { return tickerControl{C: tickCh} },
	)
	defer clock.Close()

	if got := clock.Now(); !got.Equal(start) {
		t.Fatalf("initial value mismatch: got %v want %v", got, start)
	}
	current = start.Add(500 * time.Millisecond)
	if got := clock.Now(); !got.Equal(start) {
		t.Fatalf("clock should return the cached value before a tick: got %v", got)
	}

	advance := start.Add(time.Second)
	tickCh <- advance
	close(tickCh)

	deadline := time.After(200 * time.Millisecond)
	for {
		if got := clock.Now(); got.Equal(advance) {
			break
		}
		select {
		case <-time.After(5 * time.Millisecond):
		case <-deadline:
			t.Fatalf("clock did not update after tick; last %v want %v", clock.Now(), advance)
		}
	}
	if !clock.waitStopped(200 * time.Millisecond) {
		t.Fatalf("refresh goroutine should exit once the ticker channel closes")
	}
}

func TestCachedClockCloseStopsRefresh(t *testing.T) {
	tickCh := make(chan time.Time)
	stopped := make(chan struct{})
	start := time.Unix(1000, 0)
	clock := newCachedClock(time.Second,
		func() time.Time { return start },
		func(time.Duration) tickerControl {
			return tickerControl{C: tickCh, Stop: func() { close(stopped) }}
		},
	)
	clock.Close()
	clock.Close()
	if !clock.waitStopped(time.Second) {
		t.Fatalf("refresh goroutine did not stop")
	}
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatalf("ticker was not stopped")
	}
	if got := clock.Now(); !got.Equal(start) {
		t.Fatalf("closed clock must keep its last value, got %v", got)
	}
}

func TestCachedClockDefaults(t *testing.T) {
	clock := newCachedClock(0, nil, nil)
	defer clock.Close()
	if clock.interval != time.Second {
		t.Fatalf("expected default interval of one second, got %v", clock.interval)
	}
	if clock.Now().IsZero() {
		t.Fatalf("expected an initial wall-clock value")
	}
	var nilClock *CachedClock
	if !nilClock.Now().IsZero() {
		t.Fatalf("nil clock should return the zero time")
	}
	nilClock.Close()
}

func TestFixedAndFuncClocks(t *testing.T) {
	at := time.Unix(42, 0)
	if got := FixedClock(at).Now(); !got.Equal(at) {
		t.Fatalf("FixedClock returned %v", got)
	}
	calls := 0
	fn := TimeFunc(func() time.Time {
		calls++
		return at
	})
	fn.Now()
	if calls != 1 {
		t.Fatalf("TimeFunc should call through once, got %d", calls)
	}
}
