package gatelog

import (
	"sync"
	"sync/atomic"
	"time"
)

// TimeSource supplies record timestamps. The core calls Now at most once per
// active event and never for filtered events.
type TimeSource interface {
	Now() time.Time
}

// TimeFunc adapts a function to TimeSource.
type TimeFunc func() time.Time

// Now calls fn.
func (fn TimeFunc) Now() time.Time {
	return fn()
}

// SystemClock reads the wall clock on every call.
var SystemClock TimeSource = TimeFunc(time.Now)

// FixedClock always returns t. Useful for targets without a real-time clock
// and for tests.
func FixedClock(t time.Time) TimeSource {
	return TimeFunc(func() time.Time { return t })
}

// CachedClock is a coarse TimeSource whose value is refreshed by a ticker
// instead of being read on every event. Close stops the refresh goroutine;
// afterwards Now keeps returning the last cached value.
type CachedClock struct {
	value     atomic.Value
	now       func() time.Time
	newTicker func(time.Duration) tickerControl
	interval  time.Duration

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

type tickerControl struct {
	C    <-chan time.Time
	Stop func()
}

func (t tickerControl) stop() {
	if t.Stop != nil {
		t.Stop()
	}
}

func defaultTicker(d time.Duration) tickerControl {
	t := time.NewTicker(d)
	return tickerControl{
		C:    t.C,
		Stop: t.Stop,
	}
}

// NewCachedClock starts a clock refreshed every interval. A non-positive
// interval means one second.
func NewCachedClock(interval time.Duration) *CachedClock {
	return newCachedClock(interval, time.Now, defaultTicker)
}

func newCachedClock(interval time.Duration, now func() time.Time, newTicker func(time.Duration) tickerControl) *CachedClock {
	if interval <= 0 {
		interval = time.Second
	}
	clock := &CachedClock{
		now:       now,
		newTicker: newTicker,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	clock.start()
	return clock
}

func (c *CachedClock) start() {
	c.value.Store(c.nowTime())
	ticker := c.makeTicker(c.interval)
	if ticker.C == nil {
		close(c.doneCh)
		return
	}
	go c.refresh(ticker)
}

// Now returns the cached time.
func (c *CachedClock) Now() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.value.Load().(time.Time)
}

func (c *CachedClock) refresh(ticker tickerControl) {
	defer ticker.stop()
	defer close(c.doneCh)
	for {
		select {
		case <-c.stopCh:
			return
		case now, ok := <-ticker.C:
			if !ok {
				return
			}
			c.value.Store(now)
		}
	}
}

func (c *CachedClock) nowTime() time.Time {
	nowFunc := c.now
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return nowFunc()
}

func (c *CachedClock) makeTicker(d time.Duration) tickerControl {
	if c.newTicker != nil {
		if ticker := c.newTicker(d); ticker.C != nil {
			return ticker
		}
	}
	return defaultTicker(d)
}

// Close stops refreshing. It is safe to call more than once.
func (c *CachedClock) Close() {
	if c == nil {
		return
	}
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

func (c *CachedClock) waitStopped(timeout time.Duration) bool {
	if c == nil || c.doneCh == nil {
		return true
	}
	if timeout <= 0 {
		<-c.doneCh
		return true
	}
	select {
	case <-c.doneCh:
		return true
	case <-time.After(timeout):
		return false
	}
}
