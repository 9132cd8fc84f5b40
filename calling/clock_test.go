package calling

import (
	"sync"
	"time"
)

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeClock fires scheduled functions only when the test says so.
type fakeClock struct {
	mu      sync.Mutex
	pending []*fakeTimer
}

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{f: f}
	c.pending = append(c.pending, t)
	return t
}

// Tick fires the next live timer and reports whether there was one.
func (c *fakeClock) Tick() bool {
	c.mu.Lock()
	var next *fakeTimer
	for len(c.pending) > 0 {
		t := c.pending[0]
		c.pending = c.pending[1:]
		if !t.stopped {
			next = t
			break
		}
	}
	c.mu.Unlock()

	if next == nil {
		return false
	}
	next.stopped = true
	next.f()
	return true
}
