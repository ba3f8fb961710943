package fs

import (
	"sync"
	"time"

	"github.com/svcedit/svcedit/pkg/core"
)

// debouncer coalesces bursts of filesystem events into a single emission.
// Editors and atomic renames tend to produce several events per logical
// change; only the last one within the window fires.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// add schedules fire for the event, replacing any pending emission.
func (d *debouncer) add(event core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		if d.timer.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		fire(event)
	})
}

// stopAndWait stops accepting events and waits for any in-flight timer to
// finish, bounded by timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
