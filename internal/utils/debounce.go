package utils

import (
	"sync"
	"time"
)

// Debouncer schedules a function to run after a quiet period. A newer
// Trigger cancels a pending one, so only the last writer's function fires.
type Debouncer struct {
	Delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// Trigger schedules fn after the configured delay, superseding any pending
// schedule. The timer handle is held so a stale closure can never fire.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	delay := d.Delay
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	d.timer = time.AfterFunc(delay, fn)
}

// Stop cancels any pending schedule.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
