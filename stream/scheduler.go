package stream

import "time"

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler arms completion timers.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the runtime's timers.
type RealScheduler struct{}

// AfterFunc calls f in its own goroutine after d.
func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// completion owns at most one armed timer. Every cancel bumps the
// generation so a callback that already left the runtime timer but has not
// yet taken the adapter lock can tell it is stale.
type completion struct {
	scheduler Scheduler
	timer     Timer
	gen       uint64
}

func (c *completion) cancel() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// arm cancels any pending timer and schedules fire(gen) after d.
func (c *completion) arm(d time.Duration, fire func(gen uint64)) {
	c.cancel()
	gen := c.gen
	c.timer = c.scheduler.AfterFunc(d, func() { fire(gen) })
}

func (c *completion) current(gen uint64) bool {
	return c.gen == gen
}
