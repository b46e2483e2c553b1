package stream

import (
	"time"

	"github.com/matt-g-everett/animseq/sequence"
	"github.com/matt-g-everett/animseq/sheet"
)

type options struct {
	group     *sequence.Group
	registry  *sheet.Registry
	scheduler Scheduler
	now       func() time.Time
}

// Option configures an adapter or player.
type Option func(*options)

// WithGroup makes the adapter take part in a sequence.
func WithGroup(g *sequence.Group) Option {
	return func(o *options) {
		o.group = g
	}
}

// WithRegistry sets the registry keyframe rules go into. The process-wide
// registry is used otherwise.
func WithRegistry(r *sheet.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithScheduler replaces the runtime timers used for completion.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithClock replaces time.Now for frame sampling.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{
		scheduler: RealScheduler{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = sheet.Default()
	}
	return o
}
