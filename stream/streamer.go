package stream

import (
	"context"
	"log"
	"time"
)

// Streamer samples an Animation at a fixed frame rate and publishes each
// frame.
type Streamer struct {
	publisher Publisher
	topic     string
	animation Animation
	interval  time.Duration
	now       func() time.Time
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(publisher Publisher, topic string, animation Animation, frameRate float64) *Streamer {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &Streamer{
		publisher: publisher,
		topic:     topic,
		animation: animation,
		interval:  time.Duration(float64(time.Second) / frameRate),
		now:       time.Now,
	}
}

// SendFrame publishes the frame for now.
func (s *Streamer) SendFrame(now time.Time) error {
	f := s.animation.Frame(now)
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	return s.publisher.Publish(s.topic, b)
}

// Run sends frames until ctx is done. Publish failures are logged and the
// stream carries on.
func (s *Streamer) Run(ctx context.Context) error {
	publishTimer := time.NewTicker(s.interval)
	defer publishTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-publishTimer.C:
			if err := s.SendFrame(s.now()); err != nil {
				log.Printf("stream: sending frame: %v", err)
			}
		}
	}
}
