package garden

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/osse101/PlantTycoon_Go/internal/event"
	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

// Option overrides a dependency of Service or Reconciler, mostly for tests
type Option func(*options)

type options struct {
	now  func() time.Time
	intn func(n int) int
}

func defaultOptions(opts []Option) options {
	o := options{
		now:  time.Now,
		intn: rand.IntN,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock sets the time source
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRandom sets the source used to pick seeds and alert messages.
// intn must return a value in [0, n).
func WithRandom(intn func(n int) int) Option {
	return func(o *options) { o.intn = intn }
}

// publish sends evt if a bus is configured. Failures are logged only.
func publish(ctx context.Context, bus event.Bus, evt event.Event) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}
