package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

type retryEntry struct {
	event   Event
	attempt int
	lastErr error
}

// ResilientPublisher wraps a Bus so a failed publish is retried in the
// background with exponential backoff and dead-lettered once retries run out.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

var _ Bus = (*ResilientPublisher)(nil)

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// PublishWithRetry publishes synchronously and queues the event for retry on failure.
// It never blocks on the retry queue.
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := rp.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	rp.enqueue(retryEntry{event: evt, attempt: 1, lastErr: err})
}

// Publish implements Bus. Failures are handled by the retry worker so it always returns nil.
func (rp *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	rp.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the inner bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

// Shutdown stops accepting retries, drains the queue with one final attempt
// per event and closes the dead-letter file.
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.shutdownOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return rp.deadLetter.Close()
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}

func (rp *ResilientPublisher) shuttingDown() bool {
	select {
	case <-rp.shutdown:
		return true
	default:
		return false
	}
}

func (rp *ResilientPublisher) enqueue(e retryEntry) {
	if rp.shuttingDown() {
		logger.Warn(LogMsgEventDroppedShutdown, "event_type", e.event.Type)
		rp.writeDeadLetter(e)
		return
	}

	select {
	case rp.retryQueue <- e:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", e.event.Type)
		rp.writeDeadLetter(e)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case e := <-rp.retryQueue:
			rp.retry(e)
		case <-rp.shutdown:
			rp.drain()
			return
		}
	}
}

func (rp *ResilientPublisher) retry(e retryEntry) {
	timer := time.NewTimer(CalculateRetryDelay(rp.retryDelay, e.attempt))
	select {
	case <-timer.C:
	case <-rp.shutdown:
		timer.Stop()
	}

	err := rp.bus.Publish(context.Background(), e.event)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", e.event.Type, "attempt", e.attempt)
		return
	}
	e.lastErr = err

	if e.attempt >= rp.maxRetries || rp.shuttingDown() {
		logger.Warn(LogMsgEventRetryExhausted, "event_type", e.event.Type, "attempts", e.attempt)
		rp.writeDeadLetter(e)
		return
	}

	logger.Warn(LogMsgEventRetryFailed, "event_type", e.event.Type, "attempt", e.attempt, "error", err)
	e.attempt++
	select {
	case rp.retryQueue <- e:
	default:
		rp.writeDeadLetter(e)
	}
}

func (rp *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case e := <-rp.retryQueue:
			drained++
			if err := rp.bus.Publish(context.Background(), e.event); err != nil {
				e.lastErr = err
				rp.writeDeadLetter(e)
			}
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (rp *ResilientPublisher) writeDeadLetter(e retryEntry) {
	if err := rp.deadLetter.Write(e.event, e.attempt, e.lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", e.event.Type, "error", err)
	}
}
