package worker

import (
	"context"

	"github.com/osse101/PlantTycoon_Go/internal/logger"
	"github.com/osse101/PlantTycoon_Go/internal/metrics"
	"github.com/osse101/PlantTycoon_Go/internal/notify"
)

// AsyncSink hands notifications to a worker pool so scheduler passes never
// wait on delivery. A full queue drops the message.
type AsyncSink struct {
	pool *Pool
	sink notify.Sink
}

// NewAsyncSink delivers through sink on pool's workers
func NewAsyncSink(pool *Pool, sink notify.Sink) *AsyncSink {
	return &AsyncSink{pool: pool, sink: sink}
}

// Notify implements notify.Sink. It only fails when the message was not queued.
func (a *AsyncSink) Notify(ctx context.Context, userID, text string) error {
	// Keep the caller's log attributes but not its cancellation.
	deliverCtx := context.WithoutCancel(ctx)
	job := JobFunc(func(context.Context) error {
		if err := a.sink.Notify(deliverCtx, userID, text); err != nil {
			metrics.NotificationFailures.WithLabelValues(metrics.SinkDelivery).Inc()
			logger.FromContext(deliverCtx).Warn(LogMsgNotifyFailed, logger.AttrKeyUserID, userID, "error", err)
			return nil
		}
		logger.FromContext(deliverCtx).Debug(LogMsgNotificationSent, logger.AttrKeyUserID, userID)
		return nil
	})

	if !a.pool.Enqueue(job) {
		metrics.NotificationFailures.WithLabelValues(metrics.SinkQueueFull).Inc()
		logger.FromContext(ctx).Warn(LogMsgWorkerQueueFull, logger.AttrKeyUserID, userID)
		return ErrQueueFull
	}
	return nil
}
