package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/PlantTycoon_Go/internal/domain"
	"github.com/osse101/PlantTycoon_Go/internal/garden"
	"github.com/osse101/PlantTycoon_Go/internal/logger"
	"github.com/osse101/PlantTycoon_Go/internal/metrics"
	"github.com/osse101/PlantTycoon_Go/internal/notify"
)

// UserLister returns the gardeners a pass should visit
type UserLister interface {
	UserIDs() []string
}

// Reconciler is the per-gardener work of the three garden jobs
type Reconciler interface {
	Decay(ctx context.Context, userID string) (*garden.DecayResult, error)
	Complete(ctx context.Context, userID string) (*garden.CompletionResult, error)
	CheckHealth(ctx context.Context, userID string) (*garden.HealthAlert, bool)
}

// PassConfig is shared by every garden job
type PassConfig struct {
	Users       UserLister
	Reconciler  Reconciler
	Sink        notify.Sink
	Concurrency int
}

// DecayJob subtracts one tick of degradation from every growing plant
type DecayJob struct {
	PassConfig
}

// NewDecayJob creates the decay job
func NewDecayJob(cfg PassConfig) *DecayJob {
	return &DecayJob{PassConfig: cfg}
}

// Process implements Job
func (j *DecayJob) Process(ctx context.Context) error {
	return runPass(ctx, JobNameDecay, j.PassConfig, func(ctx context.Context, userID string) error {
		res, err := j.Reconciler.Decay(ctx, userID)
		if err != nil {
			return err
		}
		logger.FromContext(ctx).Debug(LogMsgPlantDecayed,
			logger.AttrKeyUserID, userID,
			"plant", res.PlantID,
			"rate", res.Rate,
			"health", res.Health)
		return nil
	})
}

// CompletionJob resolves plants that bloomed or died and tells their owners
type CompletionJob struct {
	PassConfig
}

// NewCompletionJob creates the completion job
func NewCompletionJob(cfg PassConfig) *CompletionJob {
	return &CompletionJob{PassConfig: cfg}
}

// Process implements Job
func (j *CompletionJob) Process(ctx context.Context) error {
	return runPass(ctx, JobNameCompletion, j.PassConfig, func(ctx context.Context, userID string) error {
		res, err := j.Reconciler.Complete(ctx, userID)
		if res != nil {
			deliver(ctx, j.Sink, userID, res.Message)
		}
		return err
	})
}

// NotificationJob warns gardeners whose plant is low on health
type NotificationJob struct {
	PassConfig
}

// NewNotificationJob creates the notification job
func NewNotificationJob(cfg PassConfig) *NotificationJob {
	return &NotificationJob{PassConfig: cfg}
}

// Process implements Job
func (j *NotificationJob) Process(ctx context.Context) error {
	return runPass(ctx, JobNameNotification, j.PassConfig, func(ctx context.Context, userID string) error {
		alert, ok := j.Reconciler.CheckHealth(ctx, userID)
		if !ok {
			return nil
		}
		logger.FromContext(ctx).Debug(LogMsgLowHealthNotified, logger.AttrKeyUserID, userID, "health", alert.Health)
		deliver(ctx, j.Sink, userID, alert.Message)
		return nil
	})
}

// runPass visits every known gardener once with bounded concurrency. A failure
// for one gardener is logged and counted; it never stops the pass.
func runPass(ctx context.Context, job string, cfg PassConfig, fn func(ctx context.Context, userID string) error) error {
	start := time.Now()
	log := logger.FromContext(ctx)
	ids := cfg.Users.UserIDs()

	limit := cfg.Concurrency
	if limit < 1 {
		limit = DefaultPassConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for _, id := range ids {
		g.Go(func() error {
			err := fn(ctx, id)
			record(log, job, id, err)
			return nil
		})
	}
	_ = g.Wait()

	metrics.GardenersProcessed.WithLabelValues(job).Add(float64(len(ids)))
	log.Info(LogMsgPassCompleted, "job", job, "gardeners", len(ids), "duration", time.Since(start))
	return nil
}

func record(log *slog.Logger, job, userID string, err error) {
	if err == nil {
		return
	}

	var reason string
	switch {
	case errors.Is(err, domain.ErrNoActivePlant):
		metrics.GardenersSkipped.WithLabelValues(job, metrics.ReasonNoPlant).Inc()
		return
	case errors.Is(err, domain.ErrUnknownPlant):
		reason = metrics.ReasonUnknownPlant
		log.Warn(LogMsgGardenerSkipped, "job", job, logger.AttrKeyUserID, userID, "error", err)
	case errors.Is(err, domain.ErrPersistence):
		reason = metrics.ReasonPersistence
		log.Error(LogMsgGardenerFailed, "job", job, logger.AttrKeyUserID, userID, "error", err)
	default:
		reason = metrics.ReasonError
		log.Error(LogMsgGardenerFailed, "job", job, logger.AttrKeyUserID, userID, "error", err)
	}
	metrics.GardenersSkipped.WithLabelValues(job, reason).Inc()
}

// deliver sends text without letting a failed delivery affect the pass
func deliver(ctx context.Context, sink notify.Sink, userID, text string) {
	if sink == nil {
		return
	}
	if err := sink.Notify(ctx, userID, text); err != nil {
		logger.FromContext(ctx).Warn(LogMsgNotifyFailed, logger.AttrKeyUserID, userID, "error", err)
	}
}
