package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PlantTycoon_Go/internal/logger"
	"github.com/osse101/PlantTycoon_Go/internal/metrics"
	"github.com/osse101/PlantTycoon_Go/internal/worker"
)

// ErrAlreadyStarted is returned when Schedule or Start is called after Start
var ErrAlreadyStarted = errors.New("scheduler already started")

type entry struct {
	name     string
	interval time.Duration
	job      worker.Job
}

// Scheduler runs each registered job in its own loop: a full pass right away,
// then one pass per tick. Passes of one job never overlap.
type Scheduler struct {
	mu      sync.Mutex
	entries []entry
	started bool

	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new scheduler
func New() *Scheduler {
	return &Scheduler{quit: make(chan struct{})}
}

// Schedule registers a job to run at a fixed interval
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive, got %s", name, interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.entries = append(s.entries, entry{name: name, interval: interval, job: job})
	return nil
}

// Start launches one goroutine per scheduled job. ctx is handed to every pass;
// use Shutdown to stop the loops.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	for _, e := range s.entries {
		s.wg.Add(1)
		go s.loop(ctx, e)
	}
	logger.FromContext(ctx).Info(LogMsgSchedulerStarted, "jobs", len(s.entries))
	return nil
}

func (s *Scheduler) loop(ctx context.Context, e entry) {
	defer s.wg.Done()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		// A quit that arrives during a pass is seen before the next one starts.
		select {
		case <-s.quit:
			return
		default:
		}

		s.runPass(ctx, e)

		select {
		case <-ticker.C:
		case <-s.quit:
			return
		}
	}
}

func (s *Scheduler) runPass(ctx context.Context, e entry) {
	passCtx := logger.WithPassID(ctx, uuid.NewString())
	log := logger.FromContext(passCtx)
	start := time.Now()

	status := metrics.StatusSuccess
	if err := e.job.Process(passCtx); err != nil {
		status = metrics.StatusError
		log.Error(LogMsgPassFailed, "job", e.name, "error", err)
	}

	metrics.JobPassesTotal.WithLabelValues(e.name, status).Inc()
	metrics.JobPassDuration.WithLabelValues(e.name).Observe(time.Since(start).Seconds())
}

// Shutdown signals every loop to stop and waits for running passes to finish,
// bounded by ctx. Once it returns nil no job runs again.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSchedulerStopping)

	s.stopOnce.Do(func() { close(s.quit) })

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgSchedulerStopped)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgSchedulerTimeout)
		return ctx.Err()
	}
}
