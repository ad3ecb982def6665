package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/PlantTycoon_Go/internal/catalog"
	"github.com/osse101/PlantTycoon_Go/internal/scheduler"
	"github.com/osse101/PlantTycoon_Go/internal/worker"
)

// ScheduleGardenJobs registers the decay, completion and notification jobs
// at the catalog timer intervals.
func ScheduleGardenJobs(s *scheduler.Scheduler, timers catalog.Timers, pass worker.PassConfig) error {
	jobs := []struct {
		name     string
		interval time.Duration
		job      worker.Job
	}{
		{worker.JobNameDecay, timers.DecayInterval(), worker.NewDecayJob(pass)},
		{worker.JobNameCompletion, timers.CompletionInterval(), worker.NewCompletionJob(pass)},
		{worker.JobNameNotification, timers.NotificationInterval(), worker.NewNotificationJob(pass)},
	}

	for _, j := range jobs {
		if j.interval <= 0 {
			return fmt.Errorf("%s: %s: %s", ErrMsgFailedScheduleJob, j.name, ErrMsgInvalidSchedulerTimer)
		}
		if err := s.Schedule(j.name, j.interval, j.job); err != nil {
			return fmt.Errorf("%s: %s: %w", ErrMsgFailedScheduleJob, j.name, err)
		}
		slog.Info(LogMsgJobScheduled, "job", j.name, "interval", j.interval)
	}
	return nil
}
