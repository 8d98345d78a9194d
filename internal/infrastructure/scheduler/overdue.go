// Package scheduler runs the periodic background jobs of the service.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// OverdueRefresher recomputes the overdue report and returns how many loans
// are overdue.
type OverdueRefresher interface {
	RefreshOverdue(ctx context.Context) (int, error)
}

// OverdueJob refreshes the overdue report on a cron schedule. It only reads
// domain data.
type OverdueJob struct {
	refresher OverdueRefresher
	timeout   time.Duration

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
	busy    bool
}

func NewOverdueJob(r OverdueRefresher) *OverdueJob {
	return &OverdueJob{
		refresher: r,
		timeout:   time.Minute,
		cron:      cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
	}
}

// Start schedules the job. An empty schedule leaves the job disabled.
func (j *OverdueJob) Start(schedule string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if schedule == "" {
		log.Info().Msg("scheduler: overdue refresh disabled")
		return nil
	}
	if j.running {
		return nil
	}
	if _, err := j.cron.AddFunc(schedule, j.RunOnce); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	j.cron.Start()
	j.running = true
	log.Info().Str("schedule", schedule).Msg("scheduler: overdue refresh started")
	return nil
}

// Stop waits for a running refresh to finish.
func (j *OverdueJob) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.mu.Unlock()

	<-j.cron.Stop().Done()
	log.Info().Msg("scheduler: overdue refresh stopped")
}

// RunOnce performs one refresh; overlapping runs are skipped.
func (j *OverdueJob) RunOnce() {
	j.mu.Lock()
	if j.busy {
		j.mu.Unlock()
		log.Warn().Msg("scheduler: overdue refresh skipped, previous run still busy")
		return
	}
	j.busy = true
	j.mu.Unlock()
	defer func() {
		j.mu.Lock()
		j.busy = false
		j.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	n, err := j.refresher.RefreshOverdue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("scheduler: overdue refresh failed")
		return
	}
	log.Info().Int("overdue", n).Dur("took", time.Since(start)).Msg("scheduler: overdue refresh done")
}
