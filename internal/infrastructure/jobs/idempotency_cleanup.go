package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sangkips/invoice-ticket-api/internal/domain/repository"
)

// IdempotencyCleanup periodically deletes expired idempotency keys
type IdempotencyCleanup struct {
	repo     repository.IdempotencyRepository
	schedule string
	logger   *slog.Logger
	now      func() time.Time
	cron     *cron.Cron
}

// NewIdempotencyCleanup creates the job. schedule is a standard cron spec or a
// descriptor such as "@hourly".
func NewIdempotencyCleanup(repo repository.IdempotencyRepository, schedule string, logger *slog.Logger) *IdempotencyCleanup {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdempotencyCleanup{
		repo:     repo,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// RunOnce purges the keys that expired before now
func (j *IdempotencyCleanup) RunOnce(ctx context.Context) (int64, error) {
	removed, err := j.repo.DeleteExpired(ctx, j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "idempotency cleanup failed", "error", err)
		return 0, err
	}
	j.logger.InfoContext(ctx, "idempotency cleanup finished", "removed", removed)
	return removed, nil
}

// Start schedules the job and returns immediately
func (j *IdempotencyCleanup) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = j.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("invalid idempotency cleanup schedule %q: %w", j.schedule, err)
	}

	c.Start()
	j.cron = c
	j.logger.Info("idempotency cleanup scheduled", "schedule", j.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (j *IdempotencyCleanup) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
}
