// Package scheduler runs periodic housekeeping on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crucial707/expense-tracker/internal/metrics"
	"github.com/robfig/cron/v3"
)

// ExpiredSessionDeleter is satisfied by *repo.SessionRepo.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// sweepTimeout bounds a single sweep so a stuck database cannot pile up runs.
const sweepTimeout = 30 * time.Second

// Start schedules a sweep of expired sessions on schedule (standard cron syntax
// or descriptors like "@hourly"). An empty schedule disables the sweeper. The
// returned stop function halts the schedule and waits for a running sweep.
func Start(ctx context.Context, schedule string, sessions ExpiredSessionDeleter) (stop func(), err error) {
	if schedule == "" {
		slog.Info("session sweeper disabled")
		return func() {}, nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err = c.AddFunc(schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
		defer cancel()
		Sweep(runCtx, sessions, time.Now())
	})
	if err != nil {
		return nil, fmt.Errorf("session sweep schedule %q: %w", schedule, err)
	}

	c.Start()
	slog.Info("session sweeper started", "cron", schedule)
	return func() { <-c.Stop().Done() }, nil
}

// Sweep deletes sessions that expired at or before now and returns how many
// went. Failures are logged; expiry is enforced at read time regardless.
func Sweep(ctx context.Context, sessions ExpiredSessionDeleter, now time.Time) int64 {
	n, err := sessions.DeleteExpired(ctx, now)
	if err != nil {
		slog.Error("session sweep failed", "err", err)
		return 0
	}
	metrics.AddSessionsSwept(n)
	if n > 0 {
		slog.Info("expired sessions deleted", "count", n)
	}
	return n
}
