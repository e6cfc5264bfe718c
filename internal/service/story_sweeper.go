package service

import (
	"context"
	"log/slog"
	"time"

	"glimpse/internal/cache"
	"glimpse/internal/middleware"
	"glimpse/internal/observability"
	"glimpse/internal/repository"

	"github.com/robfig/cron/v3"
)

// StorySweeper physically purges expired stories on a schedule. Reads
// never depend on it: the expiry filter is authoritative, the sweep only
// reclaims storage.
type StorySweeper struct {
	storyRepo repository.StoryRepository
	cron      *cron.Cron
	schedule  string
}

// NewStorySweeper returns a sweeper running on the given cron schedule
// (e.g. "@hourly").
func NewStorySweeper(storyRepo repository.StoryRepository, schedule string) *StorySweeper {
	if schedule == "" {
		schedule = "@hourly"
	}
	return &StorySweeper{
		storyRepo: storyRepo,
		cron:      cron.New(),
		schedule:  schedule,
	}
}

// Start registers the sweep job and starts the scheduler.
func (s *StorySweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.Sweep(ctx)
	}); err != nil {
		return err
	}
	s.cron.Start()
	middleware.Logger.Info("story sweeper started", slog.String("schedule", s.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *StorySweeper) Stop(ctx context.Context) error {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep purges stories expired as of now and returns how many were removed.
// Re-running on a clean table is a no-op.
func (s *StorySweeper) Sweep(ctx context.Context) int64 {
	start := time.Now()
	purged, err := s.storyRepo.PurgeExpired(ctx, start)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "story sweep failed", slog.String("error", err.Error()))
		return 0
	}
	observability.ObserveSweep(start, purged)
	if purged > 0 {
		cache.Invalidate(ctx, cache.StoryFeedKey)
		middleware.Logger.InfoContext(ctx, "story sweep completed",
			slog.Int64("purged", purged),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
	return purged
}
