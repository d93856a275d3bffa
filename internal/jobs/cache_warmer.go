package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kwtaxonomy/internal/models"
)

// ProjectLister finds projects whose records changed.
type ProjectLister interface {
	ListProjectsUpdatedSince(ctx context.Context, since time.Time) ([]models.Project, error)
}

// Refresher recomputes and caches one project's groups.
type Refresher interface {
	Refresh(ctx context.Context, projectID uuid.UUID) error
}

// CacheWarmer recomputes cached groups for recently updated projects in the background.
type CacheWarmer struct {
	projects  ProjectLister
	refresher Refresher
	interval  time.Duration

	// since is the updated_at watermark of the last completed pass.
	since time.Time
}

// NewCacheWarmer creates a new cache warmer. The first pass warms every project.
func NewCacheWarmer(projects ProjectLister, refresher Refresher, interval time.Duration) *CacheWarmer {
	return &CacheWarmer{
		projects:  projects,
		refresher: refresher,
		interval:  interval,
	}
}

// Start begins the background warm loop. It blocks until ctx is cancelled.
func (w *CacheWarmer) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("cache warmer started")

	// Run immediately on start
	w.warmAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("cache warmer stopped")
			return
		case <-ticker.C:
			w.warmAll(ctx)
		}
	}
}

// warmAll refreshes every project updated since the previous pass and returns
// how many were refreshed.
func (w *CacheWarmer) warmAll(ctx context.Context) int {
	projects, err := w.projects.ListProjectsUpdatedSince(ctx, w.since)
	if err != nil {
		log.Error().Err(err).Msg("cache warmer: failed to list projects")
		return 0
	}

	if len(projects) == 0 {
		return 0
	}

	log.Debug().Int("projects", len(projects)).Msg("cache warmer: refreshing")

	warmed := 0
	watermark := w.since
	// projects arrive ordered by updated_at; the watermark stops at the first failure
	advancing := true
	for _, p := range projects {
		// Check context before each project
		select {
		case <-ctx.Done():
			return warmed
		default:
		}

		if err := w.refresher.Refresh(ctx, p.ID); err != nil {
			if errors.Is(err, context.Canceled) {
				return warmed
			}
			log.Warn().Err(err).Str("project", p.ID.String()).Msg("cache warmer: refresh failed")
			advancing = false
			continue
		}
		warmed++
		if advancing && p.UpdatedAt.After(watermark) {
			watermark = p.UpdatedAt
		}
	}

	w.since = watermark
	return warmed
}
