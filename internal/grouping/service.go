// Package grouping runs the keyword pipeline against stored projects, with a
// cache-aside result cache in front of the record store.
package grouping

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kwtaxonomy/internal/cache"
	"kwtaxonomy/internal/db"
	"kwtaxonomy/internal/keywords"
	"kwtaxonomy/internal/metrics"
	"kwtaxonomy/internal/models"
)

// Service groups keyword records, either supplied by the caller or fetched
// from the record store for a project.
type Service struct {
	pipeline *keywords.Pipeline
	source   db.RecordFetcher
	results  *cache.Results
	recorder *metrics.Recorder
}

// NewService creates a grouping service. results and recorder may be nil.
func NewService(pipeline *keywords.Pipeline, source db.RecordFetcher, results *cache.Results, recorder *metrics.Recorder) *Service {
	return &Service{
		pipeline: pipeline,
		source:   source,
		results:  results,
		recorder: recorder,
	}
}

// Group runs the pipeline over records.
func (s *Service) Group(records []models.KeywordRecord) (*keywords.Result, error) {
	start := time.Now()
	result, err := s.pipeline.Run(records)
	if err != nil {
		s.recorder.ObserveRun(metrics.OutcomeInvalid, len(records), 0, time.Since(start))
		return nil, err
	}
	s.recorder.ObserveRun(metrics.OutcomeOK, result.InputCount, result.UniqueCount, time.Since(start))
	return result, nil
}

// ProjectGroups returns the grouped output for a stored project, serving from
// the cache when possible. Cache failures are logged and fall through to the store.
func (s *Service) ProjectGroups(ctx context.Context, projectID uuid.UUID) (*models.GroupsResponse, error) {
	version, err := s.version(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if s.results.Enabled() {
		entry, ok, err := s.results.Get(projectID, version)
		switch {
		case err != nil:
			s.recorder.ObserveCache(metrics.CacheError)
			log.Warn().Err(err).Str("project", projectID.String()).Msg("result cache read failed")
		case ok:
			s.recorder.ObserveCache(metrics.CacheHit)
			return &models.GroupsResponse{
				Groups:      entry.Groups,
				Summary:     keywords.Summarize(entry.Groups),
				InputCount:  entry.InputCount,
				UniqueCount: entry.UniqueCount,
				Cached:      true,
			}, nil
		default:
			s.recorder.ObserveCache(metrics.CacheMiss)
		}
	}

	result, err := s.compute(ctx, projectID, version)
	if err != nil {
		return nil, err
	}

	return &models.GroupsResponse{
		Groups:      result.Groups,
		Summary:     result.Summary,
		InputCount:  result.InputCount,
		UniqueCount: result.UniqueCount,
	}, nil
}

// Refresh recomputes a project's groups and caches them under its current version.
func (s *Service) Refresh(ctx context.Context, projectID uuid.UUID) error {
	version, err := s.version(ctx, projectID)
	if err != nil {
		return err
	}
	_, err = s.compute(ctx, projectID, version)
	return err
}

// version returns the project version cache entries are keyed on, or the zero
// time when caching is disabled. It must be read before the records: an import
// bumps the version in the same transaction as its inserts, so records fetched
// afterwards are never older than the version they are stored under.
func (s *Service) version(ctx context.Context, projectID uuid.UUID) (time.Time, error) {
	if !s.results.Enabled() {
		return time.Time{}, nil
	}
	v, err := s.source.ProjectVersion(ctx, projectID)
	if err != nil {
		return time.Time{}, fmt.Errorf("project version: %w", err)
	}
	return v, nil
}

func (s *Service) compute(ctx context.Context, projectID uuid.UUID, version time.Time) (*keywords.Result, error) {
	records, err := s.source.FetchKeywordRecords(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	result, err := s.Group(records)
	if err != nil {
		return nil, err
	}

	if err := s.results.Put(projectID, version, cache.Entry{
		Groups:      result.Groups,
		InputCount:  result.InputCount,
		UniqueCount: result.UniqueCount,
	}); err != nil {
		log.Warn().Err(err).Str("project", projectID.String()).Msg("result cache write failed")
	}

	return result, nil
}
