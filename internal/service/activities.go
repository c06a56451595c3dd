package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mergington/activities-web/internal/domain"
	"github.com/mergington/activities-web/internal/metrics"
	"github.com/mergington/activities-web/internal/upstream"
)

// ActivityService handles fetching the activity collection
type ActivityService struct {
	api      upstream.ActivitiesAPI
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(api upstream.ActivitiesAPI, recorder *metrics.Recorder, logger *slog.Logger) *ActivityService {
	return &ActivityService{
		api:      api,
		recorder: recorder,
		logger:   logger,
	}
}

// List fetches the current activity collection from the upstream service.
// The collection is always fetched fresh, never cached.
func (s *ActivityService) List(ctx context.Context) (domain.ActivityCollection, error) {
	start := time.Now()
	collection, err := s.api.ListActivities(ctx)
	s.recorder.ObserveUpstream("list_activities", outcomeFor(err), time.Since(start))

	if err != nil {
		s.logger.Error("Failed to fetch activities", "error", err)
		return nil, err
	}

	return collection, nil
}

// outcomeFor maps an upstream call result to a metrics outcome label
func outcomeFor(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	if _, ok := domain.AsRejection(err); ok {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}
