package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mergington/activities-web/internal/metrics"
	"github.com/mergington/activities-web/internal/upstream"
)

// SignupService handles signing participants up for activities
type SignupService struct {
	api      upstream.ActivitiesAPI
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewSignupService creates a new SignupService
func NewSignupService(api upstream.ActivitiesAPI, recorder *metrics.Recorder, logger *slog.Logger) *SignupService {
	return &SignupService{
		api:      api,
		recorder: recorder,
		logger:   logger,
	}
}

// Signup registers an email for an activity and returns the server's
// confirmation message. Capacity and duplicate rules are enforced by the
// upstream service; rejections come back as domain.RejectionError.
func (s *SignupService) Signup(ctx context.Context, activityName, email string) (string, error) {
	start := time.Now()
	message, err := s.api.Signup(ctx, activityName, email)
	s.recorder.ObserveUpstream("signup", outcomeFor(err), time.Since(start))

	if err != nil {
		s.logger.Error("Signup failed", "activity", activityName, "error", err)
		return "", err
	}

	return message, nil
}

// Unregister removes an email from an activity and returns the server's
// confirmation message
func (s *SignupService) Unregister(ctx context.Context, activityName, email string) (string, error) {
	start := time.Now()
	message, err := s.api.Unregister(ctx, activityName, email)
	s.recorder.ObserveUpstream("unregister", outcomeFor(err), time.Since(start))

	if err != nil {
		s.logger.Error("Unregister failed", "activity", activityName, "error", err)
		return "", err
	}

	return message, nil
}
