package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activities-web/internal/domain"
	"github.com/mergington/activities-web/internal/metrics"
)

// fakeAPI is a programmable upstream.ActivitiesAPI for service tests
type fakeAPI struct {
	collection domain.ActivityCollection
	listErr    error

	signupMessage string
	signupErr     error
}

func (f *fakeAPI) ListActivities(ctx context.Context) (domain.ActivityCollection, error) {
	return f.collection, f.listErr
}

func (f *fakeAPI) Signup(ctx context.Context, activityName, email string) (string, error) {
	return f.signupMessage, f.signupErr
}

func (f *fakeAPI) Unregister(ctx context.Context, activityName, email string) (string, error) {
	return "", nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// counterValue reads a single series of upstream_requests_total from the registry
func counterValue(t *testing.T, registry *prometheus.Registry, operation, outcome string) float64 {
	t.Helper()

	families, err := registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != "upstream_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, label := range metric.GetLabel() {
				labels[label.GetName()] = label.GetValue()
			}
			if labels["operation"] == operation && labels["outcome"] == outcome {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestActivityService_List(t *testing.T) {
	recorder := metrics.NewRecorder()
	api := &fakeAPI{collection: domain.ActivityCollection{{Name: "Chess Club"}}}
	svc := NewActivityService(api, recorder, discardLogger())

	collection, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, collection, 1)

	assert.Equal(t, 1.0, counterValue(t, recorder.Registry(), "list_activities", metrics.OutcomeSuccess))
}

func TestActivityService_List_Error(t *testing.T) {
	recorder := metrics.NewRecorder()
	api := &fakeAPI{listErr: errors.New("connection refused")}
	svc := NewActivityService(api, recorder, discardLogger())

	_, err := svc.List(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1.0, counterValue(t, recorder.Registry(), "list_activities", metrics.OutcomeError))
}

func TestSignupService_Signup(t *testing.T) {
	recorder := metrics.NewRecorder()
	api := &fakeAPI{signupMessage: "Signed up!"}
	svc := NewSignupService(api, recorder, discardLogger())

	message, err := svc.Signup(context.Background(), "Chess Club", "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Signed up!", message)

	assert.Equal(t, 1.0, counterValue(t, recorder.Registry(), "signup", metrics.OutcomeSuccess))
}

func TestSignupService_Signup_RejectionOutcome(t *testing.T) {
	recorder := metrics.NewRecorder()
	api := &fakeAPI{signupErr: &domain.RejectionError{StatusCode: http.StatusBadRequest, Detail: "Activity full"}}
	svc := NewSignupService(api, recorder, discardLogger())

	_, err := svc.Signup(context.Background(), "Chess Club", "new@x.com")
	require.Error(t, err)

	// Отказ сервера и транспортная ошибка различаются в метриках
	assert.Equal(t, 1.0, counterValue(t, recorder.Registry(), "signup", metrics.OutcomeRejected))
	assert.Equal(t, 0.0, counterValue(t, recorder.Registry(), "signup", metrics.OutcomeError))
}
