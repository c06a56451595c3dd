package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activities-web/internal/domain"
	"github.com/mergington/activities-web/internal/metrics"
	"github.com/mergington/activities-web/internal/service"
)

// newAPIRouter собирает роутер с теми же маршрутами, что и приложение
func newAPIRouter(api *stubAPI) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := metrics.NewRecorder()

	h := NewAPIHandler(
		service.NewActivityService(api, recorder, logger),
		service.NewSignupService(api, recorder, logger),
	)

	r := chi.NewRouter()
	r.Get("/activities", h.ListActivities)
	r.Post("/activities/{activityName}/signup", h.Signup)
	r.Delete("/activities/{activityName}/unregister", h.Unregister)
	return r
}

func TestAPI_ListActivities(t *testing.T) {
	router := newAPIRouter(&stubAPI{collection: chessCollection()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activities", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	// Ответ сохраняет формат upstream-сервиса: объект с ключами-именами
	var decoded map[string]struct {
		Description     string   `json:"description"`
		Schedule        string   `json:"schedule"`
		MaxParticipants int      `json:"max_participants"`
		Participants    []string `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	require.Contains(t, decoded, "Chess Club")
	assert.Equal(t, 10, decoded["Chess Club"].MaxParticipants)
	assert.Equal(t, []string{"a@x.com"}, decoded["Chess Club"].Participants)
}

func TestAPI_ListActivities_UpstreamDown(t *testing.T) {
	router := newAPIRouter(&stubAPI{listErr: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activities", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"detail":"activities service unavailable"}`, rec.Body.String())
}

func TestAPI_Signup(t *testing.T) {
	api := &stubAPI{signupMessage: "Signed up new@x.com for Chess Club"}
	router := newAPIRouter(api)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=new%40x.com", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Signed up new@x.com for Chess Club"}`, rec.Body.String())
	assert.Equal(t, "Chess Club", api.lastActivity)
	assert.Equal(t, "new@x.com", api.lastEmail)
}

func TestAPI_Signup_RejectionPassesThrough(t *testing.T) {
	api := &stubAPI{signupErr: &domain.RejectionError{StatusCode: http.StatusBadRequest, Detail: "Activity full"}}
	router := newAPIRouter(api)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=new%40x.com", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Activity full"}`, rec.Body.String())
}

func TestAPI_Signup_MissingEmail(t *testing.T) {
	api := &stubAPI{}
	router := newAPIRouter(api)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"email query parameter is required"}`, rec.Body.String())
	assert.Empty(t, api.lastActivity)
}

func TestAPI_Unregister(t *testing.T) {
	api := &stubAPI{unregisterMessage: "Unregistered a@x.com from Chess Club"}
	router := newAPIRouter(api)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/activities/Chess%20Club/unregister?email=a%40x.com", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Unregistered a@x.com from Chess Club"}`, rec.Body.String())
}
