package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activities-web/internal/app"
	"github.com/mergington/activities-web/internal/config"
)

// TestEnvironment содержит все ресурсы необходимые для интеграционных тестов
type TestEnvironment struct {
	Upstream *httptest.Server
	Fake     *fakeUpstream
	App      *app.App
	BaseURL  string
	ctx      context.Context
}

// SetupTestEnvironment создает и инициализирует полное тестовое окружение
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	ctx := context.Background()

	// Поднимаем фейковый сервис занятий вместо настоящего upstream
	fake := newFakeUpstream()
	upstreamServer := httptest.NewServer(fake.router())

	// Создаем конфигурацию для приложения
	// Используем высокий порт для тестов чтобы избежать конфликтов
	testPort := "18081"
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port: testPort,
			Host: "127.0.0.1",
		},
		Upstream: config.UpstreamConfig{
			BaseURL:        upstreamServer.URL,
			TimeoutSeconds: 5,
		},
	}

	// Создаем и инициализируем приложение
	application, err := app.New(cfg)
	require.NoError(t, err, "Failed to create application")

	err = application.Initialize(ctx)
	require.NoError(t, err, "Failed to initialize application")

	// Запускаем сервер в фоне
	go func() {
		if err := application.Run(); err != nil && err != http.ErrServerClosed {
			t.Logf("Server error: %v", err)
		}
	}()

	env := &TestEnvironment{
		Upstream: upstreamServer,
		Fake:     fake,
		App:      application,
		BaseURL:  fmt.Sprintf("http://%s:%s", cfg.Server.Host, testPort),
		ctx:      ctx,
	}

	env.WaitForHealthCheck(t)
	return env
}

// Cleanup освобождает ресурсы тестового окружения
func (env *TestEnvironment) Cleanup(t *testing.T) {
	t.Helper()

	shutdownCtx, cancel := context.WithTimeout(env.ctx, 10*time.Second)
	defer cancel()

	if err := env.App.Shutdown(shutdownCtx); err != nil {
		t.Logf("Failed to shutdown application: %v", err)
	}
	env.Upstream.Close()
}

// WaitForHealthCheck ждет пока приложение начнет отвечать на /health
func (env *TestEnvironment) WaitForHealthCheck(t *testing.T) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(env.BaseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("Application did not become healthy in time")
}

// GetPage выполняет GET запрос и возвращает тело ответа как строку
func (env *TestEnvironment) GetPage(t *testing.T, path string) (int, string) {
	t.Helper()

	resp, err := http.Get(env.BaseURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

// PostForm отправляет форму и возвращает тело ответа как строку
func (env *TestEnvironment) PostForm(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()

	resp, err := http.Post(env.BaseURL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

// fakeActivity это занятие в фейковом сервисе
type fakeActivity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// fakeUpstream эмулирует API сервиса занятий в памяти
type fakeUpstream struct {
	mu    sync.Mutex
	order []string
	data  map[string]*fakeActivity
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		order: []string{"Chess Club", "Programming Class", "Gym Class"},
		data: map[string]*fakeActivity{
			"Chess Club": {
				Description:     "Learn strategies and compete in chess tournaments",
				Schedule:        "Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: 12,
				Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
			},
			"Programming Class": {
				Description:     "Learn programming fundamentals and build software projects",
				Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
				MaxParticipants: 20,
				Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
			},
			"Gym Class": {
				Description:     "Physical education and sports activities",
				Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
				MaxParticipants: 30,
				Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
			},
		},
	}
}

func (f *fakeUpstream) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/activities", f.listActivities)
	r.Post("/activities/{activityName}/signup", f.signup)
	r.Delete("/activities/{activityName}/unregister", f.unregister)
	return r
}

// listActivities отдает занятия объектом с фиксированным порядком ключей
func (f *fakeUpstream) listActivities(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		buf.Write(key)
		buf.WriteByte(':')
		value, _ := json.Marshal(f.data[name])
		buf.Write(value)
	}
	buf.WriteByte('}')

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

func (f *fakeUpstream) signup(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name, activity, email, ok := f.lookup(w, r)
	if !ok {
		return
	}

	for _, p := range activity.Participants {
		if p == email {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Student is already signed up"})
			return
		}
	}
	if len(activity.Participants) >= activity.MaxParticipants {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Activity is full"})
		return
	}

	activity.Participants = append(activity.Participants, email)
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Signed up %s for %s", email, name)})
}

func (f *fakeUpstream) unregister(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name, activity, email, ok := f.lookup(w, r)
	if !ok {
		return
	}

	for i, p := range activity.Participants {
		if p == email {
			activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Unregistered %s from %s", email, name)})
			return
		}
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Student is not registered for this activity"})
}

// lookup достает занятие и email из запроса; пишет ошибку при неудаче
func (f *fakeUpstream) lookup(w http.ResponseWriter, r *http.Request) (string, *fakeActivity, string, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, "activityName"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid activity name"})
		return "", nil, "", false
	}

	activity, exists := f.data[name]
	if !exists {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Activity not found"})
		return "", nil, "", false
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email is required"})
		return "", nil, "", false
	}

	return name, activity, email, true
}

func writeJSON(w http.ResponseWriter, statusCode int, payload map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
