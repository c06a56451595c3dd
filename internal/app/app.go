package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mergington/activities-web/internal/config"
	"github.com/mergington/activities-web/internal/handler"
	"github.com/mergington/activities-web/internal/metrics"
	"github.com/mergington/activities-web/internal/service"
	"github.com/mergington/activities-web/internal/upstream/rest"
	"github.com/mergington/activities-web/internal/view"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	server *http.Server
	logger *slog.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Парсим HTML-шаблоны страницы
	renderer, err := view.New()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer(renderer)

	a.logger.Info("Application initialized successfully")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer(renderer *view.Renderer) {
	// Метрики запросов к сервису занятий
	recorder := metrics.NewRecorder()

	// Клиент API сервиса занятий
	apiClient := rest.New(a.config.Upstream.BaseURL, a.config.Upstream.Timeout())

	// Инициализируем слой сервисов
	activityService := service.NewActivityService(apiClient, recorder, a.logger)
	signupService := service.NewSignupService(apiClient, recorder, a.logger)

	// Инициализируем HTTP обработчики
	pageHandler := handler.NewPageHandler(activityService, signupService, renderer, a.logger)
	apiHandler := handler.NewAPIHandler(activityService, signupService)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// HTML-страницы
	r.Get("/", pageHandler.Index)
	r.Post("/signup", pageHandler.Signup)
	r.Post("/unregister", pageHandler.Unregister)

	// JSON API, совместимый с контрактом сервиса занятий
	r.Get("/activities", apiHandler.ListActivities)
	r.Post("/activities/{activityName}/signup", apiHandler.Signup)
	r.Delete("/activities/{activityName}/unregister", apiHandler.Unregister)

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Prometheus метрики
	r.Method(http.MethodGet, "/metrics", recorder.Handler())

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr, "upstream", a.config.Upstream.BaseURL)
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
