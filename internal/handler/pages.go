package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mergington/activities-web/internal/domain"
	"github.com/mergington/activities-web/internal/service"
	"github.com/mergington/activities-web/internal/view"
)

// Generic user-facing messages for failures without server-provided text
const (
	msgSignupFailed     = "Failed to sign up. Please try again."
	msgUnregisterFailed = "Failed to unregister. Please try again."
	msgMissingFields    = "Please provide both an email and an activity."
)

// PageHandler обрабатывает HTML-страницы: список занятий и форму записи
type PageHandler struct {
	activityService *service.ActivityService
	signupService   *service.SignupService
	renderer        *view.Renderer
	logger          *slog.Logger
}

// NewPageHandler создает новый PageHandler
func NewPageHandler(
	activityService *service.ActivityService,
	signupService *service.SignupService,
	renderer *view.Renderer,
	logger *slog.Logger,
) *PageHandler {
	return &PageHandler{
		activityService: activityService,
		signupService:   signupService,
		renderer:        renderer,
		logger:          logger,
	}
}

// Index обрабатывает GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.loadActivities(r.Context())
	h.render(w, page)
}

// Signup обрабатывает POST /signup (форма записи на занятие)
func (h *PageHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	activityName := r.PostFormValue("activity")

	// Поля обязательны на форме; проверка здесь на случай запроса мимо формы
	if email == "" || activityName == "" {
		page := h.loadActivities(r.Context())
		page.Email = email
		page.Message = msgMissingFields
		page.MessageKind = view.MessageError
		h.render(w, page)
		return
	}

	message, err := h.signupService.Signup(r.Context(), activityName, email)
	h.renderOutcome(r.Context(), w, email, message, msgSignupFailed, err)
}

// Unregister обрабатывает POST /unregister (кнопка отмены записи у участника)
func (h *PageHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	activityName := r.PostFormValue("activity")

	if email == "" || activityName == "" {
		page := h.loadActivities(r.Context())
		page.Message = msgMissingFields
		page.MessageKind = view.MessageError
		h.render(w, page)
		return
	}

	message, err := h.signupService.Unregister(r.Context(), activityName, email)

	// Отмена записи не очищает и не заполняет форму записи
	page := h.loadActivities(r.Context())
	switch {
	case err == nil:
		page.Message = message
		page.MessageKind = view.MessageSuccess
	default:
		page.Message = rejectionDetail(err, msgUnregisterFailed)
		page.MessageKind = view.MessageError
	}
	h.render(w, page)
}

// renderOutcome рендерит страницу по результату записи. При успехе список
// перезагружается и поле email очищается; при отказе сервера текст ошибки
// показывается как есть, а email остается в форме для повторной отправки.
func (h *PageHandler) renderOutcome(ctx context.Context, w http.ResponseWriter, email, message, genericError string, err error) {
	page := h.loadActivities(ctx)

	switch {
	case err == nil:
		page.Message = message
		page.MessageKind = view.MessageSuccess
	default:
		page.Email = email
		page.Message = rejectionDetail(err, genericError)
		page.MessageKind = view.MessageError
	}

	h.render(w, page)
}

// loadActivities получает свежую коллекцию занятий для рендеринга.
// При ошибке страница рендерится с сообщением об ошибке вместо списка,
// форма остается рабочей.
func (h *PageHandler) loadActivities(ctx context.Context) view.Page {
	collection, err := h.activityService.List(ctx)
	if err != nil {
		return view.Page{ListError: true}
	}
	return view.Page{Activities: collection}
}

// render пишет страницу в ответ
func (h *PageHandler) render(w http.ResponseWriter, page view.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, page); err != nil {
		h.logger.Error("Failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// rejectionDetail возвращает текст отказа сервера или общее сообщение
// для транспортных ошибок
func rejectionDetail(err error, generic string) string {
	if rejection, ok := domain.AsRejection(err); ok {
		return rejection.Detail
	}
	return generic
}
