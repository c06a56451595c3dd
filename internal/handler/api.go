package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mergington/activities-web/internal/service"
)

// APIHandler проксирует JSON API сервиса занятий. Контракт совпадает с
// upstream-сервисом, поэтому программные клиенты могут работать через
// этот фронтенд без изменений.
type APIHandler struct {
	activityService *service.ActivityService
	signupService   *service.SignupService
}

// NewAPIHandler создает новый APIHandler
func NewAPIHandler(activityService *service.ActivityService, signupService *service.SignupService) *APIHandler {
	return &APIHandler{
		activityService: activityService,
		signupService:   signupService,
	}
}

// MessageResponse представляет успешный ответ операции записи
type MessageResponse struct {
	Message string `json:"message"`
}

// ListActivities обрабатывает GET /activities
func (h *APIHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	collection, err := h.activityService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, collection)
}

// Signup обрабатывает POST /activities/{activityName}/signup?email=...
func (h *APIHandler) Signup(w http.ResponseWriter, r *http.Request) {
	activityName, email, ok := h.registrationParams(w, r)
	if !ok {
		return
	}

	message, err := h.signupService.Signup(r.Context(), activityName, email)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: message})
}

// Unregister обрабатывает DELETE /activities/{activityName}/unregister?email=...
func (h *APIHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	activityName, email, ok := h.registrationParams(w, r)
	if !ok {
		return
	}

	message, err := h.signupService.Unregister(r.Context(), activityName, email)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: message})
}

// registrationParams извлекает имя занятия из пути и email из query-параметров
func (h *APIHandler) registrationParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	activityName, err := url.PathUnescape(chi.URLParam(r, "activityName"))
	if err != nil || activityName == "" {
		RespondWithDetail(w, r, http.StatusBadRequest, "invalid activity name")
		return "", "", false
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		RespondWithDetail(w, r, http.StatusBadRequest, "email query parameter is required")
		return "", "", false
	}

	return activityName, email, true
}
