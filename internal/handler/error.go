package handler

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/mergington/activities-web/internal/domain"
)

// DetailResponse представляет ответ с ошибкой в формате сервиса занятий
type DetailResponse struct {
	Detail string `json:"detail"`
}

// RespondWithDetail отправляет ответ с ошибкой
func RespondWithDetail(w http.ResponseWriter, r *http.Request, statusCode int, detail string) {
	render.Status(r, statusCode)
	render.JSON(w, r, DetailResponse{Detail: detail})
}

// HandleAPIError преобразует ошибки вызова сервиса занятий в HTTP ответы.
// Отказы сервера проходят насквозь с исходным статусом и текстом,
// транспортные ошибки превращаются в 502.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	if rejection, ok := domain.AsRejection(err); ok {
		RespondWithDetail(w, r, rejection.StatusCode, rejection.Detail)
		return
	}
	RespondWithDetail(w, r, http.StatusBadGateway, domain.ErrUnavailable.Error())
}
