package upstream

import (
	"context"

	"github.com/mergington/activities-web/internal/domain"
)

// ActivitiesAPI определяет методы для работы с сервисом занятий
type ActivitiesAPI interface {
	// ListActivities получает все занятия в том порядке, в котором их отдает сервер
	ListActivities(ctx context.Context) (domain.ActivityCollection, error)

	// Signup записывает участника с указанным email на занятие.
	// Возвращает текст подтверждения из ответа сервера.
	Signup(ctx context.Context, activityName, email string) (string, error)

	// Unregister отменяет запись участника на занятие.
	// Возвращает текст подтверждения из ответа сервера.
	Unregister(ctx context.Context, activityName, email string) (string, error)
}
