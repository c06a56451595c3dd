package domain

import (
	"errors"
	"fmt"
)

// Ошибки взаимодействия с сервисом занятий
var (
	// ErrUnavailable возвращается когда сервис занятий недоступен
	ErrUnavailable = errors.New("activities service unavailable")
)

// RejectionError возвращается когда сервер отклонил операцию (занятие заполнено,
// участник уже записан, занятие не найдено и т.д.). Detail содержит текст
// из поля detail ответа и показывается пользователю как есть.
type RejectionError struct {
	StatusCode int
	Detail     string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("rejected with status %d: %s", e.StatusCode, e.Detail)
}

// AsRejection извлекает RejectionError из цепочки ошибок
func AsRejection(err error) (*RejectionError, bool) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}

// ParseError возвращается когда ответ сервера не соответствует ожидаемой
// JSON-структуре. Декодирование завершается ошибкой, а не продолжается
// с частичными данными.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
