package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/mergington/activities-web/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// MessageKind определяет стиль сообщения в области уведомлений
type MessageKind string

const (
	// MessageSuccess это подтверждение успешной операции
	MessageSuccess MessageKind = "success"
	// MessageError это сообщение об ошибке
	MessageError MessageKind = "error"
)

// Page содержит все данные для рендеринга страницы.
// Рендеринг — чистая функция от этих данных, без обращений к сети.
type Page struct {
	Activities  domain.ActivityCollection
	ListError   bool        // список занятий не удалось загрузить
	Email       string      // сохраненное значение поля email
	Message     string      // текст в области уведомлений, пустая строка скрывает область
	MessageKind MessageKind // message kind applies only when Message is set
}

// Renderer превращает коллекцию занятий и состояние формы в HTML-страницу
type Renderer struct {
	tmpl *template.Template
}

// New парсит встроенные шаблоны и создает Renderer
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render пишет готовую страницу в w. Страница сначала собирается в буфер,
// чтобы при ошибке шаблона клиенту не ушел частичный ответ.
func (r *Renderer) Render(w io.Writer, page Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
