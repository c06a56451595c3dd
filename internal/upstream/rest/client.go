package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mergington/activities-web/internal/domain"
)

// Client реализует upstream.ActivitiesAPI поверх HTTP API сервиса занятий
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New создает новый экземпляр Client
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// messageResponse это успешный ответ сервера
type messageResponse struct {
	Message string `json:"message"`
}

// detailResponse это ответ сервера с ошибкой
type detailResponse struct {
	Detail string `json:"detail"`
}

// ListActivities получает все занятия
func (c *Client) ListActivities(ctx context.Context) (domain.ActivityCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/activities", nil)
	if err != nil {
		return nil, fmt.Errorf("building activities request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching activities: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading activities response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("fetching activities: unexpected status %d", resp.StatusCode)
	}

	var collection domain.ActivityCollection
	if err := json.Unmarshal(body, &collection); err != nil {
		return nil, &domain.ParseError{Err: err}
	}

	return collection, nil
}

// Signup записывает участника на занятие через POST /activities/{name}/signup?email=...
func (c *Client) Signup(ctx context.Context, activityName, email string) (string, error) {
	return c.register(ctx, http.MethodPost, "signup", activityName, email)
}

// Unregister отменяет запись через DELETE /activities/{name}/unregister?email=...
func (c *Client) Unregister(ctx context.Context, activityName, email string) (string, error) {
	return c.register(ctx, http.MethodDelete, "unregister", activityName, email)
}

// register выполняет запрос записи/отмены. Имя занятия кодируется в пути,
// email передается query-параметром.
func (c *Client) register(ctx context.Context, method, action, activityName, email string) (string, error) {
	query := url.Values{}
	query.Set("email", email)

	endpoint := fmt.Sprintf("%s/activities/%s/%s?%s",
		c.baseURL, url.PathEscape(activityName), action, query.Encode())

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("building %s request: %w", action, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s response: %w", action, err)
	}

	if resp.StatusCode/100 == 2 {
		var msg messageResponse
		if err := json.Unmarshal(body, &msg); err != nil {
			return "", &domain.ParseError{Err: err}
		}
		return msg.Message, nil
	}

	// Сервер отклонил операцию — достаем человекочитаемый текст ошибки
	var detail detailResponse
	if err := json.Unmarshal(body, &detail); err != nil || detail.Detail == "" {
		detail.Detail = http.StatusText(resp.StatusCode)
	}

	return "", &domain.RejectionError{
		StatusCode: resp.StatusCode,
		Detail:     detail.Detail,
	}
}
