package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig   // Настройки HTTP сервера
	Upstream UpstreamConfig // Настройки подключения к сервису занятий
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
}

// UpstreamConfig содержит настройки подключения к API сервиса занятий
type UpstreamConfig struct {
	BaseURL        string `envconfig:"UPSTREAM_BASE_URL" default:"http://localhost:8000"`
	TimeoutSeconds int    `envconfig:"UPSTREAM_TIMEOUT_SECONDS" default:"10"`
}

// Timeout возвращает таймаут запросов к сервису занятий как time.Duration
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
