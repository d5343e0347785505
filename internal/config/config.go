// Package config загружает конфигурацию сервиса из TOML-файла.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     duration `toml:"read_timeout"`
	WriteTimeout    duration `toml:"write_timeout"`
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// Addr адрес для ListenAndServe
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig настройки подключения к Postgres.
// Пустой host означает demo-режим: сервис работает на in-memory хранилище.
type DatabaseConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Name         string `toml:"name"`
	SSLMode      string `toml:"ssl_mode"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// InMemory возвращает true, если сервис работает без Postgres
func (d DatabaseConfig) InMemory() bool {
	return d.Host == ""
}

// DSN строка подключения к Postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки аутентификации по API-ключам
type AuthConfig struct {
	APIKeys []string `toml:"api_keys"`
}

// BookingConfig настройки движка бронирования
type BookingConfig struct {
	StepMinutes               int    `toml:"step_minutes"`
	DefaultStatus             string `toml:"default_status"`
	RateLimitPerMinute        int    `toml:"rate_limit_per_minute"`
	BookingRateLimitPerMinute int    `toml:"booking_rate_limit_per_minute"`
}

// Load читает конфигурацию из файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     duration{10 * time.Second},
			WriteTimeout:    duration{10 * time.Second},
			ShutdownTimeout: duration{15 * time.Second},
		},
		Database: DatabaseConfig{
			Port:         5432,
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Logs: LogsConfig{
			Level: "info",
			File:  "logs/bookflow-api.log",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			ServiceName: "bookflow-api",
		},
		Booking: BookingConfig{
			StepMinutes:               30,
			DefaultStatus:             "confirmed",
			RateLimitPerMinute:        100,
			BookingRateLimitPerMinute: 10,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server port %d", c.Server.Port)
	}
	if c.Booking.StepMinutes <= 0 {
		return fmt.Errorf("config: step_minutes must be positive, got %d", c.Booking.StepMinutes)
	}
	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("config: at least one API key must be configured")
	}
	return nil
}

// duration TOML-обертка над time.Duration, принимает строки вида "10s"
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
