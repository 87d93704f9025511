// config предоставляет структуру конфигурации customers-service
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Значения storage.backend.
const (
	BackendPostgres = "postgres"
	BackendORM      = "orm"
)

// Config — корневая конфигурация сервиса.
type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	HTTP         HTTPConfig         `yaml:"http"`
	Postgres     PostgresConfig     `yaml:"postgres"`
	Storage      StorageConfig      `yaml:"storage"`
	S3           S3Config           `yaml:"s3"`
	ProfileImage ProfileImageConfig `yaml:"profile_image"`
	Password     PasswordConfig     `yaml:"password"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Timeouts     TimeoutConfig      `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки HTTP-сервера (API + /livez, /healthz, /metrics).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

type PostgresConfig struct {
	URL string `yaml:"url" env:"POSTGRES" env-required:"true"`
}

// StorageConfig — выбор реализации хранилища клиентов при сборке приложения.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"postgres"`
}

type S3Config struct {
	Endpoint     string `yaml:"endpoint" env:"S3_ENDPOINT" env-required:"true"`
	RootUser     string `yaml:"root_user" env:"S3_ROOT_USER" env-required:"true"`
	RootPassword string `yaml:"root_password" env:"S3_ROOT_PASSWORD" env-required:"true"`
	Bucket       string `yaml:"bucket" env:"S3_BUCKET" env-required:"true"`
}

type ProfileImageConfig struct {
	MaxSizeBytes int64 `yaml:"max_size_bytes" env:"PROFILE_IMAGE_MAX_SIZE_BYTES" env-default:"5242880"`
}

type PasswordConfig struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"PASSWORD_BCRYPT_COST" env-default:"10"`
}

// TelemetryConfig — opt-in экспорт трейсов/метрик OpenTelemetry в stdout.
type TelemetryConfig struct {
	Traces          bool          `yaml:"traces" env:"TELEMETRY_TRACES" env-default:"false"`
	Metrics         bool          `yaml:"metrics" env:"TELEMETRY_METRICS" env-default:"false"`
	MetricsInterval time.Duration `yaml:"metrics_interval" env:"TELEMETRY_METRICS_INTERVAL" env-default:"30s"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Request  time.Duration `yaml:"request" env:"REQUEST_TIMEOUT" env-default:"5s"`
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	var (
		c   *Config
		err error
	)

	switch envPath := os.Getenv("CONFIG_PATH"); {
	// 1) Явный путь.
	case path != "":
		c, err = tryRead(path)
	// 2) CONFIG_PATH.
	case envPath != "":
		c, err = tryRead(envPath)
	default:
		// 3) ./local.yaml.
		if _, statErr := os.Stat("local.yaml"); statErr == nil {
			c, err = tryRead("local.yaml")
			break
		}

		// 4) Только ENV.
		if err = cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
		c = &cfg
	}

	if err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) validate() error {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendPostgres
	}

	if c.ProfileImage.MaxSizeBytes == 0 {
		c.ProfileImage.MaxSizeBytes = 5 * 1024 * 1024 // 5 MiB
	}

	if c.Timeouts.Shutdown == 0 {
		c.Timeouts.Shutdown = 10 * time.Second
	}

	if c.Telemetry.MetricsInterval == 0 {
		c.Telemetry.MetricsInterval = 30 * time.Second
	}

	if c.Postgres.URL == "" {
		return fmt.Errorf("postgres.url is required")
	}

	if c.Storage.Backend != BackendPostgres && c.Storage.Backend != BackendORM {
		return fmt.Errorf("storage.backend must be %q or %q", BackendPostgres, BackendORM)
	}

	if c.HTTP.Host == "" {
		return fmt.Errorf("http.host is required")
	}

	if p, err := strconv.Atoi(c.HTTP.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("http.port must be a valid TCP port (1..65535)")
	}

	if c.S3.Endpoint == "" {
		return fmt.Errorf("s3.endpoint is required")
	}

	if c.S3.RootUser == "" {
		return fmt.Errorf("s3.root_user is required")
	}

	if c.S3.RootPassword == "" {
		return fmt.Errorf("s3.root_password is required")
	}

	if c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required")
	}

	if c.ProfileImage.MaxSizeBytes < 0 {
		return fmt.Errorf("profile_image.max_size_bytes must be >= 0")
	}

	// 0 — дефолтная стоимость bcrypt, верхняя граница — bcrypt.MaxCost.
	if c.Password.BcryptCost < 0 || c.Password.BcryptCost > 31 {
		return fmt.Errorf("password.bcrypt_cost must be in range 0..31")
	}

	if c.Timeouts.Request < 0 {
		return fmt.Errorf("timeouts.request must be >= 0")
	}

	return nil
}
