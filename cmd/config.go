package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080" validate:"required,numeric"`

	Storage    string `env:"STORAGE" envDefault:"postgres" validate:"oneof=postgres memory"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost" validate:"required_if=Storage postgres"`
	DBPort     string `env:"DB_PORT" envDefault:"5432" validate:"required_if=Storage postgres"`
	DBUser     string `env:"DB_USER" validate:"required_if=Storage postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" validate:"required_if=Storage postgres"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable" validate:"oneof=disable require verify-ca verify-full"`

	EventsProvider string `env:"EVENTS_PROVIDER" envDefault:"log" validate:"oneof=log redis"`
	CacheProvider  string `env:"CACHE_PROVIDER" envDefault:"memory" validate:"oneof=memory redis"`
	RedisURL       string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0" validate:"required_if=EventsProvider redis,required_if=CacheProvider redis"`

	PaymentGatewayURL        string        `env:"PAYMENT_GATEWAY_URL" envDefault:"https://api.chapa.co" validate:"required,url"`
	PaymentGatewaySecret     string        `env:"PAYMENT_GATEWAY_SECRET"`
	PaymentCallbackSecret    string        `env:"PAYMENT_CALLBACK_SECRET"`
	PaymentPollInterval      time.Duration `env:"PAYMENT_POLL_INTERVAL" envDefault:"2s" validate:"gte=0"`
	PaymentPollAttempts      int           `env:"PAYMENT_POLL_ATTEMPTS" envDefault:"30" validate:"gte=1"`
	PaymentReconcileSchedule string        `env:"PAYMENT_RECONCILE_SCHEDULE" envDefault:"*/30 * * * * *" validate:"required"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

var configValidator = validator.New()

// LoadConfig reads .env when it exists and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := configValidator.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) HTTPAddr() string {
	return "0.0.0.0:" + c.HTTPPort
}
