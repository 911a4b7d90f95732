// Package config loads service settings from an optional .env file and the environment.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds application, PostgreSQL, Redis, Kafka and logging settings.
type Config struct {
	// Application
	AppHost  string `env:"APP_HOST" envDefault:"0.0.0.0" validate:"required"`
	AppPort  string `env:"APP_PORT" envDefault:"3000" validate:"required,numeric"`
	LogLevel string `env:"APP_LOG_LEVEL" envDefault:"info" validate:"loglevel"`

	// PostgreSQL. DatabaseURL, when set, wins over the individual parts.
	DatabaseURL    string        `env:"DATABASE_URL"`
	PGHost         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	PGPort         int           `env:"POSTGRES_PORT" envDefault:"5432" validate:"gt=0"`
	PGUser         string        `env:"POSTGRES_USER" envDefault:"user"`
	PGPassword     string        `env:"POSTGRES_PASSWORD" envDefault:"password"`
	PGDB           string        `env:"POSTGRES_DB" envDefault:"exercises"`
	PGMaxOpenConns int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"16" validate:"gt=0"`
	PGMaxIdleConns int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"8" validate:"gte=0"`
	StoreTimeout   time.Duration `env:"STORE_TIMEOUT" envDefault:"5s" validate:"gt=0"`

	// Redis
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost" validate:"required"`
	RedisPort         int    `env:"REDIS_PORT" envDefault:"6379" validate:"gt=0"`
	RedisDB           int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisPoolSize     int    `env:"REDIS_POOL_SIZE" envDefault:"10" validate:"gt=0"`
	RedisMinIdleConns int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2" validate:"gte=0"`
	RedisExpSecond    int    `env:"REDIS_EXP_SECOND" envDefault:"60" validate:"gt=0"`

	// Kafka. An empty broker list disables event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"exercise.logged"`
}

var allowedLogLevels = map[string]bool{
	"debug":  true,
	"info":   true,
	"warn":   true,
	"error":  true,
	"dpanic": true,
	"panic":  true,
	"fatal":  true,
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	return allowedLogLevels[fieldLevel.Field().String()]
}

// Load reads the env file at path (missing files are ignored), then the
// environment, and validates the result.
func Load(path string) (*Config, error) {
	if path != "" {
		_ = godotenv.Load(path)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	brokers := cfg.KafkaBrokers[:0]
	for _, b := range cfg.KafkaBrokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	cfg.KafkaBrokers = brokers

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}
	return validate.Struct(c)
}

// HTTPAddr is the listen address of the HTTP server.
func (c *Config) HTTPAddr() string {
	return net.JoinHostPort(c.AppHost, c.AppPort)
}

// PostgresDSN returns DatabaseURL or a DSN assembled from the POSTGRES_* parts.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, net.JoinHostPort(c.PGHost, strconv.Itoa(c.PGPort)), c.PGDB)
}

// RedisAddr returns host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, strconv.Itoa(c.RedisPort))
}

// RedisExp is the TTL of cached log documents.
func (c *Config) RedisExp() time.Duration {
	return time.Duration(c.RedisExpSecond) * time.Second
}
