package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
	StoreRedis  = "redis"
)

type Env struct {
	AppAddr     string `env:"APP_ADDR"     envDefault:":8080"`
	GinMode     string `env:"GIN_MODE"`
	PingMessage string `env:"PING_MESSAGE" envDefault:"ping"`

	TripStore  string `env:"TRIP_STORE"      envDefault:"memory"`
	DBUser     string `env:"DB_USER"         envDefault:"root"`
	DBPassword string `env:"DB_PASSWORD"`
	DBAddr     string `env:"DB_ADDR"         envDefault:"127.0.0.1:3306"`
	DBName     string `env:"DB_NAME"         envDefault:"tripdiary"`
	RedisURL   string `env:"REDIS_URL"       envDefault:"redis://localhost:6379"`
	RedisKey   string `env:"REDIS_TRIPS_KEY"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	AuthSecret         string   `env:"AUTH_SECRET"`
	BodyLimitBytes     int64    `env:"BODY_LIMIT_BYTES"     envDefault:"1048576"`
}

// LoadEnv reads the process environment, after overlaying a .env file from
// the working directory when one exists.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.TripStore = strings.ToLower(strings.TrimSpace(cfg.TripStore))
	cfg.AuthSecret = strings.TrimSpace(cfg.AuthSecret)

	origins := cfg.CORSAllowedOrigins[:0]
	for _, o := range cfg.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORSAllowedOrigins = origins

	if cfg.BodyLimitBytes <= 0 {
		return Env{}, fmt.Errorf("BODY_LIMIT_BYTES must be positive, got %d", cfg.BodyLimitBytes)
	}
	return cfg, nil
}
