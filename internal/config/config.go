package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is read from the environment. DATABASE_URL and JWT_SECRET have
// no defaults on purpose: a missing signing secret or connection string
// must stop the process, never degrade to an insecure fallback.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL" env-required:"true"`
	JWTSecret      string        `env:"JWT_SECRET" env-required:"true"`
	Port           string        `env:"PORT" env-default:"8080"`
	SessionTTL     time.Duration `env:"SESSION_TTL" env-default:"1h"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" env-separator:","`
	AuthServiceURL string        `env:"AUTH_SERVICE_URL"`
	RedisURL       string        `env:"REDIS_URL"`
	CacheTTL       time.Duration `env:"CACHE_TTL" env-default:"10s"`
}

// Admin is the provisioning config consumed only by cmd/ensureadmin.
type Admin struct {
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
	Name        string `env:"ADMIN_NAME" env-default:"Administrator"`
	Email       string `env:"ADMIN_EMAIL" env-required:"true"`
	Password    string `env:"ADMIN_PASSWORD" env-required:"true"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadAdmin() (*Admin, error) {
	_ = godotenv.Load()
	var cfg Admin
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
