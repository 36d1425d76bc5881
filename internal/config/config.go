package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// Only used when APP_ENV=development and JWT_SECRET is unset.
	devJWTSecret = "expense-tracker-dev-secret"
)

type Config struct {
	Environment string      `yaml:"env" env:"APP_ENV" env-default:"development"`
	Port        string      `yaml:"port" env:"PORT" env-default:"8000"`
	LogLevel    string      `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Mongo       MongoConfig `yaml:"mongo"`
	Auth        AuthConfig  `yaml:"auth"`
	CORS        CORSConfig  `yaml:"cors"`
}

type MongoConfig struct {
	URI                    string        `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017/expense_tracker"`
	ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout" env:"MONGO_SERVER_SELECTION_TIMEOUT" env-default:"5s"`
	SocketTimeout          time.Duration `yaml:"socket_timeout" env:"MONGO_SOCKET_TIMEOUT" env-default:"45s"`
	MigrateOnStart         bool          `yaml:"migrate_on_start" env:"MIGRATE_ON_START" env-default:"true"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	Issuer    string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"expense-tracker"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

// CORSConfig lists the origins allowed to make credentialed cross-origin requests.
// Patterns are regular expressions matched against the whole Origin header.
type CORSConfig struct {
	AllowedOrigins        []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:8000"`
	AllowedOriginPatterns []string `yaml:"allowed_origin_patterns" env:"CORS_ALLOWED_ORIGIN_PATTERNS" env-separator:","`
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// Redacted returns a copy that is safe to log.
func (c Config) Redacted() Config {
	if c.Auth.JWTSecret != "" {
		c.Auth.JWTSecret = "[redacted]"
	}
	return c
}

// ProcessEnvironmentVariables loads the configuration from the environment. When CONFIG_PATH
// is set the YAML file is read first and environment variables are applied on top of it.
func ProcessEnvironmentVariables() (*Config, error) {
	var env Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &env); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := env.validate(); err != nil {
		return nil, err
	}

	return &env, nil
}

func (c *Config) validate() error {
	switch c.Environment {
	case EnvDevelopment:
		if c.Auth.JWTSecret == "" {
			c.Auth.JWTSecret = devJWTSecret
		}
	case EnvProduction:
		if c.Auth.JWTSecret == "" {
			return errors.New("config: JWT_SECRET is required in production")
		}
	default:
		return fmt.Errorf("config: APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Environment)
	}

	if c.Port == "" {
		return errors.New("config: PORT is empty")
	}
	if c.Mongo.URI == "" {
		return errors.New("config: MONGO_URI is empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}

	return nil
}
