package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "CARDAPIO"

	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

type Config struct {
	App        AppConfig
	API        APIConfig
	Restaurant RestaurantConfig
	Session    SessionConfig
	Redis      RedisConfig
	MockAPI    MockAPIConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the cross-field rules envconfig cannot express.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api base url %q: %w", c.API.BaseURL, err)
	}
	switch strings.ToLower(c.Session.Backend) {
	case SessionBackendFile, SessionBackendMemory:
	case SessionBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("session backend redis requires CARDAPIO_REDIS_URL or CARDAPIO_REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"CARDAPIO_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"CARDAPIO_LOG_LEVEL" default:"warn"`
	LogFormat    string `envconfig:"CARDAPIO_LOG_FORMAT" default:"console"`
	LogWarnStack bool   `envconfig:"CARDAPIO_LOG_WARN_STACK" default:"false"`
}

type APIConfig struct {
	BaseURL string `envconfig:"CARDAPIO_API_BASE_URL" default:"http://localhost:8080"`

	// Timeout of 0 leaves requests unbounded.
	Timeout time.Duration `envconfig:"CARDAPIO_API_TIMEOUT" default:"0s"`
}

type RestaurantConfig struct {
	Username string `envconfig:"CARDAPIO_RESTAURANT"`
}

type SessionConfig struct {
	Backend    string `envconfig:"CARDAPIO_SESSION_BACKEND" default:"file"`
	Home       string `envconfig:"CARDAPIO_HOME_DIR"`
	Passphrase string `envconfig:"CARDAPIO_SESSION_PASSPHRASE"`
}

// Sealed reports whether stored session values are encrypted at rest.
func (s SessionConfig) Sealed() bool {
	return s.Passphrase != ""
}

type RedisConfig struct {
	URL          string        `envconfig:"CARDAPIO_REDIS_URL"`
	Address      string        `envconfig:"CARDAPIO_REDIS_ADDR"`
	Password     string        `envconfig:"CARDAPIO_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARDAPIO_REDIS_DB" default:"0"`
	KeyPrefix    string        `envconfig:"CARDAPIO_REDIS_KEY_PREFIX" default:"cardapio"`
	TTL          time.Duration `envconfig:"CARDAPIO_REDIS_TTL" default:"0s"`
	DialTimeout  time.Duration `envconfig:"CARDAPIO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARDAPIO_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"CARDAPIO_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type MockAPIConfig struct {
	Addr string `envconfig:"CARDAPIO_MOCKAPI_ADDR" default:":8080"`
}
