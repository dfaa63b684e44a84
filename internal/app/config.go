package app

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"cardapio/internal/config"
	"cardapio/internal/logger"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string       // state directory for the file backend, e.g. $HOME/.cardapio
	APIBaseURL string       // restaurant service, e.g. http://localhost:8080
	HTTP       *http.Client // optional; defaults to http.DefaultClient

	Backend    string // file, redis or memory
	Passphrase string // seals stored values when set
	Redis      config.RedisConfig

	Log *logger.Logger
}

// FromSettings derives the wiring options from loaded settings.
func FromSettings(cfg *config.Config, log *logger.Logger) Config {
	out := Config{
		Home:       cfg.Session.Home,
		APIBaseURL: cfg.API.BaseURL,
		Backend:    strings.ToLower(cfg.Session.Backend),
		Passphrase: cfg.Session.Passphrase,
		Redis:      cfg.Redis,
		Log:        log,
	}
	if cfg.API.Timeout > 0 {
		out.HTTP = &http.Client{Timeout: cfg.API.Timeout}
	}
	return out
}

// DefaultHome is ~/.cardapio.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".cardapio"), nil
}
