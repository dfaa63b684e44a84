package app

import (
	"context"
	"fmt"
	"net/http"

	"cardapio/internal/api"
	"cardapio/internal/cart"
	"cardapio/internal/checkout"
	"cardapio/internal/config"
	"cardapio/internal/domain"
	"cardapio/internal/logger"
	catalogsvc "cardapio/internal/services/catalog"
	orderssvc "cardapio/internal/services/orders"
	sessionsvc "cardapio/internal/services/session"
	"cardapio/internal/store"
)

// Wire bundles the store, services, and client for the CLI.
type Wire struct {
	Store   domain.KeyValueStore
	API     *api.Client
	Session *sessionsvc.Service
	Catalog *catalogsvc.Service
	Orders  *orderssvc.Service
	Carts   *store.CartRepository
	HTTP    *http.Client
	Log     *logger.Logger

	close func() error
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg Config) (*Wire, error) {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	kv, closeFn, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Passphrase != "" {
		kv = store.NewSealedStore(kv, cfg.Passphrase)
	}

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	client := api.New(cfg.APIBaseURL, httpClient, log)

	sessionSvc := sessionsvc.New(kv, client, log)

	return &Wire{
		Store:   kv,
		API:     client,
		Session: sessionSvc,
		Catalog: catalogsvc.New(client, sessionSvc, log),
		Orders:  orderssvc.New(client, sessionSvc, log),
		Carts:   store.NewCartRepository(kv, log),
		HTTP:    httpClient,
		Log:     log,
		close:   closeFn,
	}, nil
}

func openStore(ctx context.Context, cfg Config) (domain.KeyValueStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case "", config.SessionBackendFile:
		home := cfg.Home
		if home == "" {
			var err error
			if home, err = DefaultHome(); err != nil {
				return nil, nil, err
			}
		}
		fs, err := store.NewFileStore(home)
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil
	case config.SessionBackendRedis:
		rs, err := store.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Close, nil
	case config.SessionBackendMemory:
		return store.NewMemoryStore(), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
}

// Checkout returns an orchestrator that submits c.
func (w *Wire) Checkout(c *cart.Cart) *checkout.Orchestrator {
	return checkout.New(w.API, w.Session, c, w.Log)
}

// Close releases the store connection, if any.
func (w *Wire) Close() error {
	if w.close == nil {
		return nil
	}
	return w.close()
}
