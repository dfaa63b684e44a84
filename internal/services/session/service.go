package session

import (
	"context"
	"encoding/json"

	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
	"cardapio/internal/logger"
	"cardapio/internal/validate"
)

// Keys of the session records.
const (
	ClientKey     = "clientInfo"
	RestaurantKey = "restaurant"
)

// Service persists who is logged in and which restaurant is in use.
type Service struct {
	kv  domain.KeyValueStore
	api domain.ClientAPI
	log *logger.Logger
}

// New constructs a session Service.
func New(kv domain.KeyValueStore, api domain.ClientAPI, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{kv: kv, api: api, log: log}
}

// CurrentClient returns the logged-in client. The boolean is false when no
// one is logged in, including when the stored record was unreadable.
func (s *Service) CurrentClient(ctx context.Context) (domain.Client, bool, error) {
	var c domain.Client
	ok, err := s.load(ctx, ClientKey, &c)
	if err != nil || !ok {
		return domain.Client{}, false, err
	}
	if c.ID == 0 {
		s.purge(ctx, ClientKey, apperrors.New(apperrors.CodeCorruptLocalState, "client record has no id"))
		return domain.Client{}, false, nil
	}
	return c, true, nil
}

// Restaurant returns the restaurant saved by the last menu load.
func (s *Service) Restaurant(ctx context.Context) (domain.RestaurantRef, bool, error) {
	var ref domain.RestaurantRef
	ok, err := s.load(ctx, RestaurantKey, &ref)
	if err != nil || !ok {
		return domain.RestaurantRef{}, false, err
	}
	return ref, true, nil
}

// Login authenticates against the restaurant and stores the client on success.
func (s *Service) Login(
	ctx context.Context,
	username domain.Username,
	credentials domain.Credentials,
) (domain.Client, error) {
	if err := validate.Struct(credentials); err != nil {
		return domain.Client{}, err
	}
	ctx = s.log.WithRestaurant(ctx, string(username))

	c, err := s.api.Login(ctx, username, credentials)
	if err != nil {
		return domain.Client{}, err
	}
	if err := s.store(ctx, ClientKey, c); err != nil {
		return domain.Client{}, err
	}
	s.log.Info(s.log.WithClientID(ctx, int64(c.ID)), "client logged in")
	return c, nil
}

// Register creates an account under the restaurant saved by the last menu
// load. It does not log the new client in.
func (s *Service) Register(ctx context.Context, registration domain.Registration) (domain.Client, error) {
	if err := validate.Struct(registration); err != nil {
		return domain.Client{}, err
	}
	ref, ok, err := s.Restaurant(ctx)
	if err != nil {
		return domain.Client{}, err
	}
	if !ok || ref.ID == 0 {
		return domain.Client{}, apperrors.New(apperrors.CodeNotFound, "no restaurant selected; load the menu first")
	}
	ctx = s.log.WithRestaurant(ctx, string(ref.Username))

	c, err := s.api.Register(ctx, registration, ref.ID)
	if err != nil {
		return domain.Client{}, err
	}
	s.log.Info(s.log.WithClientID(ctx, int64(c.ID)), "client registered")
	return c, nil
}

// Logout forgets the current client.
func (s *Service) Logout(ctx context.Context) error {
	return s.kv.Delete(ctx, ClientKey)
}

// SaveRestaurant records the restaurant in use.
func (s *Service) SaveRestaurant(ctx context.Context, ref domain.RestaurantRef) error {
	return s.store(ctx, RestaurantKey, ref)
}

func (s *Service) store(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "encode "+key)
	}
	return s.kv.Set(ctx, key, b)
}

// load decodes the record at key into out. Unreadable records are purged
// and reported as absent.
func (s *Service) load(ctx context.Context, key string, out any) (bool, error) {
	b, ok, err := s.kv.Get(ctx, key)
	if apperrors.Is(err, apperrors.CodeCorruptLocalState) {
		s.purge(ctx, key, err)
		return false, nil
	}
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		s.purge(ctx, key, apperrors.Wrap(apperrors.CodeCorruptLocalState, err, "decode "+key))
		return false, nil
	}
	return true, nil
}

func (s *Service) purge(ctx context.Context, key string, cause error) {
	ctx = s.log.WithFields(ctx, map[string]any{"key": key, "error": cause.Error()})
	s.log.Warn(ctx, "discarding unreadable session record")
	if err := s.kv.Delete(ctx, key); err != nil {
		s.log.Error(ctx, "failed to delete unreadable session record", err)
	}
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
