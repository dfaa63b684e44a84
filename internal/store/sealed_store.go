package store

import (
	"context"

	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
)

// SealedStore encrypts values before handing them to the wrapped store.
// Values that cannot be opened surface as CodeCorruptLocalState.
type SealedStore struct {
	inner      domain.KeyValueStore
	passphrase string
	params     kdfParams
}

// NewSealedStore wraps inner, sealing every value with passphrase.
func NewSealedStore(inner domain.KeyValueStore, passphrase string) *SealedStore {
	return &SealedStore{inner: inner, passphrase: passphrase, params: kdfParamsDefault()}
}

func (s *SealedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	pt, err := open(s.passphrase, key, b)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.CodeCorruptLocalState, err, "cannot open sealed value "+key)
	}
	return pt, true, nil
}

func (s *SealedStore) Set(ctx context.Context, key string, value []byte) error {
	b, err := seal(s.passphrase, key, value, s.params)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, b)
}

func (s *SealedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// Compile-time assertion that SealedStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*SealedStore)(nil)
