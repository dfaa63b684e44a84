package store

import (
	"context"
	"encoding/json"

	"cardapio/internal/cart"
	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
	"cardapio/internal/logger"
)

const cartKey = "cart"

type cartRecord struct {
	Restaurant domain.Username `json:"restaurant"`
	Lines      []cart.Line     `json:"lines"`
}

// CartRepository persists the cart of one restaurant between invocations.
type CartRepository struct {
	kv  domain.KeyValueStore
	log *logger.Logger
}

// NewCartRepository returns a repository over kv.
func NewCartRepository(kv domain.KeyValueStore, log *logger.Logger) *CartRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &CartRepository{kv: kv, log: log}
}

// Load returns the saved cart for restaurant. A missing record, a record for
// another restaurant or an unreadable record all yield an empty cart; the
// unreadable one is also purged.
func (r *CartRepository) Load(ctx context.Context, restaurant domain.Username) (*cart.Cart, error) {
	c := cart.New()

	b, ok, err := r.kv.Get(ctx, cartKey)
	if apperrors.Is(err, apperrors.CodeCorruptLocalState) {
		r.purge(ctx, err)
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return c, nil
	}

	var rec cartRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		r.purge(ctx, err)
		return c, nil
	}
	if rec.Restaurant != restaurant {
		return c, nil
	}
	c.Restore(rec.Lines)
	return c, nil
}

// Save writes c as the cart of restaurant. An empty cart removes the record.
func (r *CartRepository) Save(ctx context.Context, restaurant domain.Username, c *cart.Cart) error {
	if c.IsEmpty() {
		return r.kv.Delete(ctx, cartKey)
	}
	b, err := json.Marshal(cartRecord{Restaurant: restaurant, Lines: c.Lines()})
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, cartKey, b)
}

func (r *CartRepository) purge(ctx context.Context, cause error) {
	r.log.Warn(r.log.WithField(ctx, "error", cause.Error()), "discarding unreadable saved cart")
	if err := r.kv.Delete(ctx, cartKey); err != nil {
		r.log.Error(ctx, "failed to delete unreadable saved cart", err)
	}
}
