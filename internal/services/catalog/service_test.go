package catalog_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardapio/internal/api"
	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
	"cardapio/internal/mockapi"
	"cardapio/internal/services/catalog"
	"cardapio/internal/services/session"
	"cardapio/internal/store"
)

type fakeCatalogAPI struct {
	restaurant    domain.Restaurant
	categories    []domain.Category
	restaurantErr error
	categoriesErr error
}

func (f *fakeCatalogAPI) FetchRestaurant(context.Context, domain.Username) (domain.Restaurant, error) {
	return f.restaurant, f.restaurantErr
}

func (f *fakeCatalogAPI) FetchCategories(context.Context, domain.Username) ([]domain.Category, error) {
	return f.categories, f.categoriesErr
}

type recorder struct{ saved []domain.RestaurantRef }

func (r *recorder) SaveRestaurant(_ context.Context, ref domain.RestaurantRef) error {
	r.saved = append(r.saved, ref)
	return nil
}

func product(id domain.ProductID, name string) domain.Product {
	return domain.Product{ID: id, Name: name, Price: decimal.NewFromInt(int64(id))}
}

func TestDedupe_FirstPositionLastData(t *testing.T) {
	got := catalog.Dedupe([]domain.Product{
		product(1, "old"),
		product(2, "two"),
		product(1, "new"),
		product(3, "three"),
	})
	require.Len(t, got, 3)
	assert.Equal(t, []domain.ProductID{1, 2, 3}, []domain.ProductID{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "new", got[0].Name)
}

func TestLoad_DedupesPerCategoryAndSavesRestaurant(t *testing.T) {
	rec := &recorder{}
	fake := &fakeCatalogAPI{
		restaurant: domain.Restaurant{ID: 7, Name: "Burger House"},
		categories: []domain.Category{
			{ID: 1, Name: "Lanches", Products: []domain.Product{product(1, "a"), product(1, "b")}},
			{ID: 2, Name: "Destaques", Products: []domain.Product{product(1, "c")}},
		},
	}

	menu, err := catalog.New(fake, rec, nil).Load(context.Background(), "burgerhouse")
	require.NoError(t, err)
	require.Len(t, menu.Categories, 2)
	assert.Len(t, menu.Categories[0].Products, 1)
	assert.Len(t, menu.Categories[1].Products, 1, "dedupe is per category")

	require.Len(t, rec.saved, 1)
	assert.Equal(t, domain.RestaurantRef{ID: 7, Name: "Burger House", Username: "burgerhouse"}, rec.saved[0])

	p, ok := menu.Product(1)
	require.True(t, ok)
	assert.Equal(t, "b", p.Name)
	_, ok = menu.Product(99)
	assert.False(t, ok)
}

func TestLoad_FailsWhenEitherFetchFails(t *testing.T) {
	boom := apperrors.New(apperrors.CodeServer, "boom")
	for name, fake := range map[string]*fakeCatalogAPI{
		"restaurant": {restaurantErr: boom},
		"categories": {categoriesErr: boom},
	} {
		t.Run(name, func(t *testing.T) {
			rec := &recorder{}
			_, err := catalog.New(fake, rec, nil).Load(context.Background(), "burgerhouse")
			assert.True(t, errors.Is(err, boom))
			assert.Empty(t, rec.saved)
		})
	}
}

func TestLoad_RequiresUsername(t *testing.T) {
	_, err := catalog.New(&fakeCatalogAPI{}, nil, nil).Load(context.Background(), " ")
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestLoad_AgainstMockService(t *testing.T) {
	srv := mockapi.New(nil)
	require.NoError(t, srv.Seed())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	kv := store.NewMemoryStore()
	client := api.New(ts.URL, ts.Client(), nil)
	sess := session.New(kv, client, nil)

	menu, err := catalog.New(client, sess, nil).Load(context.Background(), mockapi.DemoUsername)
	require.NoError(t, err)
	assert.Equal(t, "Burger House", menu.Restaurant.Name)

	ref, ok, err := sess.Restaurant(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mockapi.DemoUsername, ref.Username)
}

func TestIsOpen(t *testing.T) {
	r := domain.Restaurant{OperatingHours: []domain.OperatingHour{
		{DayOfWeek: "WEDNESDAY", OpeningTime: "18:00:00", ClosingTime: "23:30:00"},
		{DayOfWeek: "THURSDAY", OpeningTime: "bad", ClosingTime: "23:00"},
	}}
	wed := func(hour, minute int) time.Time {
		return time.Date(2024, time.May, 1, hour, minute, 59, 0, time.UTC)
	}

	assert.False(t, catalog.IsOpen(r, wed(17, 59)))
	assert.True(t, catalog.IsOpen(r, wed(18, 0)), "opening minute is inclusive")
	assert.True(t, catalog.IsOpen(r, wed(23, 30)), "closing minute is inclusive")
	assert.False(t, catalog.IsOpen(r, wed(23, 31)))
	assert.False(t, catalog.IsOpen(r, time.Date(2024, time.May, 2, 20, 0, 0, 0, time.UTC)), "unparseable hours are closed")
	assert.False(t, catalog.IsOpen(r, time.Date(2024, time.May, 3, 20, 0, 0, 0, time.UTC)), "no entry is closed")
}
