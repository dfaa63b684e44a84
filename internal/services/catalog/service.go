// Package catalog loads a restaurant's public menu.
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
	"cardapio/internal/logger"
)

type restaurantRecorder interface {
	SaveRestaurant(ctx context.Context, ref domain.RestaurantRef) error
}

// Menu is a restaurant profile with its categorized products.
type Menu struct {
	Username   domain.Username
	Restaurant domain.Restaurant
	Categories []domain.Category
}

// Product finds a product by id across all categories.
func (m Menu) Product(id domain.ProductID) (domain.Product, bool) {
	for _, c := range m.Categories {
		for _, p := range c.Products {
			if p.ID == id {
				return p, true
			}
		}
	}
	return domain.Product{}, false
}

// Ref is the session record for the menu's restaurant.
func (m Menu) Ref() domain.RestaurantRef {
	return domain.RestaurantRef{ID: m.Restaurant.ID, Name: m.Restaurant.Name, Username: m.Username}
}

type Service struct {
	api     domain.CatalogAPI
	session restaurantRecorder
	log     *logger.Logger
}

// New constructs a catalog Service. session may be nil when the loaded
// restaurant should not be remembered.
func New(api domain.CatalogAPI, session restaurantRecorder, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, session: session, log: log}
}

// Load fetches the restaurant profile and its categories concurrently. Either
// failure fails the load. On success the restaurant is saved to the session.
func (s *Service) Load(ctx context.Context, username domain.Username) (Menu, error) {
	if strings.TrimSpace(string(username)) == "" {
		return Menu{}, apperrors.New(apperrors.CodeValidation, "restaurant username is required")
	}
	ctx = s.log.WithRestaurant(ctx, string(username))

	var (
		restaurant domain.Restaurant
		categories []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		restaurant, err = s.api.FetchRestaurant(gctx, username)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.api.FetchCategories(gctx, username)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "menu load failed", err)
		return Menu{}, err
	}

	menu := Menu{
		Username:   username,
		Restaurant: restaurant,
		Categories: make([]domain.Category, len(categories)),
	}
	for i, c := range categories {
		c.Products = Dedupe(c.Products)
		menu.Categories[i] = c
	}

	if s.session != nil {
		if err := s.session.SaveRestaurant(ctx, menu.Ref()); err != nil {
			return Menu{}, err
		}
	}
	s.log.Debug(s.log.WithField(ctx, "categories", len(menu.Categories)), "menu loaded")
	return menu, nil
}

// Dedupe keeps one product per id. The first occurrence fixes the position
// and the last occurrence supplies the data.
func Dedupe(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	at := make(map[domain.ProductID]int, len(products))
	for _, p := range products {
		if i, ok := at[p.ID]; ok {
			out[i] = p
			continue
		}
		at[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}

// Today returns the restaurant's hours for the weekday of now.
func Today(r domain.Restaurant, now time.Time) (domain.OperatingHour, bool) {
	day := strings.ToUpper(now.Weekday().String())
	for _, h := range r.OperatingHours {
		if strings.EqualFold(h.DayOfWeek, day) {
			return h, true
		}
	}
	return domain.OperatingHour{}, false
}

// IsOpen reports whether now falls within today's hours, both ends inclusive,
// compared at minute precision. A day without hours is closed, as is a day
// whose hours cannot be parsed.
func IsOpen(r domain.Restaurant, now time.Time) bool {
	h, ok := Today(r, now)
	if !ok {
		return false
	}
	open, err := minuteOfDay(h.OpeningTime)
	if err != nil {
		return false
	}
	closing, err := minuteOfDay(h.ClosingTime)
	if err != nil {
		return false
	}
	current := now.Hour()*60 + now.Minute()
	return open <= current && current <= closing
}

// minuteOfDay parses "HH:MM" or "HH:MM:SS", ignoring seconds.
func minuteOfDay(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}
