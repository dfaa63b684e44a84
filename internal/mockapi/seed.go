package mockapi

import (
	"github.com/shopspring/decimal"

	"cardapio/internal/domain"
)

// Demo account created by Seed.
const (
	DemoUsername domain.Username = "burgerhouse"
	DemoEmail                    = "demo@cardapio.test"
	DemoPassword                 = "demo1234"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func text(s string) *string { return &s }

// Seed loads a demo restaurant with a small menu and one client account.
// The burger is listed under two categories, as the real service does for
// featured items.
func (s *Server) Seed() error {
	bacon := domain.AddOn{ID: 201, Name: "Bacon", Price: money("3.00")}
	cheese := domain.AddOn{ID: 202, Name: "Cheddar", Price: money("2.00")}
	egg := domain.AddOn{ID: 203, Name: "Ovo", Description: text("Ovo frito"), Price: money("1.50")}

	burger := domain.Product{
		ID:          11,
		Name:        "X-Burger",
		Description: text("Pão, carne 150g, queijo e salada"),
		Price:       money("15.00"),
		Image:       text("x-burger.png"),
		MaxAddOns:   2,
		AddOns:      []domain.AddOn{bacon, cheese, egg},
	}
	fries := domain.Product{
		ID:        12,
		Name:      "Batata Frita",
		Price:     money("9.90"),
		MaxAddOns: 1,
		AddOns:    []domain.AddOn{cheese},
	}
	soda := domain.Product{ID: 21, Name: "Refrigerante Lata", Price: money("5.00")}

	profile := domain.Restaurant{
		ID:          1,
		Name:        "Burger House",
		PhoneNumber: "(11) 99999-0000",
		Image:       "logo.png",
		Banner:      "banner.png",
		Address: domain.Address{
			Street:       "Rua das Flores",
			Number:       "100",
			Neighborhood: "Centro",
			City:         "São Paulo",
			PostalCode:   "01000-000",
		},
	}
	for _, day := range []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"} {
		profile.OperatingHours = append(profile.OperatingHours, domain.OperatingHour{
			DayOfWeek:   day,
			OpeningTime: "00:00",
			ClosingTime: "23:59",
		})
	}

	s.AddRestaurant(DemoUsername, profile, []domain.Category{
		{ID: 1, Name: "Destaques", Products: []domain.Product{burger}},
		{ID: 2, Name: "Lanches", Products: []domain.Product{burger, fries}},
		{ID: 3, Name: "Bebidas", Products: []domain.Product{soda}},
	})

	_, err := s.AddClient(profile.ID, domain.Registration{
		Name:     "Cliente Demo",
		Email:    DemoEmail,
		Password: DemoPassword,
		Address:  profile.Address,
	})
	return err
}
