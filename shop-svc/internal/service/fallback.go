package service

import (
	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// FallbackRestaurants is shown when the content store cannot be reached so
// the listing page is never empty.
func FallbackRestaurants(phone string) []domain.Restaurant {
	return []domain.Restaurant{
		{
			ID:           "demo1",
			Name:         "Dino's Chicken",
			Rating:       4.8,
			Reviews:      450,
			DeliveryTime: "25-35 min",
			MinOrder:     decimal.NewFromInt(200),
			Location:     "Gulshan-e-Iqbal",
			Phone:        phone,
			Cuisine:      []string{"Fast Food", "BBQ", "Chicken"},
			IsPopular:    true,
		},
		{
			ID:           "demo2",
			Name:         "Miskeen Restaurant",
			Rating:       4.6,
			Reviews:      320,
			DeliveryTime: "30-40 min",
			MinOrder:     decimal.NewFromInt(250),
			Location:     "Bahadurabad",
			Phone:        phone,
			Cuisine:      []string{"Desi", "BBQ", "Karahi"},
			IsPopular:    true,
		},
	}
}
