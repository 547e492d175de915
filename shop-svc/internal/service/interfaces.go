package service

import (
	"context"

	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type CatalogServiceInterface interface {
	Restaurants(ctx context.Context) RestaurantListing
	Menu(ctx context.Context, restaurantID string) (MenuView, error)
	HouseMenu(ctx context.Context) (MenuView, error)
	Item(ctx context.Context, restaurantID, itemID string) (domain.CatalogItem, error)
}

type CartServiceInterface interface {
	Lines(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	AddItem(ctx context.Context, sessionID string, req AddItemRequest) (domain.CartLine, error)
	SetQuantity(ctx context.Context, sessionID, lineID string, quantity int) error
	RemoveItem(ctx context.Context, sessionID, lineID string) error
	Clear(ctx context.Context, sessionID string) error
}

type CheckoutServiceInterface interface {
	Summary(ctx context.Context, sessionID, zoneID string) (SummaryView, error)
	Checkout(ctx context.Context, sessionID, zoneID string) (CheckoutResult, error)
	DeliveryOptions() DeliveryOptions
}

// CatalogSource is the remote content store.
type CatalogSource interface {
	FetchRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	FetchMenu(ctx context.Context, restaurant domain.Restaurant) ([]domain.CatalogItem, error)
	FetchHouseMenu(ctx context.Context) ([]domain.CatalogItem, error)
}

type CatalogCache interface {
	GetRestaurants(ctx context.Context) ([]domain.Restaurant, bool, error)
	SetRestaurants(ctx context.Context, restaurants []domain.Restaurant) error
	GetMenu(ctx context.Context, restaurantID string) ([]domain.CatalogItem, bool, error)
	SetMenu(ctx context.Context, restaurantID string, items []domain.CatalogItem) error
}

type CartRepository interface {
	LoadCart(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, sessionID string, lines []domain.CartLine) error
}

type QRGenerator interface {
	Generate(link string) ([]byte, error)
}

var (
	_ CatalogServiceInterface  = (*CatalogService)(nil)
	_ CartServiceInterface     = (*CartService)(nil)
	_ CheckoutServiceInterface = (*CheckoutService)(nil)
	_ MessageReader            = (*kafka.Reader)(nil)
)
