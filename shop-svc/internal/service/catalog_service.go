package service

import (
	"context"
	"errors"

	"foodwala-storefront/shop-svc/internal/catalog"
	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/pricing"

	"go.uber.org/zap"
)

const HouseRestaurantID = "house"

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrItemNotFound       = errors.New("menu item not found")
)

// RestaurantListing marks whether the restaurants came from the content
// store or from the built-in demo set.
type RestaurantListing struct {
	Restaurants []domain.Restaurant `json:"restaurants"`
	Fallback    bool                `json:"fallback"`
}

type MenuItemView struct {
	domain.CatalogItem
	Scheme         string           `json:"variant_scheme"`
	Variants       []pricing.Option `json:"variants,omitempty"`
	DefaultVariant string           `json:"default_variant,omitempty"`
}

type MenuView struct {
	Restaurant domain.Restaurant `json:"restaurant"`
	Categories []string          `json:"categories"`
	Items      []MenuItemView    `json:"items"`
}

// Filter narrows the view to a category and search term.
func (v MenuView) Filter(category, term string) MenuView {
	items := make([]domain.CatalogItem, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, item.CatalogItem)
	}
	filtered := v
	filtered.Items = itemViews(catalog.Filter(items, category, term))
	return filtered
}

type CatalogService struct {
	source CatalogSource
	cache  CatalogCache
	house  domain.Restaurant
	phone  string
	logger *zap.Logger
}

func NewCatalogService(source CatalogSource, cache CatalogCache, house domain.Restaurant, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		cache:  cache,
		house:  house,
		phone:  house.Phone,
		logger: logger.With(zap.String("component", "catalog")),
	}
}

// Restaurants never fails: a cache miss falls through to the content store,
// and a store failure yields the demo set with Fallback set.
func (s *CatalogService) Restaurants(ctx context.Context) RestaurantListing {
	if s.cache != nil {
		if cached, found, err := s.cache.GetRestaurants(ctx); err == nil && found {
			return RestaurantListing{Restaurants: cached}
		} else if err != nil {
			s.logger.Warn("restaurant cache read failed", zap.Error(err))
		}
	}

	restaurants, err := s.source.FetchRestaurants(ctx)
	if err != nil {
		s.logger.Warn("restaurant fetch failed, serving demo restaurants", zap.Error(err))
		return RestaurantListing{Restaurants: FallbackRestaurants(s.phone), Fallback: true}
	}

	if s.cache != nil {
		_ = s.cache.SetRestaurants(ctx, restaurants)
	}
	return RestaurantListing{Restaurants: restaurants}
}

func (s *CatalogService) restaurant(ctx context.Context, restaurantID string) (domain.Restaurant, error) {
	if restaurantID == HouseRestaurantID {
		return s.house, nil
	}
	for _, restaurant := range s.Restaurants(ctx).Restaurants {
		if restaurant.ID == restaurantID {
			return restaurant, nil
		}
	}
	return domain.Restaurant{}, ErrRestaurantNotFound
}

func (s *CatalogService) items(ctx context.Context, restaurant domain.Restaurant) ([]domain.CatalogItem, error) {
	if s.cache != nil {
		if cached, found, err := s.cache.GetMenu(ctx, restaurant.ID); err == nil && found {
			return cached, nil
		}
	}

	var (
		items []domain.CatalogItem
		err   error
	)
	if restaurant.ID == HouseRestaurantID {
		items, err = s.source.FetchHouseMenu(ctx)
	} else {
		items, err = s.source.FetchMenu(ctx, restaurant)
	}
	if err != nil {
		s.logger.Warn("menu fetch failed", zap.String("restaurant", restaurant.ID), zap.Error(err))
		return nil, err
	}
	for i := range items {
		items[i].RestaurantID = restaurant.ID
		items[i].RestaurantName = restaurant.Name
	}

	if s.cache != nil {
		_ = s.cache.SetMenu(ctx, restaurant.ID, items)
	}
	return items, nil
}

func (s *CatalogService) Menu(ctx context.Context, restaurantID string) (MenuView, error) {
	restaurant, err := s.restaurant(ctx, restaurantID)
	if err != nil {
		return MenuView{}, err
	}
	items, err := s.items(ctx, restaurant)
	if err != nil {
		return MenuView{}, err
	}
	return MenuView{
		Restaurant: restaurant,
		Categories: catalog.Categories(items),
		Items:      itemViews(items),
	}, nil
}

func (s *CatalogService) HouseMenu(ctx context.Context) (MenuView, error) {
	return s.Menu(ctx, HouseRestaurantID)
}

func (s *CatalogService) Item(ctx context.Context, restaurantID, itemID string) (domain.CatalogItem, error) {
	restaurant, err := s.restaurant(ctx, restaurantID)
	if err != nil {
		return domain.CatalogItem{}, err
	}
	items, err := s.items(ctx, restaurant)
	if err != nil {
		return domain.CatalogItem{}, err
	}
	item, ok := catalog.FindItem(items, itemID)
	if !ok {
		return domain.CatalogItem{}, ErrItemNotFound
	}
	return item, nil
}

func itemViews(items []domain.CatalogItem) []MenuItemView {
	views := make([]MenuItemView, 0, len(items))
	for _, item := range items {
		view := MenuItemView{
			CatalogItem: item,
			Scheme:      pricing.SchemeOf(item).String(),
			Variants:    pricing.Options(item),
		}
		if key, ok := pricing.DefaultVariant(item); ok {
			view.DefaultVariant = string(key)
		}
		views = append(views, view)
	}
	return views
}
