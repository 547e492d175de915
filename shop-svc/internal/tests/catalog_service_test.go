package tests

import (
	"context"
	"errors"
	"testing"

	"foodwala-storefront/shop-svc/internal/catalog"
	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/mocks"
	"foodwala-storefront/shop-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var house = domain.Restaurant{ID: service.HouseRestaurantID, Name: "Foodwala", Phone: "923181375067"}

func TestCatalogService_Restaurants(t *testing.T) {
	remote := []domain.Restaurant{{ID: "r1", Name: "Dino's Chicken"}}

	tests := []struct {
		name         string
		prepareMocks func(source *mocks.CatalogSource, cache *mocks.CatalogCache)
		wantIDs      []string
		wantFallback bool
	}{
		{
			name: "cache_hit",
			prepareMocks: func(source *mocks.CatalogSource, cache *mocks.CatalogCache) {
				cache.On("GetRestaurants", mock.Anything).Return(remote, true, nil).Once()
			},
			wantIDs: []string{"r1"},
		},
		{
			name: "cache_miss_fetches_and_stores",
			prepareMocks: func(source *mocks.CatalogSource, cache *mocks.CatalogCache) {
				cache.On("GetRestaurants", mock.Anything).Return(nil, false, nil).Once()
				source.On("FetchRestaurants", mock.Anything).Return(remote, nil).Once()
				cache.On("SetRestaurants", mock.Anything, remote).Return(nil).Once()
			},
			wantIDs: []string{"r1"},
		},
		{
			name: "cache_error_still_fetches",
			prepareMocks: func(source *mocks.CatalogSource, cache *mocks.CatalogCache) {
				cache.On("GetRestaurants", mock.Anything).Return(nil, false, errors.New("redis down")).Once()
				source.On("FetchRestaurants", mock.Anything).Return(remote, nil).Once()
				cache.On("SetRestaurants", mock.Anything, remote).Return(errors.New("redis down")).Once()
			},
			wantIDs: []string{"r1"},
		},
		{
			name: "fetch_failure_serves_demo_set",
			prepareMocks: func(source *mocks.CatalogSource, cache *mocks.CatalogCache) {
				cache.On("GetRestaurants", mock.Anything).Return(nil, false, nil).Once()
				source.On("FetchRestaurants", mock.Anything).
					Return(nil, &catalog.FetchError{Op: "restaurants", Err: errors.New("network down")}).Once()
			},
			wantIDs:      []string{"demo1", "demo2"},
			wantFallback: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			source := mocks.NewCatalogSource(t)
			cache := mocks.NewCatalogCache(t)
			testCase.prepareMocks(source, cache)
			svc := service.NewCatalogService(source, cache, house, zap.NewNop())

			listing := svc.Restaurants(context.Background())

			ids := []string{}
			for _, restaurant := range listing.Restaurants {
				ids = append(ids, restaurant.ID)
			}
			assert.Equal(t, testCase.wantIDs, ids)
			assert.Equal(t, testCase.wantFallback, listing.Fallback)
		})
	}
}

func TestFallbackRestaurants(t *testing.T) {
	restaurants := service.FallbackRestaurants("923181375067")

	require.Len(t, restaurants, 2)
	assert.Equal(t, "Dino's Chicken", restaurants[0].Name)
	assert.Equal(t, 4.8, restaurants[0].Rating)
	assert.True(t, decimal.NewFromInt(200).Equal(restaurants[0].MinOrder))
	assert.Equal(t, "Miskeen Restaurant", restaurants[1].Name)
	assert.Equal(t, []string{"Desi", "BBQ", "Karahi"}, restaurants[1].Cuisine)
	for _, restaurant := range restaurants {
		assert.True(t, restaurant.IsPopular)
		assert.Equal(t, "923181375067", restaurant.Phone)
	}
}

func TestCatalogService_Menu(t *testing.T) {
	source := mocks.NewCatalogSource(t)
	cache := mocks.NewCatalogCache(t)
	svc := service.NewCatalogService(source, cache, house, zap.NewNop())
	ctx := context.Background()

	dino := domain.Restaurant{ID: "r1", Name: "Dino's Chicken"}
	items := []domain.CatalogItem{
		{ID: "i1", Name: "Zinger", Category: "burgers", Price: decimal.NewFromInt(450)},
		{ID: "i2", Name: "Chicken Biryani", Category: "rice", HalfKgPrice: decimal.NewNullDecimal(decimal.NewFromInt(950))},
	}

	cache.On("GetRestaurants", mock.Anything).Return([]domain.Restaurant{dino}, true, nil)
	cache.On("GetMenu", mock.Anything, "r1").Return(nil, false, nil).Once()
	source.On("FetchMenu", mock.Anything, dino).Return(items, nil).Once()
	cache.On("SetMenu", mock.Anything, "r1", mock.Anything).Return(nil).Once()

	menu, err := svc.Menu(ctx, "r1")
	require.NoError(t, err)

	assert.Equal(t, "Dino's Chicken", menu.Restaurant.Name)
	assert.Equal(t, []string{"burgers", "rice"}, menu.Categories)
	require.Len(t, menu.Items, 2)
	assert.Equal(t, "none", menu.Items[0].Scheme)
	assert.Empty(t, menu.Items[0].Variants)
	assert.Equal(t, "weight", menu.Items[1].Scheme)
	assert.Len(t, menu.Items[1].Variants, 2)
	assert.Equal(t, "halfKg", menu.Items[1].DefaultVariant)
	assert.Equal(t, "Dino's Chicken", menu.Items[1].RestaurantName)

	filtered := menu.Filter("rice", "")
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, "i2", filtered.Items[0].ID)
	assert.Equal(t, "weight", filtered.Items[0].Scheme)
}

func TestCatalogService_MenuErrors(t *testing.T) {
	source := mocks.NewCatalogSource(t)
	cache := mocks.NewCatalogCache(t)
	svc := service.NewCatalogService(source, cache, house, zap.NewNop())
	ctx := context.Background()

	dino := domain.Restaurant{ID: "r1", Name: "Dino's Chicken"}
	cache.On("GetRestaurants", mock.Anything).Return([]domain.Restaurant{dino}, true, nil)

	_, err := svc.Menu(ctx, "unknown")
	assert.ErrorIs(t, err, service.ErrRestaurantNotFound)

	fetchErr := &catalog.FetchError{Op: "menu", StatusCode: 503}
	cache.On("GetMenu", mock.Anything, "r1").Return(nil, false, nil).Once()
	source.On("FetchMenu", mock.Anything, dino).Return(nil, fetchErr).Once()

	_, err = svc.Menu(ctx, "r1")
	var got *catalog.FetchError
	assert.ErrorAs(t, err, &got)
}

func TestCatalogService_HouseMenuAndItem(t *testing.T) {
	source := mocks.NewCatalogSource(t)
	cache := mocks.NewCatalogCache(t)
	svc := service.NewCatalogService(source, cache, house, zap.NewNop())
	ctx := context.Background()

	items := []domain.CatalogItem{{ID: "h1", Name: "Chicken Karahi", Category: "karahi", Price: decimal.NewFromInt(1450)}}
	cache.On("GetMenu", mock.Anything, service.HouseRestaurantID).Return(nil, false, nil).Once()
	source.On("FetchHouseMenu", mock.Anything).Return(items, nil).Once()
	cache.On("SetMenu", mock.Anything, service.HouseRestaurantID, mock.Anything).Return(nil).Once()

	menu, err := svc.HouseMenu(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Foodwala", menu.Restaurant.Name)
	require.Len(t, menu.Items, 1)

	cache.On("GetMenu", mock.Anything, service.HouseRestaurantID).Return(items, true, nil).Twice()

	item, err := svc.Item(ctx, service.HouseRestaurantID, "h1")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Karahi", item.Name)

	_, err = svc.Item(ctx, service.HouseRestaurantID, "missing")
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}
