package mocks

import (
	"context"

	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CatalogCache struct {
	mock.Mock
}

func (_m *CatalogCache) GetRestaurants(ctx context.Context) ([]domain.Restaurant, bool, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Restaurant)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

func (_m *CatalogCache) SetRestaurants(ctx context.Context, restaurants []domain.Restaurant) error {
	ret := _m.Called(ctx, restaurants)
	return ret.Error(0)
}

func (_m *CatalogCache) GetMenu(ctx context.Context, restaurantID string) ([]domain.CatalogItem, bool, error) {
	ret := _m.Called(ctx, restaurantID)

	var r0 []domain.CatalogItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CatalogItem)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

func (_m *CatalogCache) SetMenu(ctx context.Context, restaurantID string, items []domain.CatalogItem) error {
	ret := _m.Called(ctx, restaurantID, items)
	return ret.Error(0)
}

func NewCatalogCache(t testingT) *CatalogCache {
	m := &CatalogCache{}
	register(&m.Mock, t)
	return m
}
