package mocks

import (
	"context"

	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CatalogSource struct {
	mock.Mock
}

func (_m *CatalogSource) FetchRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogSource) FetchMenu(ctx context.Context, restaurant domain.Restaurant) ([]domain.CatalogItem, error) {
	ret := _m.Called(ctx, restaurant)

	var r0 []domain.CatalogItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CatalogItem)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogSource) FetchHouseMenu(ctx context.Context) ([]domain.CatalogItem, error) {
	ret := _m.Called(ctx)

	var r0 []domain.CatalogItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CatalogItem)
	}
	return r0, ret.Error(1)
}

func NewCatalogSource(t testingT) *CatalogSource {
	m := &CatalogSource{}
	register(&m.Mock, t)
	return m
}
