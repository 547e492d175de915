package mocks

import (
	"context"

	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type CatalogServiceInterface struct {
	mock.Mock
}

func (_m *CatalogServiceInterface) Restaurants(ctx context.Context) service.RestaurantListing {
	ret := _m.Called(ctx)
	return ret.Get(0).(service.RestaurantListing)
}

func (_m *CatalogServiceInterface) Menu(ctx context.Context, restaurantID string) (service.MenuView, error) {
	ret := _m.Called(ctx, restaurantID)
	return ret.Get(0).(service.MenuView), ret.Error(1)
}

func (_m *CatalogServiceInterface) HouseMenu(ctx context.Context) (service.MenuView, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(service.MenuView), ret.Error(1)
}

func (_m *CatalogServiceInterface) Item(ctx context.Context, restaurantID, itemID string) (domain.CatalogItem, error) {
	ret := _m.Called(ctx, restaurantID, itemID)
	return ret.Get(0).(domain.CatalogItem), ret.Error(1)
}

func NewCatalogServiceInterface(t testingT) *CatalogServiceInterface {
	m := &CatalogServiceInterface{}
	register(&m.Mock, t)
	return m
}

type CartServiceInterface struct {
	mock.Mock
}

func (_m *CartServiceInterface) Lines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 []domain.CartLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CartLine)
	}
	return r0, ret.Error(1)
}

func (_m *CartServiceInterface) AddItem(ctx context.Context, sessionID string, req service.AddItemRequest) (domain.CartLine, error) {
	ret := _m.Called(ctx, sessionID, req)
	return ret.Get(0).(domain.CartLine), ret.Error(1)
}

func (_m *CartServiceInterface) SetQuantity(ctx context.Context, sessionID, lineID string, quantity int) error {
	ret := _m.Called(ctx, sessionID, lineID, quantity)
	return ret.Error(0)
}

func (_m *CartServiceInterface) RemoveItem(ctx context.Context, sessionID, lineID string) error {
	ret := _m.Called(ctx, sessionID, lineID)
	return ret.Error(0)
}

func (_m *CartServiceInterface) Clear(ctx context.Context, sessionID string) error {
	ret := _m.Called(ctx, sessionID)
	return ret.Error(0)
}

func NewCartServiceInterface(t testingT) *CartServiceInterface {
	m := &CartServiceInterface{}
	register(&m.Mock, t)
	return m
}

type CheckoutServiceInterface struct {
	mock.Mock
}

func (_m *CheckoutServiceInterface) Summary(ctx context.Context, sessionID, zoneID string) (service.SummaryView, error) {
	ret := _m.Called(ctx, sessionID, zoneID)
	return ret.Get(0).(service.SummaryView), ret.Error(1)
}

func (_m *CheckoutServiceInterface) Checkout(ctx context.Context, sessionID, zoneID string) (service.CheckoutResult, error) {
	ret := _m.Called(ctx, sessionID, zoneID)
	return ret.Get(0).(service.CheckoutResult), ret.Error(1)
}

func (_m *CheckoutServiceInterface) DeliveryOptions() service.DeliveryOptions {
	ret := _m.Called()
	return ret.Get(0).(service.DeliveryOptions)
}

func NewCheckoutServiceInterface(t testingT) *CheckoutServiceInterface {
	m := &CheckoutServiceInterface{}
	register(&m.Mock, t)
	return m
}
