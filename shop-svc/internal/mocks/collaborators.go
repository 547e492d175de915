package mocks

import (
	"context"

	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/order"
	"foodwala-storefront/shop-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type ItemFinder struct {
	mock.Mock
}

func (_m *ItemFinder) Item(ctx context.Context, restaurantID, itemID string) (domain.CatalogItem, error) {
	ret := _m.Called(ctx, restaurantID, itemID)
	return ret.Get(0).(domain.CatalogItem), ret.Error(1)
}

func NewItemFinder(t testingT) *ItemFinder {
	m := &ItemFinder{}
	register(&m.Mock, t)
	return m
}

type CartReader struct {
	mock.Mock
}

func (_m *CartReader) Lines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 []domain.CartLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CartLine)
	}
	return r0, ret.Error(1)
}

func NewCartReader(t testingT) *CartReader {
	m := &CartReader{}
	register(&m.Mock, t)
	return m
}

type RestaurantDirectory struct {
	mock.Mock
}

func (_m *RestaurantDirectory) Restaurants(ctx context.Context) service.RestaurantListing {
	ret := _m.Called(ctx)
	return ret.Get(0).(service.RestaurantListing)
}

func NewRestaurantDirectory(t testingT) *RestaurantDirectory {
	m := &RestaurantDirectory{}
	register(&m.Mock, t)
	return m
}

type OrderDispatcher struct {
	mock.Mock
}

func (_m *OrderDispatcher) Dispatch(ctx context.Context, summary domain.OrderSummary) order.Handoff {
	ret := _m.Called(ctx, summary)
	return ret.Get(0).(order.Handoff)
}

func NewOrderDispatcher(t testingT) *OrderDispatcher {
	m := &OrderDispatcher{}
	register(&m.Mock, t)
	return m
}

type OrderSink struct {
	mock.Mock
}

func (_m *OrderSink) Name() string {
	ret := _m.Called()
	return ret.String(0)
}

func (_m *OrderSink) LogOrder(ctx context.Context, summary domain.OrderSummary) error {
	ret := _m.Called(ctx, summary)
	return ret.Error(0)
}

func NewOrderSink(t testingT) *OrderSink {
	m := &OrderSink{}
	register(&m.Mock, t)
	return m
}

type QRGenerator struct {
	mock.Mock
}

func (_m *QRGenerator) Generate(link string) ([]byte, error) {
	ret := _m.Called(link)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	register(&m.Mock, t)
	return m
}
