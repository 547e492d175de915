package mocks

import (
	"context"

	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (_m *CartRepository) LoadCart(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 []domain.CartLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CartLine)
	}
	return r0, ret.Error(1)
}

func (_m *CartRepository) SaveCart(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	ret := _m.Called(ctx, sessionID, lines)
	return ret.Error(0)
}

func NewCartRepository(t testingT) *CartRepository {
	m := &CartRepository{}
	register(&m.Mock, t)
	return m
}
