package mocks

import (
	"context"

	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CartPersister struct {
	mock.Mock
}

func (_m *CartPersister) Load(ctx context.Context) ([]domain.CartLine, error) {
	ret := _m.Called(ctx)

	var r0 []domain.CartLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CartLine)
	}
	return r0, ret.Error(1)
}

func (_m *CartPersister) Save(ctx context.Context, lines []domain.CartLine) error {
	ret := _m.Called(ctx, lines)
	return ret.Error(0)
}

func NewCartPersister(t testingT) *CartPersister {
	m := &CartPersister{}
	register(&m.Mock, t)
	return m
}
