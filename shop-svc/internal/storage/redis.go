package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const CartSchemaVersion = 1

var ErrUnsupportedCartVersion = errors.New("unsupported cart schema version")

type persistedCart struct {
	Version int               `json:"version"`
	Lines   []domain.CartLine `json:"lines"`
}

// RedisCartRepository stores one JSON document per browsing session.
type RedisCartRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCartRepository(client *redis.Client, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{Client: client, TTL: ttl}
}

func (r *RedisCartRepository) CartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (r *RedisCartRepository) LoadCart(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	data, err := r.Client.Get(ctx, r.CartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeCart(data)
}

func (r *RedisCartRepository) SaveCart(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	data, err := EncodeCart(lines)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, r.CartKey(sessionID), data, r.TTL).Err()
}

func EncodeCart(lines []domain.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return json.Marshal(persistedCart{Version: CartSchemaVersion, Lines: lines})
}

// DecodeCart reads the versioned document and the older bare array form.
func DecodeCart(data []byte) ([]domain.CartLine, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var lines []domain.CartLine
		if err := json.Unmarshal(trimmed, &lines); err != nil {
			return nil, fmt.Errorf("decode legacy cart: %w", err)
		}
		return nonNil(lines), nil
	}

	var doc persistedCart
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if doc.Version > CartSchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedCartVersion, doc.Version)
	}
	return nonNil(doc.Lines), nil
}

func nonNil(lines []domain.CartLine) []domain.CartLine {
	if lines == nil {
		return []domain.CartLine{}
	}
	return lines
}

type RedisCatalogCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{Client: client, TTL: ttl}
}

func (c *RedisCatalogCache) RestaurantsKey() string {
	return "catalog:restaurants"
}

func (c *RedisCatalogCache) MenuKey(restaurantID string) string {
	return "catalog:menu:" + restaurantID
}

func (c *RedisCatalogCache) GetRestaurants(ctx context.Context) ([]domain.Restaurant, bool, error) {
	var restaurants []domain.Restaurant
	found, err := c.get(ctx, c.RestaurantsKey(), &restaurants)
	return restaurants, found, err
}

func (c *RedisCatalogCache) SetRestaurants(ctx context.Context, restaurants []domain.Restaurant) error {
	return c.set(ctx, c.RestaurantsKey(), restaurants)
}

func (c *RedisCatalogCache) GetMenu(ctx context.Context, restaurantID string) ([]domain.CatalogItem, bool, error) {
	var items []domain.CatalogItem
	found, err := c.get(ctx, c.MenuKey(restaurantID), &items)
	return items, found, err
}

func (c *RedisCatalogCache) SetMenu(ctx context.Context, restaurantID string, items []domain.CatalogItem) error {
	return c.set(ctx, c.MenuKey(restaurantID), items)
}

func (c *RedisCatalogCache) get(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCatalogCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, data, c.TTL).Err()
}
