package storage_test

import (
	"context"
	"testing"
	"time"

	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisCartRepository_RoundTrip(t *testing.T) {
	mr, client := setupRedis(t)
	repository := storage.NewRedisCartRepository(client, time.Hour)
	ctx := context.Background()

	lines := []domain.CartLine{
		{
			ID: "b1-halfKg", ItemID: "b1", Name: "Chicken Biryani (Half Kg)", Variant: "halfKg",
			Price: decimal.RequireFromString("950"), Quantity: 2, RestaurantID: "r2",
			RestaurantName: "Miskeen Restaurant", Image: "https://img/b.jpg",
			OriginalPrice: decimal.NewNullDecimal(decimal.RequireFromString("1100")),
		},
		{ID: "z1", ItemID: "z1", Name: "Zinger", Price: decimal.RequireFromString("449.5"), Quantity: 1, RestaurantName: "Dino's Chicken"},
	}

	require.NoError(t, repository.SaveCart(ctx, "s1", lines))

	raw, err := mr.Get("cart:s1")
	require.NoError(t, err)
	assert.Contains(t, raw, `"version":1`)
	assert.Equal(t, time.Hour, mr.TTL("cart:s1"))

	loaded, err := repository.LoadCart(ctx, "s1")
	require.NoError(t, err)
	assertSameLines(t, lines, loaded)
}

// assertSameLines compares every persisted field; prices compare by value so
// "950" and "950.00" match.
func assertSameLines(t *testing.T, want, got []domain.CartLine) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].ItemID, got[i].ItemID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Variant, got[i].Variant)
		assert.True(t, want[i].Price.Equal(got[i].Price), "line %d price: want %s, got %s", i, want[i].Price, got[i].Price)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.Equal(t, want[i].RestaurantID, got[i].RestaurantID)
		assert.Equal(t, want[i].RestaurantName, got[i].RestaurantName)
		assert.Equal(t, want[i].Image, got[i].Image)
		assert.Equal(t, want[i].OriginalPrice.Valid, got[i].OriginalPrice.Valid)
		if want[i].OriginalPrice.Valid {
			assert.True(t, want[i].OriginalPrice.Decimal.Equal(got[i].OriginalPrice.Decimal),
				"line %d original price: want %s, got %s", i, want[i].OriginalPrice.Decimal, got[i].OriginalPrice.Decimal)
		}
	}
}

func TestRedisCartRepository_MissingCartIsEmpty(t *testing.T) {
	_, client := setupRedis(t)
	repository := storage.NewRedisCartRepository(client, 0)

	lines, err := repository.LoadCart(context.Background(), "nobody")

	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestRedisCartRepository_ReadsLegacyArray(t *testing.T) {
	mr, client := setupRedis(t)
	repository := storage.NewRedisCartRepository(client, 0)
	require.NoError(t, mr.Set("cart:old", `[{"id":"x","name":"Fries","price":"250","quantity":3,"restaurant_name":"Dino's Chicken"}]`))

	lines, err := repository.LoadCart(context.Background(), "old")

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, decimal.NewFromInt(250).Equal(lines[0].Price))
}

func TestDecodeCart_Errors(t *testing.T) {
	_, err := storage.DecodeCart([]byte(`{"version":7,"lines":[]}`))
	assert.ErrorIs(t, err, storage.ErrUnsupportedCartVersion)

	_, err = storage.DecodeCart([]byte(`{not json`))
	assert.Error(t, err)
}

func TestEncodeCart_EmptyIsArray(t *testing.T) {
	data, err := storage.EncodeCart(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"lines":[]}`, string(data))
}

func TestRedisCartRepository_SaveOverwritesWholeCart(t *testing.T) {
	_, client := setupRedis(t)
	repository := storage.NewRedisCartRepository(client, 0)
	ctx := context.Background()

	first := []domain.CartLine{
		{ID: "a", Name: "A", Price: decimal.NewFromInt(100), Quantity: 2},
		{ID: "b", Name: "B", Price: decimal.NewFromInt(50), Quantity: 1},
	}
	require.NoError(t, repository.SaveCart(ctx, "s1", first))
	require.NoError(t, repository.SaveCart(ctx, "s1", first[1:]))
	require.NoError(t, repository.SaveCart(ctx, "s2", first[:1]))

	lines, err := repository.LoadCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "b", lines[0].ID)

	other, err := repository.LoadCart(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "a", other[0].ID)
}

func TestRedisCatalogCache(t *testing.T) {
	mr, client := setupRedis(t)
	cache := storage.NewRedisCatalogCache(client, 5*time.Minute)
	ctx := context.Background()

	_, found, err := cache.GetRestaurants(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	restaurants := []domain.Restaurant{{ID: "r1", Name: "Dino's Chicken", MinOrder: decimal.NewFromInt(200), Cuisine: []string{"BBQ"}}}
	require.NoError(t, cache.SetRestaurants(ctx, restaurants))

	cached, found, err := cache.GetRestaurants(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, cached, 1)
	assert.Equal(t, "Dino's Chicken", cached[0].Name)
	assert.True(t, decimal.NewFromInt(200).Equal(cached[0].MinOrder))

	items := []domain.CatalogItem{{ID: "i1", Name: "Zinger", HalfKgPrice: decimal.NewNullDecimal(decimal.NewFromInt(900))}}
	require.NoError(t, cache.SetMenu(ctx, "r1", items))
	menu, found, err := cache.GetMenu(ctx, "r1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, menu[0].HalfKgPrice.Valid)
	assert.False(t, menu[0].SmallPrice.Valid)

	mr.FastForward(6 * time.Minute)
	_, found, err = cache.GetMenu(ctx, "r1")
	require.NoError(t, err)
	assert.False(t, found)
}
