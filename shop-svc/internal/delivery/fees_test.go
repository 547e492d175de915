package delivery

import (
	"testing"

	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zone(id, name string, fee int64) domain.DeliveryZone {
	return domain.DeliveryZone{ID: id, Name: name, Fee: decimal.NewFromInt(fee)}
}

var karachi = []domain.DeliveryZone{
	zone("gulshan", "Gulshan-e-Iqbal", 100),
	zone("bahadurabad", "Bahadurabad", 120),
	zone("dha", "DHA", 200),
}

func TestFlatResolver(t *testing.T) {
	resolver, err := NewFlatResolver(decimal.NewFromInt(100), "Delivery - Fixed Fee")
	require.NoError(t, err)

	assert.Equal(t, ModeFlat, resolver.Mode())
	assert.False(t, resolver.RequiresZone())
	assert.Empty(t, resolver.ListZones())

	for _, zoneID := range []string{"", "dha", "anything"} {
		fee, err := resolver.FeeFor(zoneID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(100).Equal(fee))
	}

	area, err := resolver.Zone("")
	require.NoError(t, err)
	assert.Equal(t, "Delivery - Fixed Fee", area.Name)
	assert.Equal(t, FlatZoneID, area.ID)
}

func TestZoneResolver_FeeFor(t *testing.T) {
	resolver, err := NewZoneResolver(karachi)
	require.NoError(t, err)

	tests := []struct {
		name    string
		zoneID  string
		want    int64
		wantErr error
	}{
		{name: "known", zoneID: "bahadurabad", want: 120},
		{name: "most_expensive", zoneID: "dha", want: 200},
		{name: "unselected", zoneID: "", wantErr: ErrZoneNotSelected},
		{name: "unknown", zoneID: "lyari", wantErr: ErrUnknownZone},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			fee, err := resolver.FeeFor(testCase.zoneID)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.True(t, fee.IsZero())
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(testCase.want).Equal(fee))
		})
	}

	assert.True(t, resolver.RequiresZone())
	assert.True(t, resolver.FlatFee().IsZero())
}

func TestZoneResolver_ListZonesIsOrderedCopy(t *testing.T) {
	resolver, err := NewZoneResolver(karachi)
	require.NoError(t, err)

	zones := resolver.ListZones()
	require.Len(t, zones, 3)
	assert.Equal(t, "gulshan", zones[0].ID)
	assert.Equal(t, "dha", zones[2].ID)

	zones[0].Name = "changed"
	assert.Equal(t, "Gulshan-e-Iqbal", resolver.ListZones()[0].Name)
}

func TestNewZoneResolver_Validation(t *testing.T) {
	tests := []struct {
		name  string
		zones []domain.DeliveryZone
	}{
		{name: "too_few", zones: karachi[:1]},
		{name: "too_many", zones: func() []domain.DeliveryZone {
			zones := make([]domain.DeliveryZone, 0, MaxZones+1)
			for i := 0; i <= MaxZones; i++ {
				zones = append(zones, zone(string(rune('a'+i)), "zone", 60))
			}
			return zones
		}()},
		{name: "duplicate", zones: []domain.DeliveryZone{zone("a", "A", 60), zone("a", "A again", 80)}},
		{name: "negative_fee", zones: []domain.DeliveryZone{zone("a", "A", 60), zone("b", "B", -1)}},
		{name: "missing_id", zones: []domain.DeliveryZone{zone("a", "A", 60), zone("", "B", 80)}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := NewZoneResolver(testCase.zones)
			assert.ErrorIs(t, err, ErrInvalidZones)
		})
	}
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("zones")
	require.NoError(t, err)
	assert.Equal(t, ModeZones, mode)

	mode, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeFlat, mode)

	_, err = ParseMode("hybrid")
	assert.Error(t, err)
}
