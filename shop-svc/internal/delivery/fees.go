package delivery

import (
	"errors"
	"fmt"

	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	MinZones = 2
	MaxZones = 10

	FlatZoneID = "flat"
)

var (
	ErrZoneNotSelected = errors.New("delivery zone not selected")
	ErrUnknownZone     = errors.New("unknown delivery zone")
	ErrInvalidZones    = errors.New("invalid delivery zone table")
)

type Mode string

const (
	ModeFlat  Mode = "flat"
	ModeZones Mode = "zones"
)

func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeFlat, ModeZones:
		return Mode(value), nil
	case "":
		return ModeFlat, nil
	default:
		return "", fmt.Errorf("unknown delivery mode %q", value)
	}
}

// Resolver maps a zone selection to a fee. A deployment runs in exactly one
// mode for its lifetime.
type Resolver struct {
	mode  Mode
	flat  domain.DeliveryZone
	zones []domain.DeliveryZone
	index map[string]int
}

func NewFlatResolver(fee decimal.Decimal, label string) (*Resolver, error) {
	if fee.IsNegative() {
		return nil, fmt.Errorf("%w: negative flat fee", ErrInvalidZones)
	}
	return &Resolver{
		mode: ModeFlat,
		flat: domain.DeliveryZone{ID: FlatZoneID, Name: label, Fee: fee},
	}, nil
}

func NewZoneResolver(zones []domain.DeliveryZone) (*Resolver, error) {
	if len(zones) < MinZones || len(zones) > MaxZones {
		return nil, fmt.Errorf("%w: %d zones, want %d to %d", ErrInvalidZones, len(zones), MinZones, MaxZones)
	}

	index := make(map[string]int, len(zones))
	for i, zone := range zones {
		if zone.ID == "" {
			return nil, fmt.Errorf("%w: zone %d has no id", ErrInvalidZones, i)
		}
		if zone.Fee.IsNegative() {
			return nil, fmt.Errorf("%w: zone %s has a negative fee", ErrInvalidZones, zone.ID)
		}
		if _, dup := index[zone.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate zone %s", ErrInvalidZones, zone.ID)
		}
		index[zone.ID] = i
	}

	table := make([]domain.DeliveryZone, len(zones))
	copy(table, zones)
	return &Resolver{mode: ModeZones, zones: table, index: index}, nil
}

func (r *Resolver) Mode() Mode {
	return r.mode
}

func (r *Resolver) RequiresZone() bool {
	return r.mode == ModeZones
}

// FlatFee is the unconditional fee in flat mode and zero otherwise.
func (r *Resolver) FlatFee() decimal.Decimal {
	if r.mode != ModeFlat {
		return decimal.Zero
	}
	return r.flat.Fee
}

func (r *Resolver) ListZones() []domain.DeliveryZone {
	zones := make([]domain.DeliveryZone, len(r.zones))
	copy(zones, r.zones)
	return zones
}

// Zone resolves the selection to the area that will be charged. In zone mode
// an empty id yields ErrZoneNotSelected.
func (r *Resolver) Zone(zoneID string) (domain.DeliveryZone, error) {
	if r.mode == ModeFlat {
		return r.flat, nil
	}
	if zoneID == "" {
		return domain.DeliveryZone{}, ErrZoneNotSelected
	}
	i, ok := r.index[zoneID]
	if !ok {
		return domain.DeliveryZone{}, ErrUnknownZone
	}
	return r.zones[i], nil
}

// FeeFor returns zero together with the error when no fee applies.
func (r *Resolver) FeeFor(zoneID string) (decimal.Decimal, error) {
	zone, err := r.Zone(zoneID)
	if err != nil {
		return decimal.Zero, err
	}
	return zone.Fee, nil
}
