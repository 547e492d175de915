package pricing

import (
	"errors"

	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrNoVariants     = errors.New("item has no variants")
	ErrUnknownVariant = errors.New("variant is not offered for this item")
)

type Scheme int

const (
	SchemeNone Scheme = iota
	SchemeSize
	SchemeWeight
)

func (s Scheme) String() string {
	switch s {
	case SchemeSize:
		return "size"
	case SchemeWeight:
		return "weight"
	default:
		return "none"
	}
}

type Key string

const (
	Small  Key = "small"
	Medium Key = "medium"
	Large  Key = "large"
	HalfKg Key = "halfKg"
	OneKg  Key = "oneKg"
)

const PriceTBD = "Price TBD"

type Option struct {
	Key   Key                 `json:"key"`
	Label string              `json:"label"`
	Hint  string              `json:"hint"`
	Price decimal.NullDecimal `json:"price"`
}

func (o Option) Priced() bool {
	return priced(o.Price)
}

// Selection is a resolved variant choice ready to become a cart line.
type Selection struct {
	Key   Key
	Label string
	Price decimal.Decimal
}

var labels = map[Key][2]string{
	Small:  {"Small", `8"`},
	Medium: {"Medium", `12"`},
	Large:  {"Large", `16"`},
	HalfKg: {"Half Kg", "½ kg"},
	OneKg:  {"One Kg", "1 kg"},
}

func Label(key Key) string {
	return labels[key][0]
}

func priced(d decimal.NullDecimal) bool {
	return d.Valid && d.Decimal.IsPositive()
}

// SchemeOf reports how the item is sold. Weight wins when an item carries
// both weight and size prices.
func SchemeOf(item domain.CatalogItem) Scheme {
	if priced(item.HalfKgPrice) || priced(item.OneKgPrice) {
		return SchemeWeight
	}
	if priced(item.SmallPrice) || priced(item.MediumPrice) || priced(item.LargePrice) {
		return SchemeSize
	}
	return SchemeNone
}

func HasVariants(item domain.CatalogItem) bool {
	return SchemeOf(item) != SchemeNone
}

// Options lists the selectable variants. Weight items always offer both
// tiers; size items offer only the tiers that carry a price.
func Options(item domain.CatalogItem) []Option {
	switch SchemeOf(item) {
	case SchemeWeight:
		return []Option{
			newOption(HalfKg, item.HalfKgPrice),
			newOption(OneKg, item.OneKgPrice),
		}
	case SchemeSize:
		var options []Option
		for _, tier := range []struct {
			key   Key
			price decimal.NullDecimal
		}{
			{Small, item.SmallPrice},
			{Medium, item.MediumPrice},
			{Large, item.LargePrice},
		} {
			if priced(tier.price) {
				options = append(options, newOption(tier.key, tier.price))
			}
		}
		return options
	default:
		return nil
	}
}

func newOption(key Key, price decimal.NullDecimal) Option {
	if !priced(price) {
		price = decimal.NullDecimal{}
	}
	return Option{Key: key, Label: labels[key][0], Hint: labels[key][1], Price: price}
}

func DefaultVariant(item domain.CatalogItem) (Key, bool) {
	switch SchemeOf(item) {
	case SchemeWeight:
		return HalfKg, true
	case SchemeSize:
		return Options(item)[0].Key, true
	default:
		return "", false
	}
}

// PriceFor returns the unit price for the given variant. An empty key selects
// the default variant. A weight tier without a price falls back to the base
// price.
func PriceFor(item domain.CatalogItem, key Key) (decimal.Decimal, error) {
	selection, err := Resolve(item, key)
	if err != nil {
		return decimal.Zero, err
	}
	return selection.Price, nil
}

func Resolve(item domain.CatalogItem, key Key) (Selection, error) {
	if !HasVariants(item) {
		if key != "" {
			return Selection{}, ErrNoVariants
		}
		return Selection{Price: item.Price}, nil
	}

	if key == "" {
		key, _ = DefaultVariant(item)
	}

	for _, option := range Options(item) {
		if option.Key != key {
			continue
		}
		price := item.Price
		if option.Priced() {
			price = option.Price.Decimal
		}
		return Selection{Key: key, Label: option.Label, Price: price}, nil
	}
	return Selection{}, ErrUnknownVariant
}

func LineID(itemID string, key Key) string {
	if key == "" {
		return itemID
	}
	return itemID + "-" + string(key)
}

func DisplayName(name string, selection Selection) string {
	if selection.Key == "" {
		return name
	}
	return name + " (" + selection.Label + ")"
}
