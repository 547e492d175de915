package catalog

import (
	"encoding/json"
	"strings"

	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	defaultRating       = 4.5
	defaultDeliveryTime = "30-40 min"
	defaultMinOrder     = 150
	defaultLocation     = "Karachi"
	defaultItemName     = "Unknown Item"
	defaultCookTime     = "15-20 min"
	defaultCategory     = "others"
)

// Historical spellings of the weight price fields, in priority order.
var (
	halfKgFields = []string{"halfKg", "halfkg", "half_kg", "kg"}
	oneKgFields  = []string{"oneKg", "onekg", "one_kg", "fullKg", "kg1"}
)

type sys struct {
	ID string `json:"id"`
}

type entry struct {
	Sys    sys    `json:"sys"`
	Fields fields `json:"fields"`
}

type asset struct {
	Sys    sys `json:"sys"`
	Fields struct {
		File struct {
			URL string `json:"url"`
		} `json:"file"`
	} `json:"fields"`
}

type entriesResponse struct {
	Items    []entry `json:"items"`
	Includes struct {
		Entry []entry `json:"Entry"`
		Asset []asset `json:"Asset"`
	} `json:"includes"`
}

func (r entriesResponse) assetURLs() map[string]string {
	urls := make(map[string]string, len(r.Includes.Asset))
	for _, a := range r.Includes.Asset {
		urls[a.Sys.ID] = absoluteURL(a.Fields.File.URL)
	}
	return urls
}

func (r entriesResponse) includedEntries() map[string]entry {
	entries := make(map[string]entry, len(r.Includes.Entry))
	for _, e := range r.Includes.Entry {
		entries[e.Sys.ID] = e
	}
	return entries
}

// absoluteURL turns protocol-relative asset URLs into https URLs.
func absoluteURL(raw string) string {
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	return raw
}

type fields map[string]json.RawMessage

func (f fields) str(key string) string {
	var s string
	if raw, ok := f[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

func (f fields) strOr(key, fallback string) string {
	if s := f.str(key); s != "" {
		return s
	}
	return fallback
}

func (f fields) strs(key string) []string {
	values := []string{}
	if raw, ok := f[key]; ok {
		_ = json.Unmarshal(raw, &values)
	}
	if values == nil {
		values = []string{}
	}
	return values
}

func (f fields) boolean(key string) (value, present bool) {
	raw, ok := f[key]
	if !ok {
		return false, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return false, false
	}
	return value, true
}

func (f fields) flag(key string) bool {
	value, _ := f.boolean(key)
	return value
}

func (f fields) floatOr(key string, fallback float64) float64 {
	var value float64
	if raw, ok := f[key]; ok && json.Unmarshal(raw, &value) == nil && value != 0 {
		return value
	}
	return fallback
}

func (f fields) intOr(key string, fallback int) int {
	return int(f.floatOr(key, float64(fallback)))
}

// price returns the first positive value among keys. Values may be numbers
// or numeric strings.
func (f fields) price(keys ...string) decimal.NullDecimal {
	for _, key := range keys {
		raw, ok := f[key]
		if !ok {
			continue
		}
		var value decimal.NullDecimal
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		if value.Valid && value.Decimal.IsPositive() {
			return value
		}
	}
	return decimal.NullDecimal{}
}

func (f fields) linkID(key string) string {
	var link struct {
		Sys sys `json:"sys"`
	}
	if raw, ok := f[key]; ok {
		_ = json.Unmarshal(raw, &link)
	}
	return link.Sys.ID
}

func normalizeRestaurant(item entry, assets map[string]string, defaultPhone string) domain.Restaurant {
	f := item.Fields
	minOrder := f.price("minOrder")
	if !minOrder.Valid {
		minOrder = decimal.NewNullDecimal(decimal.NewFromInt(defaultMinOrder))
	}
	return domain.Restaurant{
		ID:           item.Sys.ID,
		Name:         f.str("name"),
		Logo:         assets[f.linkID("logo")],
		Rating:       f.floatOr("rating", defaultRating),
		Reviews:      f.intOr("reviews", 0),
		DeliveryTime: f.strOr("deliveryTime", defaultDeliveryTime),
		MinOrder:     minOrder.Decimal,
		Location:     f.strOr("location", defaultLocation),
		Phone:        f.strOr("phone", defaultPhone),
		Cuisine:      f.strs("cuisine"),
		IsPopular:    f.flag("isPopular"),
	}
}

// normalizeMenuLink flattens a menu link and its master item. Listing
// fields (price, availability, popularity) come from the link, the rest
// from the master. For standalone entries both are the same entry.
func normalizeMenuLink(link, master entry, assets map[string]string) domain.CatalogItem {
	lf, mf := link.Fields, master.Fields
	if mf == nil {
		mf = fields{}
	}

	description := lf.str("customDescription")
	if description == "" {
		description = mf.str("description")
	}

	available, present := lf.boolean("isAvailable")
	if !present {
		available = true
	}

	item := domain.CatalogItem{
		ID:            link.Sys.ID,
		Name:          mf.strOr("name", defaultItemName),
		Description:   description,
		OriginalPrice: lf.price("originalPrice"),
		Image:         assets[mf.linkID("image")],
		Rating:        mf.floatOr("rating", defaultRating),
		Reviews:       mf.intOr("reviews", 0),
		IsPopular:     lf.flag("isPopular"),
		IsSpicy:       mf.flag("isSpicy"),
		IsVegetarian:  mf.flag("isVegetarian"),
		IsAvailable:   available,
		CookTime:      mf.strOr("cookTime", defaultCookTime),
		Category:      mf.strOr("category", defaultCategory),
		SmallPrice:    mf.price("smallPrice"),
		MediumPrice:   mf.price("mediumPrice"),
		LargePrice:    mf.price("largePrice"),
		HalfKgPrice:   mf.price(halfKgFields...),
		OneKgPrice:    mf.price(oneKgFields...),
	}
	item.Price = basePrice(item, lf.price("price"))
	return item
}

// basePrice picks the listing price. Variant-priced items use their first
// priced tier so the card never shows zero.
func basePrice(item domain.CatalogItem, listed decimal.NullDecimal) decimal.Decimal {
	for _, candidate := range []decimal.NullDecimal{
		item.HalfKgPrice, item.SmallPrice, item.MediumPrice, item.LargePrice, item.OneKgPrice, listed,
	} {
		if candidate.Valid {
			return candidate.Decimal
		}
	}
	return decimal.Zero
}
