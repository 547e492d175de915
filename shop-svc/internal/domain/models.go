package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Logo         string          `json:"logo"`
	Rating       float64         `json:"rating"`
	Reviews      int             `json:"reviews"`
	DeliveryTime string          `json:"delivery_time"`
	MinOrder     decimal.Decimal `json:"min_order"`
	Location     string          `json:"location"`
	Phone        string          `json:"phone"`
	Cuisine      []string        `json:"cuisine"`
	IsPopular    bool            `json:"is_popular"`
}

// CatalogItem is a menu entry after ingestion. Variant prices are already
// mapped onto the canonical fields; an unset field is not Valid.
type CatalogItem struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Price          decimal.Decimal     `json:"price"`
	OriginalPrice  decimal.NullDecimal `json:"original_price"`
	Image          string              `json:"image,omitempty"`
	Rating         float64             `json:"rating"`
	Reviews        int                 `json:"reviews"`
	IsPopular      bool                `json:"is_popular"`
	IsSpicy        bool                `json:"is_spicy"`
	IsVegetarian   bool                `json:"is_vegetarian"`
	IsAvailable    bool                `json:"is_available"`
	CookTime       string              `json:"cook_time"`
	Category       string              `json:"category"`
	RestaurantID   string              `json:"restaurant_id"`
	RestaurantName string              `json:"restaurant_name"`
	SmallPrice     decimal.NullDecimal `json:"small_price"`
	MediumPrice    decimal.NullDecimal `json:"medium_price"`
	LargePrice     decimal.NullDecimal `json:"large_price"`
	HalfKgPrice    decimal.NullDecimal `json:"half_kg_price"`
	OneKgPrice     decimal.NullDecimal `json:"one_kg_price"`
}

type CartLine struct {
	ID             string              `json:"id"`
	ItemID         string              `json:"item_id"`
	Name           string              `json:"name"`
	Variant        string              `json:"variant,omitempty"`
	Price          decimal.Decimal     `json:"price"`
	Quantity       int                 `json:"quantity"`
	RestaurantID   string              `json:"restaurant_id,omitempty"`
	RestaurantName string              `json:"restaurant_name"`
	Image          string              `json:"image,omitempty"`
	OriginalPrice  decimal.NullDecimal `json:"original_price"`
}

func (l CartLine) Amount() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type DeliveryZone struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Fee  decimal.Decimal `json:"fee"`
}

type RestaurantGroup struct {
	Restaurant string          `json:"restaurant"`
	Lines      []CartLine      `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// OrderSummary is built at checkout time and never stored.
type OrderSummary struct {
	Reference  string            `json:"reference"`
	Lines      []CartLine        `json:"lines"`
	Zone       DeliveryZone      `json:"zone"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	Fee        decimal.Decimal   `json:"delivery_fee"`
	Total      decimal.Decimal   `json:"total"`
	TotalItems int               `json:"total_items"`
	Groups     []RestaurantGroup `json:"groups"`
	CreatedAt  time.Time         `json:"created_at"`
}

type OrderEvent struct {
	Type       string    `json:"type"`
	Reference  string    `json:"reference"`
	Area       string    `json:"area"`
	Subtotal   float64   `json:"subtotal"`
	Fee        float64   `json:"delivery_fee"`
	Total      float64   `json:"total"`
	TotalItems int       `json:"total_items"`
	Timestamp  time.Time `json:"timestamp"`
}
