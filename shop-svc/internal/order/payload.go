package order

import (
	"time"

	"foodwala-storefront/shop-svc/internal/domain"
)

// Payload is the JSON body posted to the order logging webhook. Field names
// follow what the automation scenario on the other side already expects.
type Payload struct {
	Reference           string         `json:"reference"`
	Items               []PayloadItem  `json:"items"`
	Subtotal            float64        `json:"subtotal"`
	DeliveryCharge      float64        `json:"deliveryCharge"`
	Total               float64        `json:"total"`
	TotalItems          int            `json:"totalItems"`
	Area                string         `json:"area"`
	CreatedAt           string         `json:"createdAt"`
	GroupedByRestaurant []PayloadGroup `json:"groupedByRestaurant"`
}

type PayloadItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Variant        string   `json:"selectedSize,omitempty"`
	Price          float64  `json:"price"`
	OriginalPrice  *float64 `json:"originalPrice,omitempty"`
	Quantity       int      `json:"quantity"`
	RestaurantName string   `json:"restaurantName"`
	Image          string   `json:"image,omitempty"`
}

type PayloadGroup struct {
	Restaurant string        `json:"restaurant"`
	Items      []PayloadItem `json:"items"`
	Subtotal   float64       `json:"subtotal"`
}

func NewPayload(summary domain.OrderSummary) Payload {
	payload := Payload{
		Reference:      summary.Reference,
		Items:          payloadItems(summary.Lines),
		Subtotal:       summary.Subtotal.InexactFloat64(),
		DeliveryCharge: summary.Fee.InexactFloat64(),
		Total:          summary.Total.InexactFloat64(),
		TotalItems:     summary.TotalItems,
		Area:           summary.Zone.Name,
		CreatedAt:      summary.CreatedAt.Format(time.RFC3339Nano),
	}
	for _, group := range summary.Groups {
		payload.GroupedByRestaurant = append(payload.GroupedByRestaurant, PayloadGroup{
			Restaurant: group.Restaurant,
			Items:      payloadItems(group.Lines),
			Subtotal:   group.Subtotal.InexactFloat64(),
		})
	}
	return payload
}

func payloadItems(lines []domain.CartLine) []PayloadItem {
	items := make([]PayloadItem, 0, len(lines))
	for _, line := range lines {
		item := PayloadItem{
			ID:             line.ID,
			Name:           line.Name,
			Variant:        line.Variant,
			Price:          line.Price.InexactFloat64(),
			Quantity:       line.Quantity,
			RestaurantName: line.RestaurantName,
			Image:          line.Image,
		}
		if line.OriginalPrice.Valid {
			original := line.OriginalPrice.Decimal.InexactFloat64()
			item.OriginalPrice = &original
		}
		items = append(items, item)
	}
	return items
}

const EventOrderPlaced = "order_placed"

func NewOrderEvent(summary domain.OrderSummary) domain.OrderEvent {
	return domain.OrderEvent{
		Type:       EventOrderPlaced,
		Reference:  summary.Reference,
		Area:       summary.Zone.Name,
		Subtotal:   summary.Subtotal.InexactFloat64(),
		Fee:        summary.Fee.InexactFloat64(),
		Total:      summary.Total.InexactFloat64(),
		TotalItems: summary.TotalItems,
		Timestamp:  summary.CreatedAt,
	}
}
