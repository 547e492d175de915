package order

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"foodwala-storefront/shop-svc/internal/cart"
	"foodwala-storefront/shop-svc/internal/delivery"
	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const UngroupedLabel = "Other items"

type Config struct {
	ChatBaseURL string
	Phone       string
	Currency    string
	Greeting    string
	Closing     string
}

func DefaultConfig() Config {
	return Config{
		ChatBaseURL: "https://wa.me",
		Phone:       "923181375067",
		Currency:    "Rs. ",
		Greeting:    "Hi Foodwala! I want to place an order:",
		Closing:     "Please confirm my order.",
	}
}

// ZoneResolver is the part of the delivery resolver the composer needs.
type ZoneResolver interface {
	Zone(zoneID string) (domain.DeliveryZone, error)
	RequiresZone() bool
}

type BlockReason string

const (
	ReasonNone         BlockReason = ""
	ReasonEmptyCart    BlockReason = "empty_cart"
	ReasonZoneRequired BlockReason = "zone_required"
	ReasonUnknownZone  BlockReason = "unknown_zone"
)

// Readiness tells the caller whether checkout may proceed. A blocked
// checkout is a normal state, not an error.
type Readiness struct {
	Ready   bool        `json:"ready"`
	Reason  BlockReason `json:"reason,omitempty"`
	Message string      `json:"message,omitempty"`
}

type Composer struct {
	config Config
	now    func() time.Time
	newRef func() string
}

func NewComposer(config Config) *Composer {
	return &Composer{
		config: config,
		now:    time.Now,
		newRef: func() string { return uuid.NewString() },
	}
}

// BuildSummary totals the lines and groups them by restaurant in order of
// first appearance.
func (c *Composer) BuildSummary(lines []domain.CartLine, zone domain.DeliveryZone) domain.OrderSummary {
	snapshot := make([]domain.CartLine, len(lines))
	copy(snapshot, lines)

	subtotal := cart.Subtotal(snapshot)
	return domain.OrderSummary{
		Reference:  c.newRef(),
		Lines:      snapshot,
		Zone:       zone,
		Subtotal:   subtotal,
		Fee:        zone.Fee,
		Total:      subtotal.Add(zone.Fee),
		TotalItems: cart.TotalItems(snapshot),
		Groups:     groupByRestaurant(snapshot),
		CreatedAt:  c.now().UTC(),
	}
}

// Prepare resolves the zone and checks the checkout preconditions. The
// summary is always returned so the cart view can render it.
func (c *Composer) Prepare(lines []domain.CartLine, zones ZoneResolver, zoneID string) (domain.OrderSummary, Readiness) {
	zone, err := zones.Zone(zoneID)
	readiness := Readiness{Ready: true}
	switch {
	case errors.Is(err, delivery.ErrZoneNotSelected):
		readiness = Readiness{Reason: ReasonZoneRequired, Message: "select a delivery area"}
		zone = domain.DeliveryZone{}
	case err != nil:
		readiness = Readiness{Reason: ReasonUnknownZone, Message: err.Error()}
		zone = domain.DeliveryZone{ID: zoneID}
	}
	if len(lines) == 0 {
		readiness = Readiness{Reason: ReasonEmptyCart, Message: "cart is empty"}
	}
	return c.BuildSummary(lines, zone), readiness
}

func groupByRestaurant(lines []domain.CartLine) []domain.RestaurantGroup {
	var groups []domain.RestaurantGroup
	index := make(map[string]int)
	for _, line := range lines {
		name := line.RestaurantName
		if name == "" {
			name = UngroupedLabel
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, domain.RestaurantGroup{Restaurant: name, Subtotal: decimal.Zero})
		}
		groups[i].Lines = append(groups[i].Lines, line)
		groups[i].Subtotal = groups[i].Subtotal.Add(line.Amount())
	}
	return groups
}

func (c *Composer) money(amount decimal.Decimal) string {
	return c.config.Currency + amount.String()
}

// RenderChatText produces the transcript sent to the chat service.
func (c *Composer) RenderChatText(summary domain.OrderSummary) string {
	var b strings.Builder
	b.WriteString(c.config.Greeting)
	b.WriteString("\n")

	for _, group := range summary.Groups {
		b.WriteString("\n")
		b.WriteString(group.Restaurant)
		b.WriteString("\n")
		for _, line := range group.Lines {
			b.WriteString(line.Name + " x" + strconv.Itoa(line.Quantity) + " = " + c.money(line.Amount()) + "\n")
		}
	}

	b.WriteString("\nSubtotal: " + c.money(summary.Subtotal) + "\n")
	if summary.Zone.Name != "" {
		b.WriteString("Delivery Area: " + summary.Zone.Name + "\n")
	}
	b.WriteString("Delivery Fee: " + c.money(summary.Fee) + "\n")
	b.WriteString("Total Items: " + strconv.Itoa(summary.TotalItems) + "\n")
	b.WriteString("Total Amount: " + c.money(summary.Total) + "\n")
	b.WriteString("\nDelivery: Yes\n\n")
	b.WriteString(c.config.Closing)
	return b.String()
}

func (c *Composer) ChatLink(summary domain.OrderSummary) string {
	return strings.TrimRight(c.config.ChatBaseURL, "/") + "/" + c.config.Phone +
		"?text=" + encodeURIComponent(c.RenderChatText(summary))
}

// encodeURIComponent escapes s the way browsers do for a URI component, so
// links match the ones the storefront has always produced.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isUnreserved(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[ch>>4])
		b.WriteByte(hex[ch&0x0F])
	}
	return b.String()
}

func isUnreserved(ch byte) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", ch) >= 0
}
