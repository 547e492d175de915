package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"foodwala-storefront/shop-svc/internal/delivery"
	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/order"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartReader interface {
	Lines(ctx context.Context, sessionID string) ([]domain.CartLine, error)
}

type RestaurantDirectory interface {
	Restaurants(ctx context.Context) RestaurantListing
}

type DeliveryResolver interface {
	order.ZoneResolver
	Mode() delivery.Mode
	ListZones() []domain.DeliveryZone
	FlatFee() decimal.Decimal
}

type OrderDispatcher interface {
	Dispatch(ctx context.Context, summary domain.OrderSummary) order.Handoff
}

type DeliveryOptions struct {
	Mode         delivery.Mode         `json:"mode"`
	RequiresZone bool                  `json:"requires_zone"`
	Zones        []domain.DeliveryZone `json:"zones"`
	FlatFee      decimal.Decimal       `json:"flat_fee"`
}

type SummaryView struct {
	Summary   domain.OrderSummary `json:"summary"`
	Readiness order.Readiness     `json:"readiness"`
	ChatText  string              `json:"chat_text"`
	Warnings  []string            `json:"warnings,omitempty"`
}

type CheckoutResult struct {
	Readiness order.Readiness `json:"readiness"`
	Reference string          `json:"reference,omitempty"`
	ChatURL   string          `json:"chat_url,omitempty"`
	QRCode    string          `json:"qr_code,omitempty"`
	Total     decimal.Decimal `json:"total"`
}

type CheckoutService struct {
	carts       CartReader
	restaurants RestaurantDirectory
	zones       DeliveryResolver
	composer    *order.Composer
	dispatcher  OrderDispatcher
	qr          QRGenerator
	currency    string
	logger      *zap.Logger
}

func NewCheckoutService(
	carts CartReader,
	restaurants RestaurantDirectory,
	zones DeliveryResolver,
	composer *order.Composer,
	dispatcher OrderDispatcher,
	qr QRGenerator,
	currency string,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:       carts,
		restaurants: restaurants,
		zones:       zones,
		composer:    composer,
		dispatcher:  dispatcher,
		qr:          qr,
		currency:    currency,
		logger:      logger.With(zap.String("component", "checkout")),
	}
}

func (s *CheckoutService) DeliveryOptions() DeliveryOptions {
	return DeliveryOptions{
		Mode:         s.zones.Mode(),
		RequiresZone: s.zones.RequiresZone(),
		Zones:        s.zones.ListZones(),
		FlatFee:      s.zones.FlatFee(),
	}
}

func (s *CheckoutService) Summary(ctx context.Context, sessionID, zoneID string) (SummaryView, error) {
	lines, err := s.carts.Lines(ctx, sessionID)
	if err != nil {
		return SummaryView{}, err
	}

	summary, readiness := s.composer.Prepare(lines, s.zones, zoneID)
	return SummaryView{
		Summary:   summary,
		Readiness: readiness,
		ChatText:  s.composer.RenderChatText(summary),
		Warnings:  s.minimumOrderWarnings(ctx, summary),
	}, nil
}

// Checkout dispatches the order when the cart is ready. A blocked checkout
// is returned as a result with Ready unset and nothing dispatched.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID, zoneID string) (CheckoutResult, error) {
	lines, err := s.carts.Lines(ctx, sessionID)
	if err != nil {
		return CheckoutResult{}, err
	}

	summary, readiness := s.composer.Prepare(lines, s.zones, zoneID)
	if !readiness.Ready {
		s.logger.Info("checkout blocked",
			zap.String("session", sessionID),
			zap.String("reason", string(readiness.Reason)))
		return CheckoutResult{Readiness: readiness, Total: summary.Total}, nil
	}

	handoff := s.dispatcher.Dispatch(ctx, summary)
	result := CheckoutResult{
		Readiness: readiness,
		Reference: handoff.Reference,
		ChatURL:   handoff.ChatURL,
		Total:     summary.Total,
	}

	if s.qr != nil {
		png, err := s.qr.Generate(handoff.ChatURL)
		if err != nil {
			s.logger.Warn("qr generation failed", zap.String("reference", handoff.Reference), zap.Error(err))
		} else {
			result.QRCode = base64.StdEncoding.EncodeToString(png)
		}
	}

	s.logger.Info("order handed off",
		zap.String("session", sessionID),
		zap.String("reference", handoff.Reference),
		zap.String("area", summary.Zone.Name),
		zap.String("total", summary.Total.String()),
		zap.Int("items", summary.TotalItems))
	return result, nil
}

// minimumOrderWarnings flags restaurant groups below the restaurant's
// minimum order. They are advisory and never block checkout.
func (s *CheckoutService) minimumOrderWarnings(ctx context.Context, summary domain.OrderSummary) []string {
	if len(summary.Groups) == 0 || s.restaurants == nil {
		return nil
	}

	minimums := make(map[string]decimal.Decimal)
	for _, restaurant := range s.restaurants.Restaurants(ctx).Restaurants {
		minimums[restaurant.ID] = restaurant.MinOrder
	}

	var warnings []string
	for _, group := range summary.Groups {
		minimum, ok := minimums[group.Lines[0].RestaurantID]
		if !ok || group.Subtotal.GreaterThanOrEqual(minimum) {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("Minimum order for %s is %s%s", group.Restaurant, s.currency, minimum.String()))
	}
	return warnings
}
