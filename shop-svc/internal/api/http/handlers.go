package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"foodwala-storefront/shop-svc/internal/cart"
	"foodwala-storefront/shop-svc/internal/catalog"
	"foodwala-storefront/shop-svc/internal/delivery"
	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/pricing"
	"foodwala-storefront/shop-svc/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "session"
)

type Handler struct {
	Catalog  service.CatalogServiceInterface
	Carts    service.CartServiceInterface
	Checkout service.CheckoutServiceInterface
	Logger   *zap.Logger
}

func NewHandler(catalogSvc service.CatalogServiceInterface, cartSvc service.CartServiceInterface, checkoutSvc service.CheckoutServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog:  catalogSvc,
		Carts:    cartSvc,
		Checkout: checkoutSvc,
		Logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu", h.getHouseMenu).Methods("GET")
	r.HandleFunc("/api/zones", h.getZones).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{lineId}", h.setQuantity).Methods("PUT")
	r.HandleFunc("/api/cart/items/{lineId}", h.removeItem).Methods("DELETE")
	r.HandleFunc("/api/cart/summary", h.getSummary).Methods("GET")

	r.HandleFunc("/api/checkout", h.checkout).Methods("POST")
}

type cartView struct {
	Lines      []domain.CartLine `json:"lines"`
	TotalItems int               `json:"total_items"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
}

type addItemResponse struct {
	Line domain.CartLine `json:"line"`
	Cart cartView        `json:"cart"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	Zone string `json:"zone"`
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "shop-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Restaurants(r.Context()))
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.Catalog.Menu(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	query := r.URL.Query()
	writeJSON(w, http.StatusOK, menu.Filter(query.Get("category"), query.Get("q")))
}

func (h *Handler) getHouseMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.Catalog.HouseMenu(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	query := r.URL.Query()
	writeJSON(w, http.StatusOK, menu.Filter(query.Get("category"), query.Get("q")))
}

func (h *Handler) getZones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Checkout.DeliveryOptions())
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	view, err := h.cartView(r, session)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), h.session(w, r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	var req service.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.RestaurantID == "" || req.ItemID == "" {
		http.Error(w, "restaurant_id and item_id are required", http.StatusBadRequest)
		return
	}

	line, err := h.Carts.AddItem(r.Context(), session, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.cartView(r, session)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, addItemResponse{Line: line, Cart: view})
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Carts.SetQuantity(r.Context(), session, mux.Vars(r)["lineId"], req.Quantity); err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.cartView(r, session)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if err := h.Carts.RemoveItem(r.Context(), session, mux.Vars(r)["lineId"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.cartView(r, session)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	view, err := h.Checkout.Summary(r.Context(), h.session(w, r), r.URL.Query().Get("zone"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Checkout.Checkout(r.Context(), session, req.Zone)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !result.Readiness.Ready {
		writeJSON(w, http.StatusConflict, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) cartView(r *http.Request, session string) (cartView, error) {
	lines, err := h.Carts.Lines(r.Context(), session)
	if err != nil {
		return cartView{}, err
	}
	return cartView{
		Lines:      lines,
		TotalItems: cart.TotalItems(lines),
		Subtotal:   cart.Subtotal(lines),
	}, nil
}

// session returns the caller's browsing session, issuing a cookie for a
// first-time visitor.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
	})
	w.Header().Set(SessionHeader, id)
	return id
}

func statusFor(err error) int {
	var fetchErr *catalog.FetchError
	switch {
	case errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, delivery.ErrUnknownZone):
		return http.StatusNotFound
	case errors.Is(err, pricing.ErrUnknownVariant),
		errors.Is(err, pricing.ErrNoVariants),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, service.ErrMissingSession):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError || status == http.StatusBadGateway {
		h.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
