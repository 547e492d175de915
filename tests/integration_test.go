package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These run against a live shop-svc, e.g.
// SHOP_BASE_URL=http://localhost:8080 go test ./tests/...
func baseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("SHOP_BASE_URL")
	if url == "" {
		t.Skip("SHOP_BASE_URL not set")
	}
	return strings.TrimRight(url, "/")
}

type session struct {
	t      *testing.T
	base   string
	id     string
	client *http.Client
}

func newSession(t *testing.T) *session {
	return &session{t: t, base: baseURL(t), id: uuid.NewString(), client: &http.Client{Timeout: 10 * time.Second}}
}

func (s *session) do(method, path string, body interface{}, out interface{}) int {
	s.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&payload).Encode(body))
	}
	req, err := http.NewRequest(method, s.base+path, &payload)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", s.id)

	resp, err := s.client.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	if out != nil && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	s := newSession(t)

	var health map[string]string
	assert.Equal(t, http.StatusOK, s.do("GET", "/health", nil, &health))
	assert.Equal(t, "healthy", health["status"])
}

// TestBrowseAddAndCheckout walks the storefront from listing to chat handoff.
func TestBrowseAddAndCheckout(t *testing.T) {
	s := newSession(t)

	var listing struct {
		Restaurants []struct {
			ID string `json:"id"`
		} `json:"restaurants"`
		Fallback bool `json:"fallback"`
	}
	require.Equal(t, http.StatusOK, s.do("GET", "/api/restaurants", nil, &listing))
	require.NotEmpty(t, listing.Restaurants)
	if listing.Fallback {
		t.Skip("content store unreachable, demo listing has no menus")
	}

	restaurantID := listing.Restaurants[0].ID
	var menu struct {
		Items []struct {
			ID             string `json:"id"`
			DefaultVariant string `json:"default_variant"`
		} `json:"items"`
	}
	require.Equal(t, http.StatusOK, s.do("GET", "/api/restaurants/"+restaurantID+"/menu", nil, &menu))
	if len(menu.Items) == 0 {
		t.Skip("first restaurant has no menu items")
	}

	item := map[string]string{"restaurant_id": restaurantID, "item_id": menu.Items[0].ID}
	require.Equal(t, http.StatusCreated, s.do("POST", "/api/cart/items", item, nil))
	var cart struct {
		TotalItems int `json:"total_items"`
	}
	require.Equal(t, http.StatusCreated, s.do("POST", "/api/cart/items", item, &cart))
	assert.Equal(t, 2, cart.TotalItems)

	var zones struct {
		RequiresZone bool `json:"requires_zone"`
		Zones        []struct {
			ID string `json:"id"`
		} `json:"zones"`
	}
	require.Equal(t, http.StatusOK, s.do("GET", "/api/zones", nil, &zones))
	zone := ""
	if zones.RequiresZone {
		require.NotEmpty(t, zones.Zones)
		zone = zones.Zones[0].ID
	}

	var result struct {
		ChatURL string `json:"chat_url"`
		QRCode  string `json:"qr_code"`
	}
	require.Equal(t, http.StatusOK, s.do("POST", "/api/checkout", map[string]string{"zone": zone}, &result))
	assert.Contains(t, result.ChatURL, "?text=")
	assert.NotEmpty(t, result.QRCode)

	assert.Equal(t, http.StatusNoContent, s.do("DELETE", "/api/cart", nil, nil))
}

func TestEmptyCheckoutIsRefused(t *testing.T) {
	s := newSession(t)

	var result struct {
		Readiness struct {
			Reason string `json:"reason"`
		} `json:"readiness"`
	}
	assert.Equal(t, http.StatusConflict, s.do("POST", "/api/checkout", map[string]string{}, &result))
	assert.Equal(t, "empty_cart", result.Readiness.Reason)
}
