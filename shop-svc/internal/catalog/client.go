package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"foodwala-storefront/shop-svc/internal/domain"
)

const (
	restaurantContentType = "restaurant"
	menuLinkContentType   = "restaurantMenuItem"
	houseMenuContentType  = "foodwalaMenu"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL      string
	SpaceID      string
	Environment  string
	AccessToken  string
	DefaultPhone string
	HouseName    string
}

// FetchError reports a failed catalog read. The client never substitutes
// data on failure; that decision belongs to the caller.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Client struct {
	config Config
	client HTTPClient
}

func NewClient(config Config, client HTTPClient) *Client {
	if config.Environment == "" {
		config.Environment = "master"
	}
	return &Client{config: config, client: client}
}

func (c *Client) FetchRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	query := url.Values{}
	query.Set("content_type", restaurantContentType)
	query.Set("order", "-fields.featured,fields.name")

	var resp entriesResponse
	if err := c.get(ctx, "restaurants", query, &resp); err != nil {
		return nil, err
	}

	assets := resp.assetURLs()
	restaurants := make([]domain.Restaurant, 0, len(resp.Items))
	for _, item := range resp.Items {
		restaurants = append(restaurants, normalizeRestaurant(item, assets, c.config.DefaultPhone))
	}
	return restaurants, nil
}

// FetchMenu returns the available items of one restaurant. Menu entries are
// links to shared master items, resolved through the included entries.
func (c *Client) FetchMenu(ctx context.Context, restaurant domain.Restaurant) ([]domain.CatalogItem, error) {
	query := url.Values{}
	query.Set("content_type", menuLinkContentType)
	query.Set("fields.restaurant.sys.id", restaurant.ID)
	query.Set("include", "2")

	var resp entriesResponse
	if err := c.get(ctx, "menu", query, &resp); err != nil {
		return nil, err
	}

	assets := resp.assetURLs()
	masters := resp.includedEntries()
	items := make([]domain.CatalogItem, 0, len(resp.Items))
	for _, link := range resp.Items {
		master := masters[link.Fields.linkID("masterItem")]
		item := normalizeMenuLink(link, master, assets)
		if !item.IsAvailable {
			continue
		}
		item.RestaurantID = restaurant.ID
		item.RestaurantName = restaurant.Name
		items = append(items, item)
	}
	return items, nil
}

// FetchHouseMenu returns the storefront's own menu, stored as standalone
// entries rather than restaurant links.
func (c *Client) FetchHouseMenu(ctx context.Context) ([]domain.CatalogItem, error) {
	query := url.Values{}
	query.Set("content_type", houseMenuContentType)
	query.Set("include", "1")

	var resp entriesResponse
	if err := c.get(ctx, "house menu", query, &resp); err != nil {
		return nil, err
	}

	assets := resp.assetURLs()
	items := make([]domain.CatalogItem, 0, len(resp.Items))
	for _, entry := range resp.Items {
		item := normalizeMenuLink(entry, entry, assets)
		if !item.IsAvailable {
			continue
		}
		item.RestaurantName = c.config.HouseName
		items = append(items, item)
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, op string, query url.Values, out interface{}) error {
	query.Set("access_token", c.config.AccessToken)
	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		c.config.BaseURL, url.PathEscape(c.config.SpaceID), url.PathEscape(c.config.Environment), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
