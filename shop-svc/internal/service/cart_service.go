package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"foodwala-storefront/shop-svc/internal/cart"
	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/pricing"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

const (
	DefaultSessionLimit = 10000
	DefaultIdleTimeout  = 30 * time.Minute
)

var ErrMissingSession = errors.New("missing session id")

type AddItemRequest struct {
	RestaurantID string `json:"restaurant_id"`
	ItemID       string `json:"item_id"`
	Variant      string `json:"variant"`
}

// ItemFinder looks up the catalog entry a cart line is created from.
type ItemFinder interface {
	Item(ctx context.Context, restaurantID, itemID string) (domain.CatalogItem, error)
}

// CartService keeps one cart store per browsing session. A store is loaded
// from the repository the first time its session is seen and dropped once the
// session has been idle for the idle timeout or pushed out by newer sessions.
// A dropped session reloads from the repository on its next request.
type CartService struct {
	repository CartRepository
	items      ItemFinder
	logger     *zap.Logger
	idle       time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions *lru.Cache
}

type cartSession struct {
	store    *cart.Store
	lastUsed time.Time
}

type CartOption func(*cartOptions)

type cartOptions struct {
	limit int
	idle  time.Duration
	now   func() time.Time
}

// WithSessionLimit caps the number of carts held in memory.
func WithSessionLimit(limit int) CartOption {
	return func(o *cartOptions) {
		if limit > 0 {
			o.limit = limit
		}
	}
}

// WithIdleTimeout sets how long an untouched cart stays in memory. Zero keeps
// carts until the session limit pushes them out.
func WithIdleTimeout(idle time.Duration) CartOption {
	return func(o *cartOptions) {
		o.idle = idle
	}
}

func WithClock(now func() time.Time) CartOption {
	return func(o *cartOptions) {
		o.now = now
	}
}

func NewCartService(repository CartRepository, items ItemFinder, logger *zap.Logger, opts ...CartOption) *CartService {
	options := cartOptions{limit: DefaultSessionLimit, idle: DefaultIdleTimeout, now: time.Now}
	for _, opt := range opts {
		opt(&options)
	}

	logger = logger.With(zap.String("component", "cart"))
	sessions, err := lru.NewWithEvict(options.limit, func(key, _ interface{}) {
		logger.Debug("cart session evicted", zap.Any("session", key))
	})
	if err != nil {
		// Only a non-positive size fails, and the options never allow one.
		panic(err)
	}

	return &CartService{
		repository: repository,
		items:      items,
		logger:     logger,
		idle:       options.idle,
		now:        options.now,
		sessions:   sessions,
	}
}

type sessionPersister struct {
	repository CartRepository
	sessionID  string
}

func (p sessionPersister) Load(ctx context.Context) ([]domain.CartLine, error) {
	return p.repository.LoadCart(ctx, p.sessionID)
}

func (p sessionPersister) Save(ctx context.Context, lines []domain.CartLine) error {
	return p.repository.SaveCart(ctx, p.sessionID, lines)
}

func (s *CartService) Store(ctx context.Context, sessionID string) (*cart.Store, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictIdle(now)
	if value, ok := s.sessions.Get(sessionID); ok {
		session := value.(*cartSession)
		session.lastUsed = now
		return session.store, nil
	}

	store, err := cart.NewStore(ctx, sessionPersister{repository: s.repository, sessionID: sessionID})
	if err != nil {
		return nil, err
	}
	logger := s.logger.With(zap.String("session", sessionID))
	store.Subscribe(func(lines []domain.CartLine) {
		logger.Debug("cart changed",
			zap.Int("lines", len(lines)),
			zap.Int("items", cart.TotalItems(lines)),
			zap.String("subtotal", cart.Subtotal(lines).String()))
	})
	s.sessions.Add(sessionID, &cartSession{store: store, lastUsed: now})
	return store, nil
}

// Sessions reports how many carts are held in memory.
func (s *CartService) Sessions() int {
	return s.sessions.Len()
}

// evictIdle drops sessions untouched for longer than the idle timeout. The
// cache is ordered by use, so the walk stops at the first fresh session.
// Callers hold s.mu.
func (s *CartService) evictIdle(now time.Time) {
	if s.idle <= 0 {
		return
	}
	for {
		key, value, ok := s.sessions.GetOldest()
		if !ok || now.Sub(value.(*cartSession).lastUsed) < s.idle {
			return
		}
		s.sessions.Remove(key)
	}
}

func (s *CartService) Lines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return store.Snapshot(), nil
}

func (s *CartService) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (domain.CartLine, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.CartLine{}, err
	}
	item, err := s.items.Item(ctx, req.RestaurantID, req.ItemID)
	if err != nil {
		return domain.CartLine{}, err
	}
	return store.AddItem(ctx, item, pricing.Key(req.Variant))
}

func (s *CartService) SetQuantity(ctx context.Context, sessionID, lineID string, quantity int) error {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return err
	}
	return store.SetQuantity(ctx, lineID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID, lineID string) error {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return err
	}
	return store.RemoveItem(ctx, lineID)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return err
	}
	return store.Clear(ctx)
}
