package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/pricing"

	"github.com/shopspring/decimal"
)

var (
	ErrLineNotFound    = errors.New("cart line not found")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)

// Persister is the durable copy of one cart. Save always receives the full
// line list.
type Persister interface {
	Load(ctx context.Context) ([]domain.CartLine, error)
	Save(ctx context.Context, lines []domain.CartLine) error
}

type Listener func(lines []domain.CartLine)

// Store owns the lines of one cart. Mutations are serialised; listeners run
// synchronously after each committed mutation, outside the state lock, and
// see snapshots in commit order. A listener must not mutate the store it
// listens to.
type Store struct {
	mu        sync.Mutex
	lines     []domain.CartLine
	persister Persister

	// notifyMu is taken before mu is released so deliveries cannot overtake
	// each other.
	notifyMu sync.Mutex

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

func NewStore(ctx context.Context, persister Persister) (*Store, error) {
	lines, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &Store{
		lines:     lines,
		persister: persister,
		listeners: make(map[int]Listener),
	}, nil
}

// AddItem merges on the composite line id: an existing line gains one unit,
// otherwise a new line with quantity 1 is appended.
func (s *Store) AddItem(ctx context.Context, item domain.CatalogItem, variant pricing.Key) (domain.CartLine, error) {
	selection, err := pricing.Resolve(item, variant)
	if err != nil {
		return domain.CartLine{}, err
	}
	lineID := pricing.LineID(item.ID, selection.Key)

	s.mu.Lock()
	next := s.copyLines()
	index := indexOf(next, lineID)
	if index >= 0 {
		next[index].Quantity++
	} else {
		next = append(next, domain.CartLine{
			ID:             lineID,
			ItemID:         item.ID,
			Name:           pricing.DisplayName(item.Name, selection),
			Variant:        string(selection.Key),
			Price:          selection.Price,
			Quantity:       1,
			RestaurantID:   item.RestaurantID,
			RestaurantName: item.RestaurantName,
			Image:          item.Image,
			OriginalPrice:  item.OriginalPrice,
		})
		index = len(next) - 1
	}
	line := next[index]
	if err := s.publish(ctx, next); err != nil {
		return domain.CartLine{}, err
	}
	return line, nil
}

// SetQuantity replaces a line's quantity. Zero removes the line.
func (s *Store) SetQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, lineID)
	}

	s.mu.Lock()
	next := s.copyLines()
	index := indexOf(next, lineID)
	if index < 0 {
		s.mu.Unlock()
		return ErrLineNotFound
	}
	next[index].Quantity = quantity
	return s.publish(ctx, next)
}

func (s *Store) RemoveItem(ctx context.Context, lineID string) error {
	s.mu.Lock()
	index := indexOf(s.lines, lineID)
	if index < 0 {
		s.mu.Unlock()
		return ErrLineNotFound
	}
	next := make([]domain.CartLine, 0, len(s.lines)-1)
	next = append(next, s.lines[:index]...)
	next = append(next, s.lines[index+1:]...)
	return s.publish(ctx, next)
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	return s.publish(ctx, []domain.CartLine{})
}

func (s *Store) Snapshot() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLines()
}

func (s *Store) TotalItems() int {
	return TotalItems(s.Snapshot())
}

func (s *Store) Subtotal() decimal.Decimal {
	return Subtotal(s.Snapshot())
}

// Subscribe registers fn for change notifications. The returned func removes
// it and is safe to call more than once.
func (s *Store) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// commit persists next and, on success, makes it the current state.
// Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []domain.CartLine) ([]domain.CartLine, error) {
	if err := s.persister.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}
	s.lines = next
	return s.copyLines(), nil
}

// publish commits next and delivers the new snapshot to listeners. Callers
// hold s.mu; publish releases it.
func (s *Store) publish(ctx context.Context, next []domain.CartLine) error {
	snapshot, err := s.commit(ctx, next)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.mu.Unlock()
	s.notify(snapshot)
	return nil
}

func (s *Store) notify(snapshot []domain.CartLine) {
	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (s *Store) copyLines() []domain.CartLine {
	lines := make([]domain.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

func indexOf(lines []domain.CartLine, lineID string) int {
	for i, line := range lines {
		if line.ID == lineID {
			return i
		}
	}
	return -1
}

func Subtotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount())
	}
	return total
}

func TotalItems(lines []domain.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}
