package cart

import (
	"sync"
	"time"

	"github.com/fjod/maison/internal/domain"
	"github.com/fjod/maison/internal/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultSize is used when a product is added without a size.
	DefaultSize = "M"

	ConfirmationMessage = "Thank you for your order! This is a demo checkout."
)

// Store owns the line items of one shopping cart.
// Every operation is total: unknown ids and non-positive quantities are absorbed, never rejected.
type Store struct {
	// pubMu serialises mutations together with their notification so observers see
	// changes in the order they were applied. Taken before mu.
	pubMu sync.Mutex
	mu    sync.RWMutex
	items []domain.LineItem // insertion order, at most one line per product id

	defaultSize string
	policy      pricing.Policy
	now         func() time.Time
	newOrderID  func() string

	obsMu     sync.Mutex
	observers []observerEntry
	nextObsID int
}

type Option func(*Store)

func WithDefaultSize(size string) Option {
	return func(s *Store) {
		if size != "" {
			s.defaultSize = size
		}
	}
}

func WithPricing(p pricing.Policy) Option {
	return func(s *Store) {
		s.policy = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty cart.
func NewStore(opts ...Option) *Store {
	s := &Store{
		defaultSize: DefaultSize,
		policy:      pricing.DefaultPolicy(),
		now:         time.Now,
		newOrderID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem puts one unit of product into the cart.
// A product already in the cart gets its quantity incremented; the size, name and price
// captured on the first add are kept. A new product is appended with quantity 1 and the
// given size, or the store default when none is given.
func (s *Store) AddItem(product domain.Product, size ...string) domain.Snapshot {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	if product.ID == "" {
		return s.Snapshot()
	}

	s.mu.Lock()
	if i := s.indexLocked(product.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, domain.LineItem{
			Product:  product,
			Quantity: 1,
			Size:     s.pickSize(size),
		})
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(Change{Kind: ItemAdded, ProductID: product.ID, Snapshot: snap})
	return snap
}

// UpdateQuantity sets the absolute quantity of a line. A quantity of zero or less removes
// the line. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) domain.Snapshot {
	if quantity <= 0 {
		return s.RemoveItem(id)
	}

	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 || s.items[i].Quantity == quantity {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.items[i].Quantity = quantity
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(Change{Kind: QuantityUpdated, ProductID: id, Snapshot: snap})
	return snap
}

// RemoveItem drops the line for id if present.
func (s *Store) RemoveItem(id string) domain.Snapshot {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(Change{Kind: ItemRemoved, ProductID: id, Snapshot: snap})
	return snap
}

// Checkout empties the cart and returns a receipt of what was in it.
// It always succeeds; on an already empty cart it changes nothing and notifies no one.
func (s *Store) Checkout() (domain.Snapshot, domain.Receipt) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	ordered := s.items
	s.items = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	receipt := domain.Receipt{
		Items:       ordered,
		Message:     ConfirmationMessage,
		ConfirmedAt: s.now(),
	}
	if len(ordered) == 0 {
		receipt.Items = []domain.LineItem{}
		return snap, receipt
	}

	totals := s.policy.Summarize(ordered)
	receipt.OrderID = s.newOrderID()
	receipt.ItemCount = totals.ItemCount
	receipt.Subtotal = totals.Subtotal
	receipt.Shipping = totals.Shipping
	receipt.Total = totals.Total

	s.notify(Change{Kind: CheckedOut, Snapshot: snap, Receipt: &receipt})
	return snap, receipt
}

// Snapshot returns a copy of the current lines together with the derived totals.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *Store) TotalItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pricing.ItemCount(s.items)
}

func (s *Store) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pricing.Subtotal(s.items)
}

func (s *Store) Shipping() decimal.Decimal {
	return s.policy.Shipping(s.Subtotal())
}

func (s *Store) Total() decimal.Decimal {
	return s.policy.Total(s.Subtotal())
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) pickSize(size []string) string {
	for _, sz := range size {
		if sz != "" {
			return sz
		}
	}
	return s.defaultSize
}

func (s *Store) copyLocked() []domain.LineItem {
	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) snapshotLocked() domain.Snapshot {
	items := s.copyLocked()
	totals := s.policy.Summarize(items)
	return domain.Snapshot{
		Items:     items,
		ItemCount: totals.ItemCount,
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Total:     totals.Total,
	}
}
