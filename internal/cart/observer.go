package cart

import "github.com/fjod/maison/internal/domain"

type ChangeKind string

const (
	ItemAdded       ChangeKind = "item_added"
	QuantityUpdated ChangeKind = "quantity_updated"
	ItemRemoved     ChangeKind = "item_removed"
	CheckedOut      ChangeKind = "checked_out"
)

// Change is delivered to observers after a mutation has been applied.
type Change struct {
	Kind      ChangeKind
	ProductID string // empty for CheckedOut
	Snapshot  domain.Snapshot
	Receipt   *domain.Receipt // set only for CheckedOut
}

// Observer is called synchronously, outside the store lock, so it may read the store.
// It must not mutate the store it observes; mutations wait for observers to return.
type Observer func(Change)

type observerEntry struct {
	id int
	fn Observer
}

// Subscribe registers fn for every future change and returns a func that removes it.
func (s *Store) Subscribe(fn Observer) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		for i, e := range s.observers {
			if e.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(c Change) {
	s.obsMu.Lock()
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	s.obsMu.Unlock()

	for _, e := range observers {
		e.fn(c)
	}
}
