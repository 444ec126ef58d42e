package notify

import (
	"context"
	"errors"
	"time"

	"github.com/fjod/maison/internal/domain"
	"github.com/google/uuid"
)

type EventType string

const (
	EventItemAdded       EventType = "cart.item_added"
	EventQuantityUpdated EventType = "cart.quantity_updated"
	EventItemRemoved     EventType = "cart.item_removed"
	EventOrderConfirmed  EventType = "cart.order_confirmed"
)

// Event is a cart signal for the view layer.
type Event struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	SessionID  string          `json:"session_id"`
	ProductID  string          `json:"product_id,omitempty"`
	Snapshot   domain.Snapshot `json:"snapshot"`
	Receipt    *domain.Receipt `json:"receipt,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewEvent(typ EventType, sessionID string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		SessionID:  sessionID,
		OccurredAt: time.Now().UTC(),
	}
}

type Notifier interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Multi fans an event out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, n := range m {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
