package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind of outbound event.
type Kind string

const (
	KindOrderCreated       Kind = "order-created"
	KindOrderCancelled     Kind = "order-cancelled"
	KindOrderStatusChanged Kind = "order-status-changed"
	KindOrderAssigned      Kind = "order-assigned"
	KindOrderModified      Kind = "order-modified"
	KindOutOfStock         Kind = "out-of-stock"
)

// Event is one fire-and-forget notification. Events are enqueued only
// after the authoritative write they describe has committed.
type Event struct {
	ID      string         `json:"id"`
	Kind    Kind           `json:"kind"`
	OrderID int            `json:"orderID,omitempty"`
	UserID  int            `json:"userID,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
	At      time.Time      `json:"at"`
}

func NewEvent(kind Kind, orderID, userID int, payload map[string]any) Event {
	return Event{
		ID:      uuid.New().String(),
		Kind:    kind,
		OrderID: orderID,
		UserID:  userID,
		Payload: payload,
		At:      time.Now().UTC(),
	}
}

// Emitter delivers events to the outside world.
type Emitter interface {
	Emit(ctx context.Context, ev Event) error
}
