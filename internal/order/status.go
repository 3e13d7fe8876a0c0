package order

import "errors"

var ErrIllegalTransition = errors.New("illegal order status transition")

// Status of an order in its lifecycle.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusReadyToPickup  Status = "READY_TO_PICKUP"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

// transitions is the full state machine. CANCELLED is reachable from
// every non-terminal state; DELIVERED and CANCELLED are terminal.
var transitions = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusReadyToPickup, StatusOutForDelivery, StatusCancelled},
	StatusReadyToPickup:  {StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// CanTransition reports whether the state machine permits from → to.
// Role- and assignment-specific guards live in the service on top of
// this table.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves the status.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}
