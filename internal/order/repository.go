package order

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound marks a delete or update whose target row is already
// gone. Callers treat it as success.
var ErrNotFound = errors.New("order not found")

// EventType tags a live feed event.
type EventType string

const (
	EventInserted EventType = "INSERT"
	EventDeleted  EventType = "DELETE"
)

// Event is one change to the orders table, pushed to subscribers.
// Inserted events carry the full record; deleted events only the id.
type Event struct {
	Type  EventType `json:"type"`
	Order Order     `json:"record,omitempty"`
	ID    string    `json:"id"`
}

// Filter narrows a Select. Zero values mean "no constraint"; results
// always come back newest first.
type Filter struct {
	Name  string
	Since time.Time
	Limit int
}

// Repository is the data-access contract for orders. The service
// depends ONLY on this interface; Postgres and the in-memory store both
// implement it, including the live feed.
type Repository interface {
	Select(ctx context.Context, f Filter) ([]Order, error)
	Insert(ctx context.Context, o Order) (Order, error)
	Update(ctx context.Context, id string, items []string, ts time.Time) (Order, error)
	Delete(ctx context.Context, id string) error

	// Subscribe streams insert/delete events until ctx is cancelled.
	// The returned channel is closed on teardown.
	Subscribe(ctx context.Context) (<-chan Event, error)
}
