package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository keeps orders in a map. It backs tests and the
// STORE=memory mode, and fans out the same events the Postgres store
// delivers through LISTEN/NOTIFY.
type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[string]Order
	subs   map[chan Event]struct{}
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[string]Order),
		subs:   make(map[chan Event]struct{}),
	}
}

func (r *InMemoryRepository) Select(ctx context.Context, f Filter) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Order{}
	for _, o := range r.orders {
		if f.Name != "" && o.Name != f.Name {
			continue
		}
		if !f.Since.IsZero() && o.Timestamp.Before(f.Since) {
			continue
		}
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Insert(ctx context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	r.orders[o.ID] = o
	r.broadcast(Event{Type: EventInserted, Order: o, ID: o.ID})
	return o, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, items []string, ts time.Time) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	o.Items = items
	o.Timestamp = ts
	r.orders[id] = o
	// Announced as an insert of the new row; subscribers treat a known
	// id as a replacement.
	r.broadcast(Event{Type: EventInserted, Order: o, ID: o.ID})
	return o, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	r.broadcast(Event{Type: EventDeleted, ID: id})
	return nil
}

func (r *InMemoryRepository) Subscribe(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 16)

	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		delete(r.subs, ch)
		r.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

// broadcast is called with the lock held. A subscriber that cannot keep
// up drops events rather than blocking writers.
func (r *InMemoryRepository) broadcast(ev Event) {
	for ch := range r.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
