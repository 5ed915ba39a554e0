package order

import (
	"sort"
	"sync"
	"time"

	"github.com/erickweyunga/foodie-collective/internal/menu"
)

// Board is the live "today" view: the visible order set, per-item
// counts, and revenue. It is fed by one reducer (Apply) regardless of
// whether an order arrived from the initial fetch or the live feed, so
// both paths stay consistent. Safe for concurrent use; the feed pump
// and HTTP handlers share it.
type Board struct {
	mu      sync.Mutex
	pricing menu.PricingConfig
	loc     *time.Location
	orders  map[string]Order
	counts  map[string]int
}

// BoardView is a point-in-time snapshot for rendering.
type BoardView struct {
	Orders  []Order        `json:"orders"`
	Counts  map[string]int `json:"counts"`
	Revenue int            `json:"revenue"`
}

func NewBoard(pricing menu.PricingConfig, loc *time.Location) *Board {
	if loc == nil {
		loc = time.Local
	}
	return &Board{
		pricing: pricing,
		loc:     loc,
		orders:  make(map[string]Order),
		counts:  make(map[string]int),
	}
}

// Load replaces the board with a fresh fetch, dropping anything not
// dated today.
func (b *Board) Load(orders []Order, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.orders = make(map[string]Order)
	for _, o := range orders {
		if o.OnDay(now, b.loc) {
			b.orders[o.ID] = o
		}
	}
	b.recount()
}

// Apply folds one feed event into the view and reports whether it
// changed anything. Inserts for other days are ignored; a delete for an
// id already gone is a no-op, which makes the local-delete vs
// feed-delete race harmless. Counts are incremented on insert and fully
// recomputed on delete to rule out negative-count drift.
func (b *Board) Apply(ev Event, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch ev.Type {
	case EventInserted:
		if !ev.Order.OnDay(now, b.loc) {
			return false
		}
		if _, seen := b.orders[ev.Order.ID]; seen {
			// Resubmission or duplicate notification: recount.
			b.orders[ev.Order.ID] = ev.Order
			b.recount()
			return true
		}
		b.orders[ev.Order.ID] = ev.Order
		for _, item := range ev.Order.Items {
			b.counts[item]++
		}
		return true

	case EventDeleted:
		if _, seen := b.orders[ev.ID]; !seen {
			return false
		}
		delete(b.orders, ev.ID)
		b.recount()
		return true
	}
	return false
}

// Snapshot returns the current view, orders newest first.
func (b *Board) Snapshot() BoardView {
	b.mu.Lock()
	defer b.mu.Unlock()

	orders := make([]Order, 0, len(b.orders))
	for _, o := range b.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].Timestamp.After(orders[j].Timestamp)
	})

	counts := make(map[string]int, len(b.counts))
	for k, v := range b.counts {
		counts[k] = v
	}

	return BoardView{
		Orders:  orders,
		Counts:  counts,
		Revenue: Revenue(orders, b.pricing),
	}
}

// recount rebuilds counts from the visible set. Called with the lock
// held.
func (b *Board) recount() {
	b.counts = make(map[string]int)
	for _, o := range b.orders {
		for _, item := range o.Items {
			b.counts[item]++
		}
	}
}
