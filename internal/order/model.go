package order

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Order is one person's daily selection. The store owns the persisted
// row; everything here is a parsed, validated copy.
type Order struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Items     []string  `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}

// ContainsPhrase reports whether any item label contains phrase,
// case-insensitively. Used by the bulk delete.
func (o Order) ContainsPhrase(phrase string) bool {
	phrase = strings.ToLower(phrase)
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item), phrase) {
			return true
		}
	}
	return false
}

// OnDay reports whether the order falls on the same calendar day as ref
// in the given location.
func (o Order) OnDay(ref time.Time, loc *time.Location) bool {
	y1, m1, d1 := o.Timestamp.In(loc).Date()
	y2, m2, d2 := ref.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfDay is local midnight for t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// rawRecord is the wire shape of a store row or feed payload. Records
// arriving from outside are never trusted past this boundary.
type rawRecord struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Items     json.RawMessage `json:"items"`
	Timestamp string          `json:"ts"`
}

// ParseRecord validates an untyped store payload into an Order.
func ParseRecord(data []byte) (Order, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return Order{}, err
	}
	if raw.ID == "" {
		return Order{}, errors.New("record missing id")
	}
	if raw.Name == "" {
		return Order{}, errors.New("record missing name")
	}

	var items []string
	if len(raw.Items) > 0 {
		if err := json.Unmarshal(raw.Items, &items); err != nil {
			return Order{}, errors.New("record has malformed items")
		}
	}
	if len(items) == 0 {
		return Order{}, errors.New("record has no items")
	}

	// RFC3339 parsing accepts the fractional seconds row_to_json emits.
	ts, err := time.Parse(time.RFC3339, raw.Timestamp)
	if err != nil {
		return Order{}, errors.New("record has malformed timestamp")
	}

	return Order{ID: raw.ID, Name: raw.Name, Items: items, Timestamp: ts}, nil
}
