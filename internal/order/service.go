package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erickweyunga/foodie-collective/internal/menu"
)

// Validation errors: reported before any store access is attempted.
var (
	ErrEmptyName  = errors.New("name is required")
	ErrEmptyItems = errors.New("at least one item is required")
	ErrNoStorage  = errors.New("object storage not configured")
)

// Storage is where order exports land (R2 in production).
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Service owns the order lifecycle: the insert-vs-update reconciliation
// against the store, deletes, the bulk purge, and exports.
type Service struct {
	repo    Repository
	storage Storage
	pricing menu.PricingConfig
	loc     *time.Location

	// Now is the injected clock; tests pin it to simulate days.
	Now func() time.Time
}

func NewService(repo Repository, storage Storage, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:    repo,
		storage: storage,
		pricing: menu.DefaultPricing,
		loc:     loc,
		Now:     time.Now,
	}
}

func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) startOfToday() time.Time {
	return StartOfDay(s.Now(), s.loc)
}

// --------------------------------------------------
// Find today's order for a name
// --------------------------------------------------
// Returns nil when the person has not ordered today. Yesterday's rows
// stay in the store but never match.
func (s *Service) FindToday(ctx context.Context, name string) (*Order, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	orders, err := s.repo.Select(ctx, Filter{
		Name:  name,
		Since: s.startOfToday(),
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

// --------------------------------------------------
// Submit (insert vs update)
// --------------------------------------------------
// With an existing-order reference the submission updates that row in
// place, refreshing its timestamp; without one it inserts. A reference
// whose row has vanished falls back to a fresh insert, so a stale
// session never blocks ordering. Returns the stored order and whether a
// new row was created.
func (s *Service) Submit(ctx context.Context, name string, items []string, existingID string) (Order, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Order{}, false, ErrEmptyName
	}
	if len(items) == 0 {
		return Order{}, false, ErrEmptyItems
	}

	now := s.Now()

	if existingID != "" {
		// Only update a row that really is today's order for this name.
		// A reference left over from yesterday must not drag an old row
		// forward; a new calendar day always inserts.
		ok, err := s.isTodayOrder(ctx, name, existingID)
		if err != nil {
			return Order{}, false, err
		}
		if ok {
			o, err := s.repo.Update(ctx, existingID, items, now)
			if err == nil {
				return o, false, nil
			}
			if !errors.Is(err, ErrNotFound) {
				return Order{}, false, err
			}
		}
	}

	o, err := s.repo.Insert(ctx, Order{
		Name:      name,
		Items:     items,
		Timestamp: now,
	})
	if err != nil {
		return Order{}, false, err
	}
	return o, true, nil
}

func (s *Service) isTodayOrder(ctx context.Context, name, id string) (bool, error) {
	orders, err := s.repo.Select(ctx, Filter{Name: name, Since: s.startOfToday()})
	if err != nil {
		return false, err
	}
	for _, o := range orders {
		if o.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// --------------------------------------------------
// Today's orders
// --------------------------------------------------
func (s *Service) TodayOrders(ctx context.Context) ([]Order, error) {
	return s.repo.Select(ctx, Filter{Since: s.startOfToday()})
}

// --------------------------------------------------
// Delete one (idempotent)
// --------------------------------------------------
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		// Already gone, possibly deleted from another session.
		return nil
	}
	return err
}

// --------------------------------------------------
// Bulk delete by phrase
// --------------------------------------------------
// Deletes every order, any day, whose items contain phrase
// case-insensitively. Rows already deleted still count; a row that
// fails to delete is logged and skipped, and the returned count is how
// many actually went away. The caller refetches afterwards to
// resynchronize its view.
func (s *Service) DeleteByPhrase(ctx context.Context, phrase string) (int, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return 0, errors.New("phrase is required")
	}

	orders, err := s.repo.Select(ctx, Filter{})
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, o := range orders {
		if !o.ContainsPhrase(phrase) {
			continue
		}
		if err := s.repo.Delete(ctx, o.ID); err != nil && !errors.Is(err, ErrNotFound) {
			log.Printf("purge: failed to delete order %s: %v", o.ID, err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

// --------------------------------------------------
// Export today's orders to object storage
// --------------------------------------------------
// The durable version of the old copy-to-clipboard report.
func (s *Service) ExportToday(ctx context.Context) (string, error) {
	if s.storage == nil {
		return "", ErrNoStorage
	}

	orders, err := s.TodayOrders(ctx)
	if err != nil {
		return "", err
	}

	report := struct {
		Date     string  `json:"date"`
		Orders   []Order `json:"orders"`
		Revenue  int     `json:"revenue"`
		Currency string  `json:"currency"`
	}{
		Date:     s.Now().In(s.loc).Format("2006-01-02"),
		Orders:   orders,
		Revenue:  Revenue(orders, s.pricing),
		Currency: "TZS",
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/%s/%s.json", report.Date, uuid.New().String())
	return s.storage.Upload(ctx, key, bytes.NewReader(body), "application/json")
}

// Revenue totals item prices across orders plus one delivery fee per
// order (the fee is charged per order, not per item).
func Revenue(orders []Order, pricing menu.PricingConfig) int {
	total := 0
	for _, o := range orders {
		for _, item := range o.Items {
			total += pricing.Price(item)
		}
		total += menu.DeliveryFeePerOrder
	}
	return total
}
