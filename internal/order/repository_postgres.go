package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// notifyChannel is the LISTEN/NOTIFY channel the orders triggers write
// to (see internal/db schema init).
const notifyChannel = "orders_events"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// SELECT
// --------------------------------------------------
func (r *PostgresRepository) Select(ctx context.Context, f Filter) ([]Order, error) {
	query := `
		SELECT id, name, items, ts
		FROM orders
		WHERE ($1 = '' OR name = $1)
		  AND ($2::timestamptz IS NULL OR ts >= $2)
		ORDER BY ts DESC
	`
	args := []interface{}{f.Name, nullableTime(f.Since)}
	if f.Limit > 0 {
		query += " LIMIT $3"
		args = append(args, f.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// --------------------------------------------------
// INSERT
// --------------------------------------------------
func (r *PostgresRepository) Insert(ctx context.Context, o Order) (Order, error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	items, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (id, name, items, ts)
		VALUES ($1, $2, $3, $4)
	`, o.ID, o.Name, items, o.Timestamp)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

// --------------------------------------------------
// UPDATE (same-day resubmission)
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, id string, items []string, ts time.Time) (Order, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return Order{}, err
	}

	row := r.db.QueryRow(ctx, `
		UPDATE orders
		SET items = $1, ts = $2
		WHERE id = $3
		RETURNING id, name, items, ts
	`, payload, ts, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return o, nil
}

// --------------------------------------------------
// DELETE
// --------------------------------------------------
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// LIVE FEED (LISTEN/NOTIFY)
// --------------------------------------------------
func (r *PostgresRepository) Subscribe(ctx context.Context) (<-chan Event, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, err
	}

	ch := make(chan Event, 16)

	go func() {
		defer close(ch)
		defer conn.Release()

		for {
			note, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("orders feed: notification wait failed: %v", err)
				}
				return
			}

			ev, err := parseNotification(note.Payload)
			if err != nil {
				log.Printf("orders feed: dropping malformed payload: %v", err)
				continue
			}

			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// parseNotification decodes a trigger payload. Inserted payloads carry
// the full row; deleted payloads only the id.
func parseNotification(payload string) (Event, error) {
	var head struct {
		Type string          `json:"type"`
		ID   string          `json:"id"`
		Rec  json.RawMessage `json:"record"`
	}
	if err := json.Unmarshal([]byte(payload), &head); err != nil {
		return Event{}, err
	}

	switch EventType(strings.ToUpper(head.Type)) {
	case EventInserted:
		o, err := ParseRecord(head.Rec)
		if err != nil {
			return Event{}, err
		}
		return Event{Type: EventInserted, Order: o, ID: o.ID}, nil
	case EventDeleted:
		if head.ID == "" {
			return Event{}, errors.New("delete payload missing id")
		}
		return Event{Type: EventDeleted, ID: head.ID}, nil
	}
	return Event{}, fmt.Errorf("unknown event type %q", head.Type)
}

// --------------------------------------------------
// helpers
// --------------------------------------------------
func scanOrder(row pgx.Row) (Order, error) {
	var (
		o     Order
		items []byte
	)
	if err := row.Scan(&o.ID, &o.Name, &items, &o.Timestamp); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return Order{}, fmt.Errorf("malformed items column: %w", err)
	}
	return o, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
