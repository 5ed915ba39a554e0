package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates the orders table and the NOTIFY triggers that
// drive the live feed.
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// ORDERS
	// -------------------------------
	orderTableSQL := `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			items JSONB NOT NULL,
			ts TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_orders_name_ts ON orders (name, ts DESC);
		CREATE INDEX IF NOT EXISTS idx_orders_ts ON orders (ts DESC);
	`
	if _, err := db.Exec(ctx, orderTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// LIVE FEED TRIGGERS
	// -------------------------------
	// Inserts and updates carry the whole row so subscribers need no
	// refetch; deletes carry only the id. A same-day resubmission is
	// announced as an INSERT of the new row: subscribers fold it in as
	// a replacement, keeping the event set closed at insert/delete.
	notifySQL := `
		CREATE OR REPLACE FUNCTION notify_orders_change() RETURNS trigger AS $$
		BEGIN
			IF TG_OP = 'INSERT' OR TG_OP = 'UPDATE' THEN
				PERFORM pg_notify(
					'orders_events',
					json_build_object('type', 'INSERT', 'record', row_to_json(NEW))::text
				);
				RETURN NEW;
			ELSIF TG_OP = 'DELETE' THEN
				PERFORM pg_notify(
					'orders_events',
					json_build_object('type', 'DELETE', 'id', OLD.id)::text
				);
				RETURN OLD;
			END IF;
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql;

		DROP TRIGGER IF EXISTS orders_notify_insert ON orders;
		CREATE TRIGGER orders_notify_insert
			AFTER INSERT ON orders
			FOR EACH ROW EXECUTE FUNCTION notify_orders_change();

		DROP TRIGGER IF EXISTS orders_notify_update ON orders;
		CREATE TRIGGER orders_notify_update
			AFTER UPDATE ON orders
			FOR EACH ROW EXECUTE FUNCTION notify_orders_change();

		DROP TRIGGER IF EXISTS orders_notify_delete ON orders;
		CREATE TRIGGER orders_notify_delete
			AFTER DELETE ON orders
			FOR EACH ROW EXECUTE FUNCTION notify_orders_change();
	`
	if _, err := db.Exec(ctx, notifySQL); err != nil {
		return err
	}

	log.Println("✅ Schema ready")
	return nil
}
