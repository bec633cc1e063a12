package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		id          SERIAL PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		kind        TEXT NOT NULL,
		price       NUMERIC(12,2) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		available   BOOLEAN NOT NULL DEFAULT TRUE,
		cuisine     TEXT,
		spice       TEXT,
		vegetarian  BOOLEAN,
		temperature TEXT,
		volume_ml   INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		age           INTEGER NOT NULL,
		gender        TEXT NOT NULL,
		phone         TEXT NOT NULL DEFAULT '',
		email         TEXT NOT NULL DEFAULT '',
		registered_at TIMESTAMPTZ NOT NULL,
		total_orders  INTEGER NOT NULL DEFAULT 0,
		total_spent   NUMERIC(12,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id               UUID PRIMARY KEY,
		customer_name    TEXT,
		status           TEXT NOT NULL,
		discount_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
		subtotal         NUMERIC(12,2) NOT NULL,
		discount         NUMERIC(12,2) NOT NULL,
		total            NUMERIC(12,2) NOT NULL,
		instructions     TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL,
		confirmed_at     TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS order_lines (
		id           SERIAL PRIMARY KEY,
		order_id     UUID NOT NULL REFERENCES orders(id),
		item_name    TEXT NOT NULL,
		quantity     INTEGER NOT NULL,
		unit_price   NUMERIC(12,2) NOT NULL,
		line_total   NUMERIC(12,2) NOT NULL,
		instructions TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables on first run.
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
