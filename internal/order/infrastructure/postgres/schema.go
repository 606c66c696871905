package postgres

import "context"

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	phone      TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	address    TEXT NOT NULL,
	reference  TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id                BIGSERIAL PRIMARY KEY,
	customer_phone    TEXT NOT NULL REFERENCES customers(phone),
	payload           JSONB NOT NULL,
	confirmation_sent BOOLEAN NOT NULL DEFAULT FALSE,
	delivery_sent     BOOLEAN NOT NULL DEFAULT FALSE,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS orders_customer_created_idx
	ON orders (customer_phone, created_at DESC);
`

// Migrate applies the idempotent schema on startup.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}
