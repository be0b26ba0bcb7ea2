package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
  id        BIGSERIAL PRIMARY KEY,
  name      TEXT NOT NULL,
  name_key  TEXT NOT NULL,
  unit      TEXT NOT NULL,
  category  TEXT NOT NULL,
  brand     TEXT NOT NULL,
  stock     INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  status    TEXT NOT NULL,
  image     TEXT NOT NULL DEFAULT '',
  CONSTRAINT products_status_derived
    CHECK ((stock > 0 AND status = 'In Stock') OR (stock <= 0 AND status = 'Out of Stock'))
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name_key ON products (name_key);

CREATE TABLE IF NOT EXISTS inventory_logs (
  id         BIGSERIAL PRIMARY KEY,
  product_id BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
  old_stock  INTEGER NOT NULL,
  new_stock  INTEGER NOT NULL,
  changed_by TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_inventory_logs_product ON inventory_logs (product_id, created_at DESC);
`

// EnsureSchema crea tablas e índices si no existen (idempotente).
// Sin argumentos pgx usa el protocolo simple, que admite varias sentencias.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema postgres: %w", err)
	}
	return nil
}
