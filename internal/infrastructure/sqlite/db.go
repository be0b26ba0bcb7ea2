package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // driver SQLite puro Go
)

// Open abre (o crea) la base SQLite en path y asegura el esquema.
// Se limita a una conexión: SQLite serializa las escrituras y así cada transacción
// ve el estado confirmado por la anterior (también ":memory:" comparte la misma BD).
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// dsn agrega los pragmas por conexión y el bloqueo inmediato de transacciones.
func dsn(path string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products(
  id        INTEGER PRIMARY KEY AUTOINCREMENT,
  name      TEXT NOT NULL,
  name_key  TEXT NOT NULL,
  unit      TEXT NOT NULL,
  category  TEXT NOT NULL,
  brand     TEXT NOT NULL,
  stock     INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  status    TEXT NOT NULL,
  image     TEXT NOT NULL DEFAULT '',
  CHECK ((stock > 0 AND status = 'In Stock') OR (stock <= 0 AND status = 'Out of Stock'))
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name_key ON products(name_key);

CREATE TABLE IF NOT EXISTS inventory_logs(
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  old_stock  INTEGER NOT NULL,
  new_stock  INTEGER NOT NULL,
  changed_by TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
);
CREATE INDEX IF NOT EXISTS idx_inventory_logs_product ON inventory_logs(product_id, created_at);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema sqlite: %w", err)
	}
	return nil
}
