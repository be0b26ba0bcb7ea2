package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

type inventoryLogRow struct {
	ID        int64     `db:"id"`
	ProductID int64     `db:"product_id"`
	OldStock  int       `db:"old_stock"`
	NewStock  int       `db:"new_stock"`
	ChangedBy string    `db:"changed_by"`
	Timestamp timestamp `db:"created_at"`
}

// InventoryLogRepo historial de stock sobre SQLite (usable con db o tx).
type InventoryLogRepo struct {
	q sqlx.ExtContext
}

// NewInventoryLogRepository construye el adaptador del historial. Pasar db o tx.
func NewInventoryLogRepository(q sqlx.ExtContext) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Create inserta la entrada; id y timestamp vuelven de la BD.
func (r *InventoryLogRepo) Create(ctx context.Context, e *entity.InventoryLogEntry) error {
	var ts timestamp
	err := r.q.QueryRowxContext(ctx, `
		INSERT INTO inventory_logs (product_id, old_stock, new_stock, changed_by)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at`,
		e.ProductID, e.OldStock, e.NewStock, e.ChangedBy,
	).Scan(&e.ID, &ts)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	e.Timestamp = ts.Time
	return nil
}

// ListByProduct historial del producto, más reciente primero (id desempata el mismo instante).
func (r *InventoryLogRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.InventoryLogEntry, error) {
	var rows []inventoryLogRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT id, product_id, old_stock, new_stock, changed_by, created_at
		FROM inventory_logs
		WHERE product_id = ?
		ORDER BY created_at DESC, id DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	out := make([]*entity.InventoryLogEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.InventoryLogEntry{
			ID:        row.ID,
			ProductID: row.ProductID,
			OldStock:  row.OldStock,
			NewStock:  row.NewStock,
			ChangedBy: row.ChangedBy,
			Timestamp: row.Timestamp.Time,
		})
	}
	return out, nil
}

// DeleteByProduct elimina todo el historial del producto.
func (r *InventoryLogRepo) DeleteByProduct(ctx context.Context, productID int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM inventory_logs WHERE product_id = ?`, productID); err != nil {
		return fmt.Errorf("delete inventory logs: %w", err)
	}
	return nil
}
