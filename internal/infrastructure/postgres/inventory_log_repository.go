package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo historial de stock sobre PostgreSQL (usable con pool o tx).
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador del historial. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Create inserta la entrada; id y created_at vuelven de la BD.
func (r *InventoryLogRepo) Create(ctx context.Context, e *entity.InventoryLogEntry) error {
	query := `
		INSERT INTO inventory_logs (product_id, old_stock, new_stock, changed_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	if err := r.q.QueryRow(ctx, query, e.ProductID, e.OldStock, e.NewStock, e.ChangedBy).Scan(&e.ID, &e.Timestamp); err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

// ListByProduct historial del producto, más reciente primero.
func (r *InventoryLogRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.InventoryLogEntry, error) {
	query := `
		SELECT id, product_id, old_stock, new_stock, changed_by, created_at
		FROM inventory_logs
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryLogEntry, 0)
	for rows.Next() {
		var e entity.InventoryLogEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.OldStock, &e.NewStock, &e.ChangedBy, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina todo el historial del producto.
func (r *InventoryLogRepo) DeleteByProduct(ctx context.Context, productID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_logs WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete inventory logs: %w", err)
	}
	return nil
}
