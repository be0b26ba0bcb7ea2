package repository

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// InventoryLogRepository define el puerto de persistencia del historial de stock (append-only).
type InventoryLogRepository interface {
	// Create inserta la entrada; el timestamp lo asigna la BD y se copia de vuelta en entry.
	Create(ctx context.Context, entry *entity.InventoryLogEntry) error
	// ListByProduct devuelve el historial del más reciente al más antiguo.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.InventoryLogEntry, error)
	DeleteByProduct(ctx context.Context, productID int64) error
}
