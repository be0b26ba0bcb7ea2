package inventory

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la actualización del producto y su entrada de historial se confirmen juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error) error
}

// StockEventPublisher publica eventos de cambio de stock ya confirmados (best-effort).
type StockEventPublisher interface {
	PublishStockChanged(ctx context.Context, event dto.StockChangedEvent) error
}

// NopPublisher descarta los eventos (sin brokers configurados).
type NopPublisher struct{}

// PublishStockChanged no hace nada.
func (NopPublisher) PublishStockChanged(context.Context, dto.StockChangedEvent) error { return nil }
