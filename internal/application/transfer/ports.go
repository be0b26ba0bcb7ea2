package transfer

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// ProductCatalog operaciones del servicio de inventario que usa la transferencia.
// Lo implementa *inventory.InventoryUseCase.
type ProductCatalog interface {
	ImportProduct(ctx context.Context, product entity.Product) (*dto.ProductResponse, int64, error)
	ListForExport(ctx context.Context) ([]*entity.Product, error)
}

// StockReportGenerator genera el reporte de existencias en PDF.
// Lo implementa la capa de infraestructura (ej. Maroto).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, products []*entity.Product, generatedAt time.Time) ([]byte, error)
}
