package repository

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y FindByNameFold devuelven (nil, nil) cuando no hay fila.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// FindByNameFold busca por nombre sin distinguir mayúsculas/minúsculas.
	FindByNameFold(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete devuelve false si no existía el producto.
	Delete(ctx context.Context, id int64) (bool, error)
	// ListDesc lista todos los productos por id descendente.
	ListDesc(ctx context.Context) ([]*entity.Product, error)
	// ListAsc lista todos los productos por id ascendente (exportación).
	ListAsc(ctx context.Context) ([]*entity.Product, error)
	// SearchByName coincidencia parcial sin distinguir mayúsculas/minúsculas, id descendente.
	SearchByName(ctx context.Context, fragment string) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
}
