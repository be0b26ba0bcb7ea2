package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, unit, category, brand, stock, status, image`

// productRow fila de products tal como la mapea sqlx.
type productRow struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Unit     string `db:"unit"`
	Category string `db:"category"`
	Brand    string `db:"brand"`
	Stock    int    `db:"stock"`
	Status   string `db:"status"`
	Image    string `db:"image"`
}

func (r productRow) toEntity() *entity.Product {
	return &entity.Product{
		ID:       r.ID,
		Name:     r.Name,
		Unit:     r.Unit,
		Category: r.Category,
		Brand:    r.Brand,
		Stock:    r.Stock,
		Status:   r.Status,
		Image:    r.Image,
	}
}

// ProductRepo implementación del puerto ProductRepository sobre SQLite (usable con db o tx).
type ProductRepo struct {
	q sqlx.ExtContext
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar db o tx.
func NewProductRepository(q sqlx.ExtContext) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta el producto y devuelve el id asignado.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO products (name, name_key, unit, category, brand, stock, status, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, inventory.NameKey(p.Name), p.Unit, p.Category, p.Brand, p.Stock, p.Status, p.Image,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: ya existe un producto con el nombre %q", domain.ErrConflict, p.Name)
		}
		return 0, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert product id: %w", err)
	}
	return id, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

// GetForUpdate en SQLite equivale a GetByID: la transacción ya tomó el lock de escritura al iniciar.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, "get product for update", `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

// FindByNameFold busca por la clave normalizada del nombre.
func (r *ProductRepo) FindByNameFold(ctx context.Context, name string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by name", `SELECT `+productColumns+` FROM products WHERE name_key = ?`, inventory.NameKey(name))
}

// Update reemplaza todos los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE products
		SET name = ?, name_key = ?, unit = ?, category = ?, brand = ?, stock = ?, status = ?, image = ?
		WHERE id = ?`,
		p.Name, inventory.NameKey(p.Name), p.Unit, p.Category, p.Brand, p.Stock, p.Status, p.Image, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un producto con el nombre %q", domain.ErrConflict, p.Name)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return n > 0, nil
}

// ListDesc lista todos los productos, id descendente.
func (r *ProductRepo) ListDesc(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, "list products", `SELECT `+productColumns+` FROM products ORDER BY id DESC`)
}

// ListAsc lista todos los productos, id ascendente.
func (r *ProductRepo) ListAsc(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, "list products", `SELECT `+productColumns+` FROM products ORDER BY id ASC`)
}

// SearchByName busca el fragmento dentro de la clave normalizada del nombre.
func (r *ProductRepo) SearchByName(ctx context.Context, fragment string) ([]*entity.Product, error) {
	return r.list(ctx, "search products",
		`SELECT `+productColumns+` FROM products WHERE name_key LIKE ? ESCAPE '\' ORDER BY id DESC`,
		containsPattern(inventory.NameKey(fragment)),
	)
}

// Count devuelve el número de productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	var row productRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return row.toEntity(), nil
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
