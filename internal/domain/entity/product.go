package entity

import "strings"

// Estados de disponibilidad. Se derivan del stock, nunca se asignan directamente.
const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

// Product representa un producto del inventario.
// ID lo asigna el almacenamiento al crear; Status es siempre DeriveStatus(Stock).
type Product struct {
	ID       int64
	Name     string
	Unit     string
	Category string
	Brand    string
	Stock    int
	Status   string
	Image    string
}

// DeriveStatus devuelve "In Stock" si stock > 0 y "Out of Stock" en otro caso.
func DeriveStatus(stock int) string {
	if stock > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}

// ApplyDerivedStatus recalcula Status a partir de Stock, ignorando lo que traiga el llamador.
func (p *Product) ApplyDerivedStatus() {
	p.Status = DeriveStatus(p.Stock)
}

// HasRequiredFields indica si name, unit, category y brand tienen contenido.
func (p *Product) HasRequiredFields() bool {
	return strings.TrimSpace(p.Name) != "" &&
		strings.TrimSpace(p.Unit) != "" &&
		strings.TrimSpace(p.Category) != "" &&
		strings.TrimSpace(p.Brand) != ""
}
