package entity

import "time"

// InventoryLogEntry registro inmutable de un cambio de stock de un producto.
// Timestamp lo asigna el almacenamiento al insertar.
type InventoryLogEntry struct {
	ID        int64
	ProductID int64
	OldStock  int
	NewStock  int
	ChangedBy string
	Timestamp time.Time
}
