package dto

import "time"

// InventoryLogResponse una entrada del historial de stock.
type InventoryLogResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	OldStock  int       `json:"oldStock"`
	NewStock  int       `json:"newStock"`
	ChangedBy string    `json:"changedBy"`
	Timestamp time.Time `json:"timestamp"`
}

// StockChangedEvent mensaje publicado tras confirmar un cambio de stock.
type StockChangedEvent struct {
	Type      string    `json:"type"`
	ProductID int64     `json:"productId"`
	OldStock  int       `json:"oldStock"`
	NewStock  int       `json:"newStock"`
	ChangedBy string    `json:"changedBy"`
	Timestamp time.Time `json:"timestamp"`
}
