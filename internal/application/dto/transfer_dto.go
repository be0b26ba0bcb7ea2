package dto

// DuplicateRow fila omitida en la importación porque el nombre ya existía.
type DuplicateRow struct {
	Name       string `json:"name"`
	ExistingID int64  `json:"existingId"`
}

// ImportResponse resumen de POST /api/products/import.
type ImportResponse struct {
	Added      int            `json:"added"`
	Skipped    int            `json:"skipped"`
	Duplicates []DuplicateRow `json:"duplicates"`
}
