package dto

// ProductRequest entrada para crear o reemplazar un producto (PUT es reemplazo completo).
// Stock es puntero para distinguir "no enviado" de 0. Status se acepta pero se ignora:
// siempre se recalcula desde Stock.
type ProductRequest struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Stock    *int    `json:"stock"`
	Status   string  `json:"status,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock"`
	Status   string `json:"status"`
	Image    string `json:"image"`
}
