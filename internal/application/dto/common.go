package dto

// ErrorResponse cuerpo de error HTTP. "error" lleva el mensaje tal cual; "code" es estable para el cliente.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse confirmación sin payload (ej. DELETE).
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse salida de GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
