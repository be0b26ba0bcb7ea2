package dto

// LoginRequest entrada para login (credencial de demostración).
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse usuario autenticado.
type UserResponse struct {
	Username string `json:"username"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
