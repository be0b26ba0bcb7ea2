package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials credencial única de demostración. No es un mecanismo de seguridad real.
type Credentials struct {
	Username     string
	PasswordHash []byte // bcrypt
}

// NewCredentials arma la credencial; si hash está vacío se genera desde password.
func NewCredentials(username, password, hash string) (Credentials, error) {
	if hash != "" {
		return Credentials{Username: username, PasswordHash: []byte(hash)}, nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credentials{}, fmt.Errorf("hashear password: %w", err)
	}
	return Credentials{Username: username, PasswordHash: h}, nil
}

// AuthUseCase login contra la credencial configurada y emisión de JWT.
type AuthUseCase struct {
	creds  Credentials
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(creds Credentials, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{creds: creds, jwtCfg: jwtCfg}
}

// Login verifica username/password y devuelve token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son requeridos", domain.ErrInvalidInput)
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(uc.creds.Username)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.creds.PasswordHash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{Username: username},
	}, nil
}

// ParseToken devuelve el username de un token válido.
func (uc *AuthUseCase) ParseToken(token string) (string, error) {
	username, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return username, nil
}
