package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LocalUsername key en c.Locals con el usuario del Bearer Token.
const LocalUsername = "username"

// tokenParser lo implementa *auth.AuthUseCase.
type tokenParser interface {
	ParseToken(token string) (string, error)
}

// OptionalAuth lee el Bearer Token si viene y guarda el username en c.Locals.
// Las rutas de productos no están protegidas: sin token o con token inválido
// la petición continúa como anónima y el historial usa el actor por defecto.
func OptionalAuth(parser tokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Next()
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Next()
		}
		if username, err := parser.ParseToken(tokenString); err == nil {
			c.Locals(LocalUsername, username)
		}
		return c.Next()
	}
}

// GetUsername devuelve el usuario autenticado o "" si la petición es anónima.
func GetUsername(c *fiber.Ctx) string {
	v := c.Locals(LocalUsername)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
