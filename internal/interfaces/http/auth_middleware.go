package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/auth"
)

// Locals keys de la identidad autenticada en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT contra el gate y carga la identidad en c.Locals.
func AuthMiddleware(gate *auth.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := gate.Authenticate(c.Context(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalUsername, id.Username)
		c.Locals(LocalRole, id.Role)
		return c.Next()
	}
}

// RequireRole exige uno de los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(gate *auth.Gate, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := identity(c)
		if err := gate.Authorize(id, roles...); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}

func identity(c *fiber.Ctx) *auth.Identity {
	userID := GetUserID(c)
	if userID == "" {
		return nil
	}
	return &auth.Identity{UserID: userID, Username: GetUsername(c), Role: GetRole(c)}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetUsername devuelve el username autenticado.
func GetUsername(c *fiber.Ctx) string { return localString(c, LocalUsername) }

// GetRole devuelve el rol vigente del usuario autenticado.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
