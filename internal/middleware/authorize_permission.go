package middleware

import (
	"brickvest-backend/internal/constants"
	"brickvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorizePermission checks the session user's role grants against
// PermissionRoles. Unconfigured permission -> 500; no allowed role -> 403.
func AuthorizePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		allowed, ok := constants.PermissionRoles[permission]
		if !ok || len(allowed) == 0 {
			return response.Error(c, "Permission configuration error", 500, nil)
		}
		if !constants.AllowedRole(permission, GetUserRoles(c)) {
			return response.Error(c, "User is Forbidden from performing this action", 403, nil)
		}
		return c.Next()
	}
}
