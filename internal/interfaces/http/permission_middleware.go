package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/permission"
)

// RequirePermission consulta la política con el rol del token. Debe usarse DESPUÉS de AuthMiddleware.
//   - 403 MISSING_ROLE → el token no trae rol.
//   - 403 FORBIDDEN    → el rol no tiene "recurso.acción" ni "recurso.*".
func RequirePermission(policy permission.Policy, resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "No tiene un rol asignado"})
		}
		if !policy.HasPermission(role, resource, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "No tiene permiso para " + action + " en " + resource,
			})
		}
		return c.Next()
	}
}
