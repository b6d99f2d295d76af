package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
)

// teamChecker lo implementa *usecase.TeamUseCase; la interfaz evita el import circular.
type teamChecker interface {
	IsActiveTeam(ctx context.Context, teamID string) (bool, error)
}

// RequireTeam exige que el token tenga un equipo y que ese equipo siga existiendo.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 TEAM_REQUIRED → el usuario no pertenece a ningún equipo o el equipo fue eliminado.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireTeam(checker teamChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID := GetTeamID(c)
		if teamID == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "TEAM_REQUIRED",
				Message: "debe crear o pertenecer a un equipo",
			})
		}
		active, err := checker.IsActiveTeam(c.UserContext(), teamID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "TEAM_CHECK_FAILED",
				Message: "no se pudo verificar el equipo, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "TEAM_REQUIRED",
				Message: "el equipo del token ya no existe",
			})
		}
		return c.Next()
	}
}
