package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-teams-api/internal/application/auth"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

// TeamHandler maneja equipos y sus miembros.
type TeamHandler struct {
	uc   *usecase.TeamUseCase
	auth *auth.UseCase
	log  *logger.Logger
}

// NewTeamHandler construye el handler. auth renueva el token tras crear el equipo.
func NewTeamHandler(uc *usecase.TeamUseCase, authUC *auth.UseCase, log *logger.Logger) *TeamHandler {
	return &TeamHandler{uc: uc, auth: authUC, log: log}
}

// Create godoc
// @Summary      Crear equipo
// @Description  El usuario autenticado queda como dueño. Devuelve un token nuevo con el team_id.
// @Tags         teams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTeamRequest  true  "nombre, descripción"
// @Success      201   {object}  dto.TeamCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/teams [post]
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	userID := GetUserID(c)
	team, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	session, err := h.auth.Refresh(c.UserContext(), userID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TeamCreatedResponse{Team: *team, Session: *session})
}

// Get godoc
// @Summary      Obtener equipo
// @Tags         teams
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del equipo"
// @Success      200  {object}  dto.TeamResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/teams/{id} [get]
func (h *TeamHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar equipo
// @Tags         teams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del equipo"
// @Param        body  body  dto.UpdateTeamRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.TeamResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/teams/{id} [put]
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar equipo
// @Tags         teams
// @Security     Bearer
// @Param        id   path  string  true  "ID del equipo"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/teams/{id} [delete]
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Members godoc
// @Summary      Listar miembros del equipo
// @Description  No incluye al usuario que consulta.
// @Tags         teams
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/teams/{id}/members [get]
func (h *TeamHandler) Members(c *fiber.Ctx) error {
	out, err := h.uc.ListMembers(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
