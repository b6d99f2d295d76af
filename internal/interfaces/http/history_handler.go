package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/application/history"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

// HistoryHandler expone la evolución diaria de cantidades.
type HistoryHandler struct {
	uc  *history.UseCase
	log *logger.Logger
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *history.UseCase, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{uc: uc, log: log}
}

// Record godoc
// @Summary      Registrar cantidad observada
// @Description  Una observación del mismo día reemplaza la anterior; un día nuevo se agrega al final.
// @Tags         histories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeId  path  string                     true  "ID de la tienda"
// @Param        body     body  dto.RecordQuantityRequest  true  "producto, cantidad y fecha opcional"
// @Success      200      {object}  dto.HistoryResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/histories [post]
func (h *HistoryHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	actor := GetActor(c)
	rec := history.RecordInput{
		ProductID: in.ProductID,
		StoreID:   c.Params("storeId"),
		TeamID:    actor.TeamID,
		UserID:    actor.UserID,
		Quantity:  in.Quantity,
	}
	if in.At != nil {
		rec.At = *in.At
	}
	out, err := h.uc.RecordQuantity(c.UserContext(), rec)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewHistoryResponse(out))
}

// List godoc
// @Summary      Historiales de la tienda
// @Tags         histories
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Success      200      {array}   dto.HistoryResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/histories [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByStore(c.UserContext(), GetTeamID(c), c.Params("storeId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByProduct godoc
// @Summary      Historial de un producto
// @Tags         histories
// @Security     Bearer
// @Produce      json
// @Param        storeId    path  string  true  "ID de la tienda"
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  dto.HistoryResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/histories/{productId} [get]
func (h *HistoryHandler) GetByProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetHistory(c.UserContext(), c.Params("productId"), c.Params("storeId"), GetTeamID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
