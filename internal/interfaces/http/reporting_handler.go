package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/application/reporting"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

// ReportingHandler maneja reportes (órdenes) y gráficas (historiales) de una tienda.
type ReportingHandler struct {
	uc  *reporting.UseCase
	log *logger.Logger
}

// NewReportingHandler construye el handler.
func NewReportingHandler(uc *reporting.UseCase, log *logger.Logger) *ReportingHandler {
	return &ReportingHandler{uc: uc, log: log}
}

func scopeOf(c *fiber.Ctx) reporting.Scope {
	return reporting.Scope{TeamID: GetTeamID(c), StoreID: c.Params("storeId")}
}

// ListReports godoc
// @Summary      Listar reportes de la tienda
// @Description  Cada reporte trae sus órdenes; las órdenes eliminadas se omiten.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Success      200      {array}   dto.ReportResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reports [get]
func (h *ReportingHandler) ListReports(c *fiber.Ctx) error {
	out, err := h.uc.AssembleReports(c.UserContext(), scopeOf(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetReport godoc
// @Summary      Obtener reporte
// @Description  Incluye total de ítems, total de precios, todas las líneas, dueño y tienda.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID del reporte"
// @Success      200      {object}  dto.ReportDetailResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reports/{id} [get]
func (h *ReportingHandler) GetReport(c *fiber.Ctx) error {
	out, err := h.uc.AssembleOneReport(c.UserContext(), scopeOf(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateReport godoc
// @Summary      Crear reporte
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeId  path  string                   true  "ID de la tienda"
// @Param        body     body  dto.CreateReportRequest  true  "nombre y órdenes"
// @Success      201      {object}  dto.ReportResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reports [post]
func (h *ReportingHandler) CreateReport(c *fiber.Ctx) error {
	var in dto.CreateReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateReport(c.UserContext(), scopeOf(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateReport godoc
// @Summary      Renombrar reporte
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeId  path  string                  true  "ID de la tienda"
// @Param        id       path  string                  true  "ID del reporte"
// @Param        body     body  dto.UpdateNamedRequest  true  "nombre y/o descripción"
// @Success      200      {object}  dto.ReportResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reports/{id} [put]
func (h *ReportingHandler) UpdateReport(c *fiber.Ctx) error {
	var in dto.UpdateNamedRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateReport(c.UserContext(), scopeOf(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteReport godoc
// @Summary      Eliminar reporte
// @Tags         reports
// @Security     Bearer
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID del reporte"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reports/{id} [delete]
func (h *ReportingHandler) DeleteReport(c *fiber.Ctx) error {
	if err := h.uc.DeleteReport(c.UserContext(), scopeOf(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportReportPDF godoc
// @Summary      Descargar reporte en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID del reporte"
// @Success      200      {file}    binary
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reports/{id}/pdf [get]
func (h *ReportingHandler) ExportReportPDF(c *fiber.Ctx) error {
	body, filename, err := h.uc.ExportReportPDF(c.UserContext(), scopeOf(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}

// ListGraphics godoc
// @Summary      Listar gráficas de la tienda
// @Tags         graphics
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Success      200      {array}   dto.GraphicResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/graphics [get]
func (h *ReportingHandler) ListGraphics(c *fiber.Ctx) error {
	out, err := h.uc.AssembleGraphics(c.UserContext(), scopeOf(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetGraphic godoc
// @Summary      Obtener gráfica
// @Tags         graphics
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID de la gráfica"
// @Success      200      {object}  dto.GraphicDetailResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/graphics/{id} [get]
func (h *ReportingHandler) GetGraphic(c *fiber.Ctx) error {
	out, err := h.uc.AssembleOneGraphic(c.UserContext(), scopeOf(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateGraphic godoc
// @Summary      Crear gráfica
// @Description  Se arma con los historiales de los productos indicados.
// @Tags         graphics
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeId  path  string                    true  "ID de la tienda"
// @Param        body     body  dto.CreateGraphicRequest  true  "nombre y productos"
// @Success      201      {object}  dto.GraphicResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/graphics [post]
func (h *ReportingHandler) CreateGraphic(c *fiber.Ctx) error {
	var in dto.CreateGraphicRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateGraphic(c.UserContext(), scopeOf(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateGraphic godoc
// @Summary      Renombrar gráfica
// @Tags         graphics
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeId  path  string                  true  "ID de la tienda"
// @Param        id       path  string                  true  "ID de la gráfica"
// @Param        body     body  dto.UpdateNamedRequest  true  "nombre y/o descripción"
// @Success      200      {object}  dto.GraphicResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/graphics/{id} [put]
func (h *ReportingHandler) UpdateGraphic(c *fiber.Ctx) error {
	var in dto.UpdateNamedRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateGraphic(c.UserContext(), scopeOf(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteGraphic godoc
// @Summary      Eliminar gráfica
// @Tags         graphics
// @Security     Bearer
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID de la gráfica"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/graphics/{id} [delete]
func (h *ReportingHandler) DeleteGraphic(c *fiber.Ctx) error {
	if err := h.uc.DeleteGraphic(c.UserContext(), scopeOf(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
