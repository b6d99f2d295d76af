package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-teams-api/internal/application/cart"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

// CartHandler maneja el carrito del usuario autenticado.
type CartHandler struct {
	uc     *cart.UseCase
	stores *usecase.StoreUseCase
	log    *logger.Logger
}

// NewCartHandler construye el handler. stores valida que la tienda pertenezca al equipo del token.
func NewCartHandler(uc *cart.UseCase, stores *usecase.StoreUseCase, log *logger.Logger) *CartHandler {
	return &CartHandler{uc: uc, stores: stores, log: log}
}

// Create godoc
// @Summary      Crear carrito
// @Description  Un solo carrito por usuario y tienda.
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Success      201      {object}  dto.CartResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/carts [post]
func (h *CartHandler) Create(c *fiber.Ctx) error {
	storeID := c.Params("storeId")
	if _, err := h.stores.Get(c.UserContext(), GetActor(c), storeID); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.CreateCart(c.UserContext(), storeID, GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Mine godoc
// @Summary      Mi carrito en la tienda
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Success      200      {object}  dto.CartResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/carts/mine [get]
func (h *CartHandler) Mine(c *fiber.Ctx) error {
	storeID := c.Params("storeId")
	if _, err := h.stores.Get(c.UserContext(), GetActor(c), storeID); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.GetCart(c.UserContext(), cart.CartQuery{StoreID: storeID, UserID: GetUserID(c)})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener carrito
// @Description  Líneas expandidas con el total recalculado.
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{id} [get]
func (h *CartHandler) GetByID(c *fiber.Ctx) error {
	cartID, err := h.owned(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.GetCart(c.UserContext(), cart.CartQuery{CartID: cartID})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AddItems godoc
// @Summary      Agregar productos al carrito
// @Description  Un producto ya presente suma 1 a su línea; uno nuevo crea la línea con la cantidad pedida.
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del carrito"
// @Param        body  body  dto.AddCartItemsRequest  true  "productos y cantidades"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items [post]
func (h *CartHandler) AddItems(c *fiber.Ctx) error {
	var in dto.AddCartItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	cartID, err := h.owned(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.AddItems(c.UserContext(), cartID, in.Items)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                     true  "ID del carrito"
// @Param        itemId  path  string                     true  "ID de la línea"
// @Param        body    body  dto.UpdateCartItemRequest  true  "cantidad"
// @Success      200     {object}  dto.CartResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items/{itemId} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	cartID, err := h.owned(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.UpdateItem(c.UserContext(), cartID, c.Params("itemId"), in.Quantity)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Quitar una línea del carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del carrito"
// @Param        itemId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.CartResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items/{itemId} [delete]
func (h *CartHandler) DeleteItem(c *fiber.Ctx) error {
	cartID, err := h.owned(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.DeleteItem(c.UserContext(), cartID, c.Params("itemId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar carrito
// @Description  Borra también todas sus líneas.
// @Tags         carts
// @Security     Bearer
// @Param        id   path  string  true  "ID del carrito"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{id} [delete]
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	cartID, err := h.owned(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.DeleteCart(c.UserContext(), cartID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Checkout godoc
// @Summary      Confirmar carrito
// @Description  Convierte el carrito en una orden con los productos congelados y lo elimina.
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del carrito"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	cartID, err := h.owned(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Checkout(c.UserContext(), cartID, GetActor(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// owned devuelve el :id del carrito si pertenece al usuario del token.
func (h *CartHandler) owned(c *fiber.Ctx) (string, error) {
	cartID := c.Params("id")
	if err := h.uc.EnsureOwner(c.UserContext(), cartID, GetUserID(c)); err != nil {
		return "", err
	}
	return cartID, nil
}
