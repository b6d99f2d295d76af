// Package cart contiene los casos de uso del carrito: agregar productos, editar/eliminar líneas,
// ciclo de vida del carrito y checkout. Todo total se recalcula con pricing.Aggregate en cada lectura.
package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/pricing"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

// existingItemIncrement incremento aplicado a una línea existente cuando el producto se agrega de nuevo.
// Es fijo: no depende de la cantidad solicitada.
const existingItemIncrement = 1

// UseCase casos de uso del carrito.
type UseCase struct {
	txRunner TxRunner
	carts    repository.CartRepository
	items    repository.CartItemRepository
	products repository.ProductRepository
	stores   repository.StoreRepository
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	carts repository.CartRepository,
	items repository.CartItemRepository,
	products repository.ProductRepository,
	stores repository.StoreRepository,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		carts:    carts,
		items:    items,
		products: products,
		stores:   stores,
		now:      time.Now,
	}
}

// CartQuery identifica un carrito por ID o por (StoreID, UserID).
type CartQuery struct {
	CartID  string
	StoreID string
	UserID  string
}

// CreateCart crea el carrito de userID en storeID. Un segundo carrito para el mismo par devuelve Conflict.
func (uc *UseCase) CreateCart(ctx context.Context, storeID, userID string) (*dto.CartResponse, error) {
	if storeID == "" || userID == "" {
		return nil, domain.NewError(domain.ErrBadRequest, "Parámetros inválidos para crear el carrito",
			"store (%s) o user (%s) vacío", storeID, userID)
	}
	store, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.NewError(domain.ErrNotFound, "La tienda no existe", "store (%s) no encontrada", storeID)
	}
	existing, err := uc.carts.GetByStoreAndUser(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicatedCart(storeID, userID)
	}
	now := uc.now()
	c := &entity.Cart{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		UserID:      userID,
		Items:       []string{},
		TotalPrices: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.carts.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, duplicatedCart(storeID, userID)
		}
		return nil, err
	}
	return dto.NewCartResponse(&entity.CartDetails{
		ID:          c.ID,
		StoreID:     c.StoreID,
		UserID:      c.UserID,
		Items:       []*entity.CartItemDetails{},
		TotalPrices: c.TotalPrices,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}), nil
}

// GetCart obtiene el carrito por ID o por (tienda, usuario) con el total recalculado.
func (uc *UseCase) GetCart(ctx context.Context, q CartQuery) (*dto.CartResponse, error) {
	cartID := q.CartID
	if cartID == "" {
		if q.StoreID == "" || q.UserID == "" {
			return nil, domain.NewError(domain.ErrBadRequest, "No se puede consultar el carrito con parámetros inválidos",
				"falta store (%s), user (%s) o cartId", q.StoreID, q.UserID)
		}
		c, err := uc.carts.GetByStoreAndUser(ctx, q.StoreID, q.UserID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, cartNotFound(q.StoreID + "/" + q.UserID)
		}
		cartID = c.ID
	}
	return uc.details(ctx, cartID)
}

// EnsureOwner verifica que el carrito exista y pertenezca a userID.
func (uc *UseCase) EnsureOwner(ctx context.Context, cartID, userID string) error {
	c, err := uc.carts.GetByID(ctx, cartID)
	if err != nil {
		return err
	}
	if c == nil {
		return cartNotFound(cartID)
	}
	if c.UserID != userID {
		return domain.NewError(domain.ErrForbidden, "No autorizado para usar este carrito",
			"cart (%s) pertenece a %s, no a %s", cartID, c.UserID, userID)
	}
	return nil
}

// AddItems agrega productos al carrito. Si ya existe una línea para el producto su cantidad
// aumenta en existingItemIncrement; si no, se crea con la cantidad solicitada. Solo los IDs
// de líneas nuevas se enlazan al carrito. Crear y enlazar ocurre en la misma transacción.
func (uc *UseCase) AddItems(ctx context.Context, cartID string, in []dto.AddCartItemInput) (*dto.CartResponse, error) {
	if len(in) == 0 {
		return nil, domain.NewError(domain.ErrBadRequest, "Indique al menos un producto", "cart (%s): items vacío", cartID)
	}
	c, err := uc.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, cartNotFound(cartID)
	}

	products, err := uc.loadCartProducts(ctx, c, in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	err = uc.txRunner.RunCart(ctx, func(
		carts repository.CartRepository,
		items repository.CartItemRepository,
		_ repository.OrderRepository,
	) error {
		newIDs := make([]string, 0, len(in))
		for _, req := range in {
			product := products[req.ProductID]
			existing, err := items.GetByCartAndProduct(ctx, c.ID, req.ProductID)
			if err != nil {
				return err
			}
			if existing != nil {
				existing.Quantity += existingItemIncrement
				existing.TotalPrice = pricing.LineTotal(existing.Quantity, product.UnitPrice)
				existing.UpdatedAt = now
				if err := items.Update(ctx, existing); err != nil {
					return err
				}
				continue
			}
			item := &entity.CartItem{
				ID:         uuid.New().String(),
				CartID:     c.ID,
				ProductID:  req.ProductID,
				Quantity:   req.Quantity,
				TotalPrice: pricing.LineTotal(req.Quantity, product.UnitPrice),
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := items.Create(ctx, item); err != nil {
				return err
			}
			newIDs = append(newIDs, item.ID)
		}
		if len(newIDs) == 0 {
			return nil
		}
		return carts.AppendItems(ctx, c.ID, newIDs)
	})
	if err != nil {
		return nil, err
	}
	return uc.details(ctx, c.ID)
}

// UpdateItem cambia la cantidad de una línea y devuelve el carrito recalculado.
func (uc *UseCase) UpdateItem(ctx context.Context, cartID, itemID string, quantity *int) (*dto.CartResponse, error) {
	if quantity == nil {
		return nil, domain.NewError(domain.ErrBadRequest, "Proporcione campos válidos", "cartItem (%s): cuerpo vacío", itemID)
	}
	if *quantity <= 0 {
		return nil, domain.NewError(domain.ErrBadRequest, "La cantidad debe ser mayor a cero",
			"cartItem (%s): cantidad %d", itemID, *quantity)
	}
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CartID != cartID {
		return nil, cartItemNotFound(itemID)
	}
	product, err := uc.products.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productNotFound(item.ProductID)
	}
	item.Quantity = *quantity
	item.TotalPrice = pricing.LineTotal(item.Quantity, product.UnitPrice)
	item.UpdatedAt = uc.now()
	if err := uc.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return uc.details(ctx, cartID)
}

// DeleteItem elimina una línea, la desenlaza del carrito y devuelve el carrito recalculado.
func (uc *UseCase) DeleteItem(ctx context.Context, cartID, itemID string) (*dto.CartResponse, error) {
	err := uc.txRunner.RunCart(ctx, func(
		carts repository.CartRepository,
		items repository.CartItemRepository,
		_ repository.OrderRepository,
	) error {
		item, err := items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.CartID != cartID {
			return cartItemNotFound(itemID)
		}
		if _, err := items.Delete(ctx, itemID); err != nil {
			return err
		}
		return carts.RemoveItem(ctx, cartID, itemID)
	})
	if err != nil {
		return nil, err
	}
	return uc.details(ctx, cartID)
}

// DeleteCart elimina el carrito y, solo si se eliminó una fila, todas sus líneas.
func (uc *UseCase) DeleteCart(ctx context.Context, cartID string) error {
	return uc.txRunner.RunCart(ctx, func(
		carts repository.CartRepository,
		items repository.CartItemRepository,
		_ repository.OrderRepository,
	) error {
		c, err := carts.GetByID(ctx, cartID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewError(domain.ErrBadRequest, "Carrito inexistente", "cart (%s) no existe", cartID)
		}
		deleted, err := carts.Delete(ctx, cartID)
		if err != nil {
			return err
		}
		if deleted > 0 {
			if _, err := items.DeleteByCart(ctx, cartID); err != nil {
				return err
			}
		}
		return nil
	})
}

// Checkout convierte el carrito en una orden con los productos congelados y elimina el carrito.
// Las líneas se leen dentro de la transacción con el carrito bloqueado.
func (uc *UseCase) Checkout(ctx context.Context, cartID string, actor dto.Actor) (*dto.OrderResponse, error) {
	c, err := uc.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, cartNotFound(cartID)
	}
	if c.UserID != actor.UserID {
		return nil, checkoutForbidden(cartID, actor.UserID)
	}
	store, err := uc.stores.GetByID(ctx, c.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.TeamID != actor.TeamID {
		return nil, domain.NewError(domain.ErrForbidden, "La tienda no pertenece a su equipo",
			"store (%s) fuera del equipo %s", c.StoreID, actor.TeamID)
	}

	var order *entity.Order
	err = uc.txRunner.RunCart(ctx, func(
		carts repository.CartRepository,
		items repository.CartItemRepository,
		orders repository.OrderRepository,
	) error {
		details, err := carts.GetDetailsForUpdate(ctx, cartID)
		if err != nil {
			return err
		}
		if details == nil {
			// otro request hizo checkout o borró el carrito en paralelo
			return domain.NewError(domain.ErrConflict, "El carrito ya fue procesado", "cart (%s) eliminado durante checkout", cartID)
		}
		if details.UserID != actor.UserID {
			return checkoutForbidden(cartID, actor.UserID)
		}
		if len(details.Items) == 0 {
			return domain.NewError(domain.ErrBadRequest, "El carrito está vacío", "checkout de cart (%s) sin líneas", cartID)
		}
		order = newOrder(pricing.Aggregate(details), store, actor.UserID, uc.now())
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		if _, err := carts.Delete(ctx, cartID); err != nil {
			return err
		}
		_, err = items.DeleteByCart(ctx, cartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(order), nil
}

func newOrder(details *entity.CartDetails, store *entity.Store, userID string, now time.Time) *entity.Order {
	order := &entity.Order{
		ID:         uuid.New().String(),
		Items:      make([]entity.OrderItem, 0, len(details.Items)),
		TotalPrice: details.TotalPrices,
		OrderedBy:  userID,
		TeamID:     store.TeamID,
		StoreID:    store.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	order.OrderNumber = entity.NewOrderNumber(now, order.ID)
	for _, it := range details.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			ProductDetails: it.ProductDetails,
		})
	}
	return order
}

func checkoutForbidden(cartID, userID string) error {
	return domain.NewError(domain.ErrForbidden, "No autorizado para usar este carrito",
		"checkout de cart (%s) por %s", cartID, userID)
}

// details recarga el carrito con las líneas unidas y aplica el agregador de precios.
func (uc *UseCase) details(ctx context.Context, cartID string) (*dto.CartResponse, error) {
	d, err := uc.carts.GetDetails(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, cartNotFound(cartID)
	}
	return dto.NewCartResponse(pricing.Aggregate(d)), nil
}

// loadCartProducts valida las entradas y que cada producto exista en la tienda del carrito.
func (uc *UseCase) loadCartProducts(ctx context.Context, c *entity.Cart, in []dto.AddCartItemInput) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, req := range in {
		if req.ProductID == "" {
			return nil, domain.NewError(domain.ErrBadRequest, "Indique un productId válido", "cart (%s): productId vacío", c.ID)
		}
		if req.Quantity <= 0 {
			return nil, domain.NewError(domain.ErrBadRequest, "La cantidad debe ser mayor a cero",
				"cart (%s): producto %s con cantidad %d", c.ID, req.ProductID, req.Quantity)
		}
		if _, ok := seen[req.ProductID]; !ok {
			seen[req.ProductID] = struct{}{}
			ids = append(ids, req.ProductID)
		}
	}
	list, err := uc.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		if p.StoreID == c.StoreID {
			byID[p.ID] = p
		}
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, productNotFound(id)
		}
	}
	return byID, nil
}

func duplicatedCart(storeID, userID string) error {
	return domain.NewError(domain.ErrConflict, "El carrito ya existe",
		"no se puede duplicar el carrito para store (%s) y user (%s)", storeID, userID)
}

func cartNotFound(ref string) error {
	return domain.NewError(domain.ErrNotFound, "El carrito no existe", "cart (%s) no encontrado", ref)
}

func cartItemNotFound(itemID string) error {
	return domain.NewError(domain.ErrNotFound, "La línea del carrito no existe", "cartItem (%s) no encontrado", itemID)
}

func productNotFound(productID string) error {
	return domain.NewError(domain.ErrNotFound, "El producto no existe en esta tienda", "product (%s) no encontrado", productID)
}
