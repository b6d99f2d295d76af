package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/pricing"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

// OrderUseCase órdenes creadas directamente (sin carrito) y su consulta. El checkout vive en cart.UseCase.
type OrderUseCase struct {
	repo   repository.OrderRepository
	stores repository.StoreRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, stores repository.StoreRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo, stores: stores}
}

// Create crea una orden con las líneas recibidas; el total se calcula con pricing.LineTotal.
func (uc *OrderUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	store, err := storeInTeam(ctx, uc.stores, actor, in.StoreID)
	if err != nil {
		return nil, err
	}
	items, total, err := orderItems(in.Items)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	order := &entity.Order{
		ID:         uuid.New().String(),
		Items:      items,
		TotalPrice: total,
		OrderedBy:  actor.UserID,
		TeamID:     store.TeamID,
		StoreID:    store.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	order.OrderNumber = entity.NewOrderNumber(now, order.ID)
	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(order), nil
}

// GetByID obtiene una orden del equipo del actor.
func (uc *OrderUseCase) GetByID(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(order), nil
}

// ListTeam órdenes del equipo; storeID vacío = todas las tiendas.
func (uc *OrderUseCase) ListTeam(ctx context.Context, actor dto.Actor, storeID string) ([]dto.OrderResponse, error) {
	if err := requireTeam(actor); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByTeam(ctx, actor.TeamID, storeID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListMine órdenes creadas por el actor.
func (uc *OrderUseCase) ListMine(ctx context.Context, actor dto.Actor) ([]dto.OrderResponse, error) {
	list, err := uc.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// UpdateItems reemplaza las líneas y recalcula el total.
func (uc *OrderUseCase) UpdateItems(ctx context.Context, actor dto.Actor, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	items, total, err := orderItems(in.Items)
	if err != nil {
		return nil, err
	}
	order.Items = items
	order.TotalPrice = total
	order.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(order), nil
}

// Delete elimina una orden del equipo del actor.
func (uc *OrderUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	_, err := uc.repo.Delete(ctx, id)
	return err
}

func (uc *OrderUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Order, error) {
	if err := requireTeam(actor); err != nil {
		return nil, err
	}
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewError(domain.ErrNotFound, "La orden no existe", "order (%s) no encontrada", id)
	}
	if order.TeamID != actor.TeamID {
		return nil, domain.NewError(domain.ErrForbidden, "La orden no pertenece a su equipo",
			"order (%s) fuera del equipo %s", id, actor.TeamID)
	}
	return order, nil
}

func orderItems(in []dto.OrderItemDTO) ([]entity.OrderItem, decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, decimal.Zero, domain.NewError(domain.ErrBadRequest, "La orden debe tener al menos una línea", "order sin líneas")
	}
	items := make([]entity.OrderItem, 0, len(in))
	for _, it := range in {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, decimal.Zero, domain.NewError(domain.ErrBadRequest, "Cada línea requiere producto y cantidad mayor a cero",
				"order: línea inválida product (%s) qty %d", it.ProductID, it.Quantity)
		}
		if it.ProductDetails.UnitPrice.IsNegative() {
			return nil, decimal.Zero, domain.NewError(domain.ErrBadRequest, "El precio no puede ser negativo",
				"order: product (%s) precio %s", it.ProductID, it.ProductDetails.UnitPrice)
		}
		items = append(items, entity.OrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			ProductDetails: entity.ProductDetails(it.ProductDetails),
		})
	}
	return items, pricing.OrderTotal(items), nil
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *dto.NewOrderResponse(o))
	}
	return out
}
