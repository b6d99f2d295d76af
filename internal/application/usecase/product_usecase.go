package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/application/history"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

// QuantityRecorder registra cada cambio de cantidad en el historial. Lo implementa *history.UseCase.
type QuantityRecorder interface {
	RecordQuantity(ctx context.Context, in history.RecordInput) (*entity.History, error)
}

// ProductUseCase casos de uso CRUD para productos. Cada cambio de cantidad se registra en el historial.
type ProductUseCase struct {
	repo     repository.ProductRepository
	stores   repository.StoreRepository
	recorder QuantityRecorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, stores repository.StoreRepository, recorder QuantityRecorder) *ProductUseCase {
	return &ProductUseCase{repo: repo, stores: stores, recorder: recorder}
}

// Create crea un producto en la tienda y registra su cantidad inicial.
func (uc *ProductUseCase) Create(ctx context.Context, actor dto.Actor, storeID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	store, err := storeInTeam(ctx, uc.stores, actor, storeID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewError(domain.ErrBadRequest, "El nombre es obligatorio", "product: nombre vacío")
	}
	if in.Quantity < 0 || in.MinQuantity < 0 {
		return nil, domain.NewError(domain.ErrBadRequest, "Las cantidades no pueden ser negativas",
			"product: quantity %d, min %d", in.Quantity, in.MinQuantity)
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.NewError(domain.ErrBadRequest, "El precio no puede ser negativo", "product: precio %s", in.UnitPrice)
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		StoreID:     store.ID,
		TeamID:      store.TeamID,
		OwnerID:     actor.UserID,
		Name:        name,
		Description: in.Description,
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		UnitPrice:   in.UnitPrice,
		Picture:     in.Picture,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	if err := uc.record(ctx, actor, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del equipo del actor.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor dto.Actor, id string) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. Si viene Quantity se registra en el historial.
func (uc *ProductUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewError(domain.ErrBadRequest, "El nombre es obligatorio", "product (%s): nombre vacío", id)
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.NewError(domain.ErrBadRequest, "Las cantidades no pueden ser negativas", "product (%s): quantity %d", id, *in.Quantity)
		}
		product.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return nil, domain.NewError(domain.ErrBadRequest, "Las cantidades no pueden ser negativas", "product (%s): min %d", id, *in.MinQuantity)
		}
		product.MinQuantity = *in.MinQuantity
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.NewError(domain.ErrBadRequest, "El precio no puede ser negativo", "product (%s): precio %s", id, in.UnitPrice)
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.Picture != nil {
		product.Picture = *in.Picture
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	if in.Quantity != nil {
		if err := uc.record(ctx, actor, product); err != nil {
			return nil, err
		}
	}
	return toProductResponse(product), nil
}

// List lista productos de una tienda con paginación y filtro opcional por nombre.
func (uc *ProductUseCase) List(ctx context.Context, actor dto.Actor, storeID, name string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if _, err := storeInTeam(ctx, uc.stores, actor, storeID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		StoreID: storeID,
		Name:    strings.TrimSpace(name),
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListLowStock productos de la tienda con cantidad por debajo del mínimo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, actor dto.Actor, storeID string) ([]dto.ProductResponse, error) {
	if _, err := storeInTeam(ctx, uc.stores, actor, storeID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListLowStock(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto. El historial se conserva para reportes.
func (uc *ProductUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	_, err := uc.repo.Delete(ctx, id)
	return err
}

func (uc *ProductUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Product, error) {
	if err := requireTeam(actor); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewError(domain.ErrNotFound, "El producto no existe", "product (%s) no encontrado", id)
	}
	if product.TeamID != actor.TeamID {
		return nil, domain.NewError(domain.ErrForbidden, "El producto no pertenece a su equipo",
			"product (%s) fuera del equipo %s", id, actor.TeamID)
	}
	return product, nil
}

func (uc *ProductUseCase) record(ctx context.Context, actor dto.Actor, p *entity.Product) error {
	qty := p.Quantity
	_, err := uc.recorder.RecordQuantity(ctx, history.RecordInput{
		ProductID: p.ID,
		StoreID:   p.StoreID,
		TeamID:    p.TeamID,
		UserID:    actor.UserID,
		Quantity:  &qty,
	})
	return err
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		StoreID:     p.StoreID,
		TeamID:      p.TeamID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		UnitPrice:   p.UnitPrice,
		Picture:     p.Picture,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
