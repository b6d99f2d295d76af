package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

// StoreUseCase CRUD de tiendas dentro del equipo del actor.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create crea una tienda en el equipo del actor; el actor queda como dueño.
func (uc *StoreUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if err := requireTeam(actor); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if len(name) < 3 {
		return nil, domain.NewError(domain.ErrBadRequest, "El nombre debe tener al menos 3 caracteres", "store: nombre %q", name)
	}
	now := time.Now()
	store := &entity.Store{
		ID:          uuid.New().String(),
		TeamID:      actor.TeamID,
		OwnerID:     actor.UserID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Address:     entity.Address(in.Address),
		Active:      in.Active,
		Picture:     in.Picture,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	return dto.NewStoreResponse(store), nil
}

// Get obtiene una tienda del equipo del actor.
func (uc *StoreUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.StoreResponse, error) {
	store, err := storeInTeam(ctx, uc.repo, actor, id)
	if err != nil {
		return nil, err
	}
	return dto.NewStoreResponse(store), nil
}

// List tiendas del equipo del actor.
func (uc *StoreUseCase) List(ctx context.Context, actor dto.Actor) ([]dto.StoreResponse, error) {
	if err := requireTeam(actor); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByTeam(ctx, actor.TeamID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *dto.NewStoreResponse(s))
	}
	return out, nil
}

// Update edita la tienda. Solo el dueño.
func (uc *StoreUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name == nil && in.Description == nil && in.Active == nil && in.Picture == nil && in.Address == nil {
		return nil, domain.NewError(domain.ErrBadRequest, "Proporcione campos válidos", "store (%s): cuerpo vacío", id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 3 {
			return nil, domain.NewError(domain.ErrBadRequest, "El nombre debe tener al menos 3 caracteres", "store: nombre %q", name)
		}
		store.Name = name
	}
	if in.Description != nil {
		store.Description = strings.TrimSpace(*in.Description)
	}
	if in.Active != nil {
		store.Active = *in.Active
	}
	if in.Picture != nil {
		store.Picture = *in.Picture
	}
	if in.Address != nil {
		store.Address = entity.Address(*in.Address)
	}
	store.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	return dto.NewStoreResponse(store), nil
}

// Delete elimina la tienda. Solo el dueño.
func (uc *StoreUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return err
	}
	_, err := uc.repo.Delete(ctx, id)
	return err
}

func (uc *StoreUseCase) owned(ctx context.Context, actor dto.Actor, id string) (*entity.Store, error) {
	store, err := storeInTeam(ctx, uc.repo, actor, id)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != actor.UserID {
		return nil, domain.NewError(domain.ErrForbidden, "Solo el dueño puede modificar la tienda",
			"user (%s) no es dueño de store (%s)", actor.UserID, id)
	}
	return store, nil
}
