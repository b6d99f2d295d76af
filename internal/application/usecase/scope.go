package usecase

import (
	"context"

	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

// requireTeam exige que el actor pertenezca a un equipo.
func requireTeam(actor dto.Actor) error {
	if actor.TeamID == "" {
		return domain.NewError(domain.ErrForbidden, "Debe pertenecer a un equipo",
			"user (%s) sin equipo", actor.UserID)
	}
	return nil
}

// storeInTeam carga la tienda y verifica que pertenezca al equipo del actor.
func storeInTeam(ctx context.Context, stores repository.StoreRepository, actor dto.Actor, storeID string) (*entity.Store, error) {
	if err := requireTeam(actor); err != nil {
		return nil, err
	}
	store, err := stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.NewError(domain.ErrNotFound, "La tienda no existe", "store (%s) no encontrada", storeID)
	}
	if store.TeamID != actor.TeamID {
		return nil, domain.NewError(domain.ErrForbidden, "La tienda no pertenece a su equipo",
			"store (%s) fuera del equipo %s", storeID, actor.TeamID)
	}
	return store, nil
}
