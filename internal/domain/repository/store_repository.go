package repository

import (
	"context"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	ListByTeam(ctx context.Context, teamID string) ([]*entity.Store, error)
	Delete(ctx context.Context, id string) (int64, error)
}
