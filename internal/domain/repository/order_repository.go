package repository

import (
	"context"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	// ListByTeam lista órdenes del equipo; storeID vacío = todas las tiendas.
	ListByTeam(ctx context.Context, teamID, storeID string) ([]*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	Delete(ctx context.Context, id string) (int64, error)
}
