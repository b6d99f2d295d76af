package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
)

// HistoryRepository define el puerto de persistencia para History (DIP).
type HistoryRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe una History para (producto, tienda, equipo).
	Create(ctx context.Context, history *entity.History) error
	GetByID(ctx context.Context, id string) (*entity.History, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.History, error)
	GetByKey(ctx context.Context, productID, storeID, teamID string) (*entity.History, error)
	// GetByKeyForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una transacción.
	GetByKeyForUpdate(ctx context.Context, productID, storeID, teamID string) (*entity.History, error)
	UpdateEvolutions(ctx context.Context, id string, evolutions []entity.Evolution, updatedAt time.Time) error
	ListByScope(ctx context.Context, teamID, storeID string) ([]*entity.History, error)
	ListByProducts(ctx context.Context, teamID, storeID string, productIDs []string) ([]*entity.History, error)
}
