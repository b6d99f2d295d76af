package repository

import (
	"context"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// SetTeam asigna (o limpia con teamID vacío) el equipo del usuario.
	SetTeam(ctx context.Context, userID, teamID string) error
	ListByTeam(ctx context.Context, teamID string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) (int64, error)
}
