package repository

import (
	"context"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
)

// ReportRepository define el puerto de persistencia para Report (DIP).
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	Update(ctx context.Context, report *entity.Report) error
	ListByScope(ctx context.Context, teamID, storeID string) ([]*entity.Report, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// GraphicRepository define el puerto de persistencia para Graphic (DIP).
type GraphicRepository interface {
	Create(ctx context.Context, graphic *entity.Graphic) error
	GetByID(ctx context.Context, id string) (*entity.Graphic, error)
	Update(ctx context.Context, graphic *entity.Graphic) error
	ListByScope(ctx context.Context, teamID, storeID string) ([]*entity.Graphic, error)
	Delete(ctx context.Context, id string) (int64, error)
}
