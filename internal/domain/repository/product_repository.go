package repository

import (
	"context"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
)

// ProductFilter filtros de listado de productos de una tienda.
type ProductFilter struct {
	StoreID string
	Name    string // coincidencia parcial sin distinguir mayúsculas; vacío = sin filtro
	Limit   int
	Offset  int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	ListLowStock(ctx context.Context, storeID string) ([]*entity.Product, error)
	// ListAll recorre todos los productos por páginas (usado por el snapshot diario).
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) (int64, error)
}
