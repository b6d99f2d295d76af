package cart

import (
	"context"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Crear una línea y enlazarla al carrito (o borrar carrito y líneas) es atómico.
type TxRunner interface {
	RunCart(ctx context.Context, fn func(
		carts repository.CartRepository,
		items repository.CartItemRepository,
		orders repository.OrderRepository,
	) error) error
}
