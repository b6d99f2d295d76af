package repository

import (
	"context"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
)

// CartRepository define el puerto de persistencia para Cart (DIP).
type CartRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe un carrito para (StoreID, UserID).
	Create(ctx context.Context, cart *entity.Cart) error
	GetByID(ctx context.Context, id string) (*entity.Cart, error)
	GetByStoreAndUser(ctx context.Context, storeID, userID string) (*entity.Cart, error)
	// GetDetails devuelve el carrito con sus líneas unidas al producto vigente, en el orden de Items.
	GetDetails(ctx context.Context, id string) (*entity.CartDetails, error)
	// GetDetailsForUpdate como GetDetails pero bloquea la fila del carrito; usar dentro de una transacción.
	GetDetailsForUpdate(ctx context.Context, id string) (*entity.CartDetails, error)
	AppendItems(ctx context.Context, cartID string, itemIDs []string) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	// Delete devuelve la cantidad de filas eliminadas.
	Delete(ctx context.Context, id string) (int64, error)
}

// CartItemRepository define el puerto de persistencia para CartItem (DIP).
type CartItemRepository interface {
	Create(ctx context.Context, item *entity.CartItem) error
	GetByID(ctx context.Context, id string) (*entity.CartItem, error)
	GetByCartAndProduct(ctx context.Context, cartID, productID string) (*entity.CartItem, error)
	Update(ctx context.Context, item *entity.CartItem) error
	Delete(ctx context.Context, id string) (int64, error)
	// DeleteByCart elimina todas las líneas con CartID = cartID.
	DeleteByCart(ctx context.Context, cartID string) (int64, error)
}
