package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

var (
	_ repository.CartRepository     = (*CartRepo)(nil)
	_ repository.CartItemRepository = (*CartItemRepo)(nil)
)

const (
	cartColumns     = `id, store_id, user_id, items, total_prices, created_at, updated_at`
	cartItemColumns = `id, cart_id, product_id, quantity, total_price, created_at, updated_at`
)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
// items guarda los IDs de línea (text[]) en orden de inserción.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Create devuelve domain.ErrDuplicate si ya hay carrito para (store_id, user_id).
func (r *CartRepo) Create(ctx context.Context, c *entity.Cart) error {
	query := `INSERT INTO carts (` + cartColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.StoreID, c.UserID, orEmpty(c.Items), c.TotalPrices, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.Cart, error) {
	return r.findOne(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
}

func (r *CartRepo) GetByStoreAndUser(ctx context.Context, storeID, userID string) (*entity.Cart, error) {
	return r.findOne(ctx, `SELECT `+cartColumns+` FROM carts WHERE store_id = $1 AND user_id = $2`, storeID, userID)
}

// GetDetails une cada línea con el producto vigente, en el orden del arreglo items.
// Líneas sin fila o sin producto se omiten.
func (r *CartRepo) GetDetails(ctx context.Context, id string) (*entity.CartDetails, error) {
	cart, err := r.GetByID(ctx, id)
	if err != nil || cart == nil {
		return nil, err
	}

	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.total_price, ci.created_at, ci.updated_at,
		       p.name, p.description, p.unit_price, p.picture
		FROM carts c
		CROSS JOIN LATERAL unnest(c.items) WITH ORDINALITY AS x(item_id, pos)
		JOIN cart_items ci ON ci.id = x.item_id
		JOIN products p ON p.id = ci.product_id
		WHERE c.id = $1
		ORDER BY x.pos`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get cart details: %w", err)
	}
	defer rows.Close()

	details := &entity.CartDetails{
		ID:          cart.ID,
		StoreID:     cart.StoreID,
		UserID:      cart.UserID,
		Items:       make([]*entity.CartItemDetails, 0, len(cart.Items)),
		TotalPrices: cart.TotalPrices,
		CreatedAt:   cart.CreatedAt,
		UpdatedAt:   cart.UpdatedAt,
	}
	for rows.Next() {
		var d entity.CartItemDetails
		err := rows.Scan(&d.ID, &d.CartID, &d.ProductID, &d.Quantity, &d.TotalPrice, &d.CreatedAt, &d.UpdatedAt,
			&d.ProductDetails.Name, &d.ProductDetails.Description, &d.ProductDetails.UnitPrice, &d.ProductDetails.Picture)
		if err != nil {
			return nil, fmt.Errorf("scan cart item details: %w", err)
		}
		details.Items = append(details.Items, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// GetDetailsForUpdate bloquea la fila del carrito (FOR UPDATE) y luego lee las líneas.
// Un AddItems concurrente espera hasta el fin de la transacción.
func (r *CartRepo) GetDetailsForUpdate(ctx context.Context, id string) (*entity.CartDetails, error) {
	var locked string
	err := r.q.QueryRow(ctx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock cart: %w", err)
	}
	return r.GetDetails(ctx, id)
}

// AppendItems agrega IDs de línea al final. Carrito inexistente = domain.ErrNotFound.
func (r *CartRepo) AppendItems(ctx context.Context, cartID string, itemIDs []string) error {
	tag, err := r.q.Exec(ctx, `UPDATE carts SET items = items || $2::text[], updated_at = now() WHERE id = $1`,
		cartID, orEmpty(itemIDs))
	if err != nil {
		return fmt.Errorf("append cart items: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	_, err := r.q.Exec(ctx, `UPDATE carts SET items = array_remove(items, $2), updated_at = now() WHERE id = $1`,
		cartID, itemID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// Delete borra el carrito; sus líneas caen por ON DELETE CASCADE.
func (r *CartRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete cart: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CartRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Cart, error) {
	var c entity.Cart
	err := r.q.QueryRow(ctx, query, args...).Scan(&c.ID, &c.StoreID, &c.UserID, &c.Items, &c.TotalPrices, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &c, nil
}

// CartItemRepo implementación del puerto CartItemRepository sobre PostgreSQL.
type CartItemRepo struct {
	q Querier
}

// NewCartItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartItemRepository(q Querier) *CartItemRepo {
	return &CartItemRepo{q: q}
}

// Create devuelve domain.ErrDuplicate si el producto ya tiene línea en el carrito.
func (r *CartItemRepo) Create(ctx context.Context, it *entity.CartItem) error {
	query := `INSERT INTO cart_items (` + cartItemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, it.ID, it.CartID, it.ProductID, it.Quantity, it.TotalPrice, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

func (r *CartItemRepo) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	return r.findOne(ctx, `SELECT `+cartItemColumns+` FROM cart_items WHERE id = $1`, id)
}

func (r *CartItemRepo) GetByCartAndProduct(ctx context.Context, cartID, productID string) (*entity.CartItem, error) {
	return r.findOne(ctx, `SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
}

func (r *CartItemRepo) Update(ctx context.Context, it *entity.CartItem) error {
	_, err := r.q.Exec(ctx, `UPDATE cart_items SET quantity = $2, total_price = $3, updated_at = $4 WHERE id = $1`,
		it.ID, it.Quantity, it.TotalPrice, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

func (r *CartItemRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete cart item: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CartItemRepo) DeleteByCart(ctx context.Context, cartID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return 0, fmt.Errorf("delete cart items: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CartItemRepo) findOne(ctx context.Context, query string, args ...any) (*entity.CartItem, error) {
	var it entity.CartItem
	err := r.q.QueryRow(ctx, query, args...).Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.TotalPrice, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &it, nil
}
