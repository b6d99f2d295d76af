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

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, items, total_price, ordered_by, team_id, store_id, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Las líneas (con su copia de ProductDetails) se guardan como JSONB.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden. order_number repetido = domain.ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, orderItems(o.Items), o.TotalPrice, o.OrderedBy, o.TeamID, o.StoreID, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetByIDs devuelve las órdenes existentes; las borradas se omiten.
func (r *OrderRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ANY($1::text[]) ORDER BY created_at, id`, ids)
}

// Update reemplaza líneas y total.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `UPDATE orders SET items = $2, total_price = $3, updated_at = $4 WHERE id = $1`,
		o.ID, orderItems(o.Items), o.TotalPrice, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// ListByTeam storeID vacío = todas las tiendas del equipo.
func (r *OrderRepo) ListByTeam(ctx context.Context, teamID, storeID string) ([]*entity.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE team_id = $1 AND ($2 = '' OR store_id = $2)
		ORDER BY created_at, id`, teamID, storeID)
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE ordered_by = $1 ORDER BY created_at, id`, userID)
}

func (r *OrderRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete order: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.Items, &o.TotalPrice, &o.OrderedBy, &o.TeamID, &o.StoreID,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// orderItems evita serializar null en la columna JSONB.
func orderItems(items []entity.OrderItem) []entity.OrderItem {
	if items == nil {
		return []entity.OrderItem{}
	}
	return items
}
