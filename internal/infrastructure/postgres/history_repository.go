package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

const historyColumns = `id, product_id, product_name, store_id, team_id, evolutions, created_at, updated_at`

// HistoryRepo implementación del puerto HistoryRepository sobre PostgreSQL.
// evolutions es JSONB; (product_id, store_id, team_id) tiene índice único.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create devuelve domain.ErrDuplicate si otra transacción creó la misma History primero.
func (r *HistoryRepo) Create(ctx context.Context, h *entity.History) error {
	query := `INSERT INTO histories (` + historyColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.ProductID, h.ProductName, h.StoreID, h.TeamID, evolutions(h.Evolutions), h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (r *HistoryRepo) GetByID(ctx context.Context, id string) (*entity.History, error) {
	return r.findOne(ctx, `SELECT `+historyColumns+` FROM histories WHERE id = $1`, id)
}

func (r *HistoryRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.History, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+historyColumns+` FROM histories WHERE id = ANY($1::text[]) ORDER BY created_at, id`, ids)
}

func (r *HistoryRepo) GetByKey(ctx context.Context, productID, storeID, teamID string) (*entity.History, error) {
	return r.findOne(ctx, `
		SELECT `+historyColumns+` FROM histories
		WHERE product_id = $1 AND store_id = $2 AND team_id = $3`, productID, storeID, teamID)
}

// GetByKeyForUpdate bloquea la fila hasta el fin de la transacción.
func (r *HistoryRepo) GetByKeyForUpdate(ctx context.Context, productID, storeID, teamID string) (*entity.History, error) {
	return r.findOne(ctx, `
		SELECT `+historyColumns+` FROM histories
		WHERE product_id = $1 AND store_id = $2 AND team_id = $3
		FOR UPDATE`, productID, storeID, teamID)
}

func (r *HistoryRepo) UpdateEvolutions(ctx context.Context, id string, evs []entity.Evolution, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE histories SET evolutions = $2, updated_at = $3 WHERE id = $1`,
		id, evolutions(evs), updatedAt)
	if err != nil {
		return fmt.Errorf("update history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *HistoryRepo) ListByScope(ctx context.Context, teamID, storeID string) ([]*entity.History, error) {
	return r.list(ctx, `
		SELECT `+historyColumns+` FROM histories
		WHERE team_id = $1 AND store_id = $2
		ORDER BY created_at, id`, teamID, storeID)
}

func (r *HistoryRepo) ListByProducts(ctx context.Context, teamID, storeID string, productIDs []string) ([]*entity.History, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT `+historyColumns+` FROM histories
		WHERE team_id = $1 AND store_id = $2 AND product_id = ANY($3::text[])
		ORDER BY created_at, id`, teamID, storeID, productIDs)
}

func (r *HistoryRepo) findOne(ctx context.Context, query string, args ...any) (*entity.History, error) {
	h, err := scanHistory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get history: %w", err)
	}
	return h, nil
}

func (r *HistoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.History, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list histories: %w", err)
	}
	defer rows.Close()

	var list []*entity.History
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func scanHistory(row pgx.Row) (*entity.History, error) {
	var h entity.History
	err := row.Scan(&h.ID, &h.ProductID, &h.ProductName, &h.StoreID, &h.TeamID, &h.Evolutions, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func evolutions(evs []entity.Evolution) []entity.Evolution {
	if evs == nil {
		return []entity.Evolution{}
	}
	return evs
}
