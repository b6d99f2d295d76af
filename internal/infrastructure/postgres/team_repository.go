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

var _ repository.TeamRepository = (*TeamRepo)(nil)

const teamColumns = `id, name, description, owner_id, created_at, updated_at`

// TeamRepo implementación del puerto TeamRepository sobre PostgreSQL (usable con pool o tx).
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

// Create persiste un equipo. owner_id es único: un usuario es dueño de como máximo un equipo.
func (r *TeamRepo) Create(ctx context.Context, t *entity.Team) error {
	query := `INSERT INTO teams (` + teamColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Description, t.OwnerID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepo) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	return r.findOne(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
}

func (r *TeamRepo) GetByOwner(ctx context.Context, ownerID string) (*entity.Team, error) {
	return r.findOne(ctx, `SELECT `+teamColumns+` FROM teams WHERE owner_id = $1`, ownerID)
}

func (r *TeamRepo) Update(ctx context.Context, t *entity.Team) error {
	query := `UPDATE teams SET name = $2, description = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Description, t.UpdatedAt); err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

func (r *TeamRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete team: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *TeamRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Team, error) {
	var t entity.Team
	err := r.q.QueryRow(ctx, query, args...).Scan(&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}
