package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

var (
	_ repository.ReportRepository  = (*ReportRepo)(nil)
	_ repository.GraphicRepository = (*GraphicRepo)(nil)
)

const (
	reportColumns  = `id, name, description, order_ids, generated_by, team_id, store_id, created_at, updated_at`
	graphicColumns = `id, name, description, history_ids, generated_by, team_id, store_id, created_at, updated_at`
)

// ReportRepo implementación del puerto ReportRepository sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) Create(ctx context.Context, rp *entity.Report) error {
	query := `INSERT INTO reports (` + reportColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, rp.ID, rp.Name, rp.Description, orEmpty(rp.OrderIDs), rp.GeneratedBy,
		rp.TeamID, rp.StoreID, rp.CreatedAt, rp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	rp, err := scanReport(r.q.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rp, nil
}

func (r *ReportRepo) Update(ctx context.Context, rp *entity.Report) error {
	_, err := r.q.Exec(ctx, `UPDATE reports SET name = $2, description = $3, order_ids = $4, updated_at = $5 WHERE id = $1`,
		rp.ID, rp.Name, rp.Description, orEmpty(rp.OrderIDs), rp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	return nil
}

// ListByScope storeID vacío = todas las tiendas del equipo.
func (r *ReportRepo) ListByScope(ctx context.Context, teamID, storeID string) ([]*entity.Report, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+reportColumns+` FROM reports
		WHERE team_id = $1 AND ($2 = '' OR store_id = $2)
		ORDER BY created_at, id`, teamID, storeID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var list []*entity.Report
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		list = append(list, rp)
	}
	return list, rows.Err()
}

func (r *ReportRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete report: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanReport(row pgx.Row) (*entity.Report, error) {
	var rp entity.Report
	err := row.Scan(&rp.ID, &rp.Name, &rp.Description, &rp.OrderIDs, &rp.GeneratedBy, &rp.TeamID, &rp.StoreID,
		&rp.CreatedAt, &rp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rp, nil
}

// GraphicRepo implementación del puerto GraphicRepository sobre PostgreSQL.
type GraphicRepo struct {
	q Querier
}

// NewGraphicRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGraphicRepository(q Querier) *GraphicRepo {
	return &GraphicRepo{q: q}
}

func (r *GraphicRepo) Create(ctx context.Context, g *entity.Graphic) error {
	query := `INSERT INTO graphics (` + graphicColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, g.ID, g.Name, g.Description, orEmpty(g.HistoryIDs), g.GeneratedBy,
		g.TeamID, g.StoreID, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert graphic: %w", err)
	}
	return nil
}

func (r *GraphicRepo) GetByID(ctx context.Context, id string) (*entity.Graphic, error) {
	g, err := scanGraphic(r.q.QueryRow(ctx, `SELECT `+graphicColumns+` FROM graphics WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get graphic: %w", err)
	}
	return g, nil
}

func (r *GraphicRepo) Update(ctx context.Context, g *entity.Graphic) error {
	_, err := r.q.Exec(ctx, `UPDATE graphics SET name = $2, description = $3, history_ids = $4, updated_at = $5 WHERE id = $1`,
		g.ID, g.Name, g.Description, orEmpty(g.HistoryIDs), g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update graphic: %w", err)
	}
	return nil
}

func (r *GraphicRepo) ListByScope(ctx context.Context, teamID, storeID string) ([]*entity.Graphic, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+graphicColumns+` FROM graphics
		WHERE team_id = $1 AND store_id = $2
		ORDER BY created_at, id`, teamID, storeID)
	if err != nil {
		return nil, fmt.Errorf("list graphics: %w", err)
	}
	defer rows.Close()

	var list []*entity.Graphic
	for rows.Next() {
		g, err := scanGraphic(rows)
		if err != nil {
			return nil, fmt.Errorf("scan graphic: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func (r *GraphicRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM graphics WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete graphic: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanGraphic(row pgx.Row) (*entity.Graphic, error) {
	var g entity.Graphic
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.HistoryIDs, &g.GeneratedBy, &g.TeamID, &g.StoreID,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
