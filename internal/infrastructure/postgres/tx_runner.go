package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Inventario-teams-api/internal/application/cart"
	"github.com/jhoicas/Inventario-teams-api/internal/application/history"
	"github.com/jhoicas/Inventario-teams-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

var (
	_ cart.TxRunner        = (*TxRunner)(nil)
	_ history.TxRunner     = (*TxRunner)(nil)
	_ usecase.TeamTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCart transacción con repos de carrito, líneas y órdenes (alta de líneas, borrado en cascada, checkout).
func (r *TxRunner) RunCart(ctx context.Context, fn func(
	carts repository.CartRepository,
	items repository.CartItemRepository,
	orders repository.OrderRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCartRepository(tx), NewCartItemRepository(tx), NewOrderRepository(tx))
	})
}

// RunHistory transacción para el merge de evoluciones (la fila se bloquea con FOR UPDATE).
func (r *TxRunner) RunHistory(ctx context.Context, fn func(histories repository.HistoryRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewHistoryRepository(tx))
	})
}

// RunTeam transacción para crear o borrar un equipo y actualizar a sus miembros.
func (r *TxRunner) RunTeam(ctx context.Context, fn func(
	teams repository.TeamRepository,
	users repository.UserRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTeamRepository(tx), NewUserRepository(tx))
	})
}

// run inicia la transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
