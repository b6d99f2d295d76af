// Package history registra la evolución diaria de cantidades de cada producto.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/evolution"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

const (
	snapshotPageSize = 200
	// createRetries reintentos cuando dos registros concurrentes crean la misma History.
	createRetries = 2
)

// TxRunner ejecuta la fusión de evoluciones dentro de una transacción.
type TxRunner interface {
	RunHistory(ctx context.Context, fn func(histories repository.HistoryRepository) error) error
}

// RecordInput observación de cantidad. At cero = reloj del caso de uso.
type RecordInput struct {
	ProductID string
	StoreID   string
	TeamID    string
	UserID    string
	Quantity  *int
	At        time.Time
}

// UseCase casos de uso de historial.
type UseCase struct {
	txRunner  TxRunner
	histories repository.HistoryRepository
	products  repository.ProductRepository
	stores    repository.StoreRepository
	users     repository.UserRepository
	loc       *time.Location
	now       func() time.Time
	log       *logger.Logger
}

// NewUseCase construye el caso de uso. loc define el día calendario de cada observación (nil = Local).
func NewUseCase(
	txRunner TxRunner,
	histories repository.HistoryRepository,
	products repository.ProductRepository,
	stores repository.StoreRepository,
	users repository.UserRepository,
	loc *time.Location,
	log *logger.Logger,
) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:  txRunner,
		histories: histories,
		products:  products,
		stores:    stores,
		users:     users,
		loc:       loc,
		now:       time.Now,
		log:       log,
	}
}

// RecordQuantity valida la observación y la fusiona en la History del producto: una lectura
// del mismo día reemplaza la anterior, un día nuevo se agrega al final.
func (uc *UseCase) RecordQuantity(ctx context.Context, in RecordInput) (*entity.History, error) {
	if in.UserID == "" || in.TeamID == "" || in.StoreID == "" || in.ProductID == "" {
		return nil, domain.NewError(domain.ErrBadRequest, "Faltan datos para registrar el historial",
			"user (%s), team (%s), store (%s) o product (%s) vacío", in.UserID, in.TeamID, in.StoreID, in.ProductID)
	}
	if in.Quantity == nil {
		return nil, domain.NewError(domain.ErrBadRequest, "La cantidad debe ser un número",
			"product (%s): cantidad ausente", in.ProductID)
	}

	user, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewError(domain.ErrNotFound, "El usuario no existe", "user (%s) no encontrado", in.UserID)
	}
	store, err := uc.stores.GetByID(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.TeamID != in.TeamID {
		return nil, domain.NewError(domain.ErrNotFound, "La tienda no existe", "store (%s) no encontrada en team (%s)", in.StoreID, in.TeamID)
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.StoreID != in.StoreID || product.TeamID != in.TeamID {
		return nil, domain.NewError(domain.ErrNotFound, "El producto no existe en esta tienda",
			"product (%s) no encontrado en store (%s)", in.ProductID, in.StoreID)
	}

	return uc.record(ctx, product, *in.Quantity, in.UserID, in.At)
}

// record fusiona la observación sin validar al usuario (también lo usa el snapshot diario).
func (uc *UseCase) record(ctx context.Context, product *entity.Product, quantity int, collectedBy string, at time.Time) (*entity.History, error) {
	if at.IsZero() {
		at = uc.now()
	}
	next := evolution.New(at.In(uc.loc), quantity, collectedBy)

	var out *entity.History
	var err error
	for attempt := 0; attempt < createRetries; attempt++ {
		err = uc.txRunner.RunHistory(ctx, func(histories repository.HistoryRepository) error {
			h, err := histories.GetByKeyForUpdate(ctx, product.ID, product.StoreID, product.TeamID)
			if err != nil {
				return err
			}
			now := uc.now()
			if h == nil {
				h = &entity.History{
					ID:          uuid.New().String(),
					ProductID:   product.ID,
					ProductName: product.Name,
					StoreID:     product.StoreID,
					TeamID:      product.TeamID,
					Evolutions:  []entity.Evolution{next},
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if err := histories.Create(ctx, h); err != nil {
					return err
				}
				out = h
				return nil
			}
			h.Evolutions = evolution.Merge(h.Evolutions, next)
			h.UpdatedAt = now
			if err := histories.UpdateEvolutions(ctx, h.ID, h.Evolutions, now); err != nil {
				return err
			}
			out = h
			return nil
		})
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("history: registrar cantidad de %s: %w", product.ID, err)
	}
	return out, nil
}

// GetHistory devuelve la History del producto con las evoluciones en orden cronológico.
func (uc *UseCase) GetHistory(ctx context.Context, productID, storeID, teamID string) (*dto.HistoryResponse, error) {
	h, err := uc.histories.GetByKey(ctx, productID, storeID, teamID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.NewError(domain.ErrNotFound, "El producto no tiene historial",
			"history (%s/%s/%s) no encontrada", productID, storeID, teamID)
	}
	h.Evolutions = evolution.SortByDateKey(h.Evolutions)
	return dto.NewHistoryResponse(h), nil
}

// ListByStore historiales de la tienda, evoluciones en orden cronológico.
func (uc *UseCase) ListByStore(ctx context.Context, teamID, storeID string) ([]dto.HistoryResponse, error) {
	list, err := uc.histories.ListByScope(ctx, teamID, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistoryResponse, 0, len(list))
	for _, h := range list {
		h.Evolutions = evolution.SortByDateKey(h.Evolutions)
		out = append(out, *dto.NewHistoryResponse(h))
	}
	return out, nil
}

// SnapshotResult resumen de una corrida del snapshot.
type SnapshotResult struct {
	Recorded int
	Failed   int
	LowStock int
}

// SnapshotStore registra la cantidad vigente de todos los productos (collectedBy = dueño del producto)
// y reporta en el log los que están bajo el mínimo. Un producto que falla no detiene la corrida.
func (uc *UseCase) SnapshotStore(ctx context.Context) (SnapshotResult, error) {
	var res SnapshotResult
	at := uc.now()
	for offset := 0; ; offset += snapshotPageSize {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		page, err := uc.products.ListAll(ctx, snapshotPageSize, offset)
		if err != nil {
			return res, fmt.Errorf("history: snapshot listar productos: %w", err)
		}
		for _, p := range page {
			if _, err := uc.record(ctx, p, p.Quantity, p.OwnerID, at); err != nil {
				res.Failed++
				uc.log.Error().Err(err).Str("product_id", p.ID).Msg("snapshot: no se pudo registrar el producto")
				continue
			}
			res.Recorded++
			if p.IsLowStock() {
				res.LowStock++
				uc.log.Warn().
					Str("product_id", p.ID).
					Str("store_id", p.StoreID).
					Int("quantity", p.Quantity).
					Int("min_quantity", p.MinQuantity).
					Msg("stock bajo")
			}
		}
		if len(page) < snapshotPageSize {
			break
		}
	}
	uc.log.Info().
		Int("recorded", res.Recorded).
		Int("failed", res.Failed).
		Int("low_stock", res.LowStock).
		Msg("snapshot diario de inventario")
	return res, nil
}
