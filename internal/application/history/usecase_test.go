package history_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-teams-api/internal/application/history"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

const (
	teamID    = "00000000-0000-0000-0000-0000000000a1"
	storeID   = "00000000-0000-0000-0000-0000000000b1"
	userID    = "00000000-0000-0000-0000-0000000000c1"
	productID = "00000000-0000-0000-0000-0000000000d1"
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	require.NoError(t, st.Users().Create(ctx, &entity.User{ID: userID, TeamID: teamID, Email: "ana@example.com", Role: entity.RoleClerk}))
	require.NoError(t, st.Stores().Create(ctx, &entity.Store{ID: storeID, TeamID: teamID, Name: "Centro"}))
	require.NoError(t, st.Products().Create(ctx, &entity.Product{
		ID: productID, StoreID: storeID, TeamID: teamID, OwnerID: userID,
		Name: "Café", Quantity: 5, MinQuantity: 10, UnitPrice: decimal.NewFromInt(3),
	}))
	return st
}

func newUseCase(st *memory.Store, loc *time.Location, log *logger.Logger) *history.UseCase {
	return history.NewUseCase(st, st.Histories(), st.Products(), st.Stores(), st.Users(), loc, log)
}

func qty(n int) *int { return &n }

func TestRecordQuantity_MismoDiaSobrescribe(t *testing.T) {
	st := seed(t)
	uc := newUseCase(st, time.UTC, nil)
	ctx := context.Background()

	in := history.RecordInput{ProductID: productID, StoreID: storeID, TeamID: teamID, UserID: userID}
	in.Quantity, in.At = qty(5), time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	_, err := uc.RecordQuantity(ctx, in)
	require.NoError(t, err)

	in.Quantity, in.At = qty(8), time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC)
	h, err := uc.RecordQuantity(ctx, in)
	require.NoError(t, err)

	require.Len(t, h.Evolutions, 1, "una sola entrada por día")
	assert.Equal(t, "2024-01-01", h.Evolutions[0].DateKey)
	assert.Equal(t, 8, h.Evolutions[0].Quantity)
}

func TestRecordQuantity_DiaDistintoAgrega(t *testing.T) {
	st := seed(t)
	uc := newUseCase(st, time.UTC, nil)
	ctx := context.Background()

	in := history.RecordInput{ProductID: productID, StoreID: storeID, TeamID: teamID, UserID: userID}
	in.Quantity, in.At = qty(5), time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	_, err := uc.RecordQuantity(ctx, in)
	require.NoError(t, err)

	in.Quantity, in.At = qty(3), time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	h, err := uc.RecordQuantity(ctx, in)
	require.NoError(t, err)

	require.Len(t, h.Evolutions, 2)
	assert.Equal(t, "2024-01-01", h.Evolutions[0].DateKey)
	assert.Equal(t, 5, h.Evolutions[0].Quantity)
	assert.Equal(t, "2024-01-02", h.Evolutions[1].DateKey)
	assert.Equal(t, 3, h.Evolutions[1].Quantity)
	assert.Equal(t, userID, h.Evolutions[1].CollectedBy)
}

func TestRecordQuantity_DiaSegunZonaConfigurada(t *testing.T) {
	st := seed(t)
	bogota := time.FixedZone("COT", -5*60*60)
	uc := newUseCase(st, bogota, nil)

	// 03:00 UTC del 2 de enero sigue siendo 1 de enero en UTC-5
	h, err := uc.RecordQuantity(context.Background(), history.RecordInput{
		ProductID: productID, StoreID: storeID, TeamID: teamID, UserID: userID,
		Quantity: qty(1), At: time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", h.Evolutions[0].DateKey)
}

func TestRecordQuantity_Validaciones(t *testing.T) {
	st := seed(t)
	uc := newUseCase(st, time.UTC, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   history.RecordInput
		kind error
	}{
		{"sin cantidad", history.RecordInput{ProductID: productID, StoreID: storeID, TeamID: teamID, UserID: userID}, domain.ErrBadRequest},
		{"sin usuario", history.RecordInput{ProductID: productID, StoreID: storeID, TeamID: teamID, Quantity: qty(1)}, domain.ErrBadRequest},
		{"usuario inexistente", history.RecordInput{ProductID: productID, StoreID: storeID, TeamID: teamID, UserID: "x", Quantity: qty(1)}, domain.ErrNotFound},
		{"tienda de otro equipo", history.RecordInput{ProductID: productID, StoreID: storeID, TeamID: "otro", UserID: userID, Quantity: qty(1)}, domain.ErrNotFound},
		{"producto inexistente", history.RecordInput{ProductID: "x", StoreID: storeID, TeamID: teamID, UserID: userID, Quantity: qty(1)}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RecordQuantity(ctx, tc.in)
			assert.ErrorIs(t, err, tc.kind)
		})
	}

	h, err := st.Histories().GetByKey(ctx, productID, storeID, teamID)
	require.NoError(t, err)
	assert.Nil(t, h, "ninguna validación fallida debe escribir")
}

func TestGetHistory_OrdenCronologicoYNotFound(t *testing.T) {
	st := seed(t)
	uc := newUseCase(st, time.UTC, nil)
	ctx := context.Background()

	_, err := uc.GetHistory(ctx, productID, storeID, teamID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, st.Histories().Create(ctx, &entity.History{
		ID: "h1", ProductID: productID, StoreID: storeID, TeamID: teamID,
		Evolutions: []entity.Evolution{
			{DateKey: "2024-01-03", Quantity: 3},
			{DateKey: "2024-01-01", Quantity: 1},
		},
	}))
	out, err := uc.GetHistory(ctx, productID, storeID, teamID)
	require.NoError(t, err)
	require.Len(t, out.Evolutions, 2)
	assert.Equal(t, "2024-01-01", out.Evolutions[0].DateKey)
	assert.Equal(t, "2024-01-03", out.Evolutions[1].DateKey)
}

func TestSnapshotStore_RegistraTodosYReportaStockBajo(t *testing.T) {
	st := seed(t)
	ctx := context.Background()
	require.NoError(t, st.Products().Create(ctx, &entity.Product{
		ID: "00000000-0000-0000-0000-0000000000d2", StoreID: storeID, TeamID: teamID, OwnerID: userID,
		Name: "Azúcar", Quantity: 40, MinQuantity: 10, UnitPrice: decimal.NewFromInt(2),
	}))

	var buf bytes.Buffer
	uc := newUseCase(st, time.UTC, logger.NewWithWriter(&buf, "info"))

	res, err := uc.SnapshotStore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Recorded)
	assert.Equal(t, 1, res.LowStock)
	assert.Zero(t, res.Failed)
	assert.Contains(t, buf.String(), "stock bajo")
	assert.Contains(t, buf.String(), productID)

	list, err := uc.ListByStore(ctx, teamID, storeID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
