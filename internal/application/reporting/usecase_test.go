package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/application/reporting"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/memory"
)

const (
	teamID  = "00000000-0000-0000-0000-0000000000a1"
	storeID = "00000000-0000-0000-0000-0000000000b1"
	userID  = "00000000-0000-0000-0000-0000000000c1"
)

var scope = reporting.Scope{TeamID: teamID, StoreID: storeID}

// fakePDF registra el reporte recibido y devuelve bytes fijos.
type fakePDF struct {
	got *dto.ReportDetailResponse
}

func (f *fakePDF) GenerateReportPDF(_ context.Context, r *dto.ReportDetailResponse) ([]byte, error) {
	f.got = r
	return []byte("%PDF-1.4"), nil
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	require.NoError(t, st.Users().Create(ctx, &entity.User{
		ID: userID, TeamID: teamID, Email: "ana@example.com", FirstName: "Ana", Role: entity.RoleManager,
		PasswordHash: "secreto",
	}))
	require.NoError(t, st.Stores().Create(ctx, &entity.Store{
		ID: storeID, TeamID: teamID, Name: "Centro", Address: entity.Address{City: "Bogotá"},
	}))
	return st
}

func newUseCase(st *memory.Store, pdf reporting.ReportPDFGenerator) *reporting.UseCase {
	return reporting.NewUseCase(st.Reports(), st.Graphics(), st.Orders(), st.Histories(), st.Users(), st.Stores(), pdf, nil)
}

func order(t *testing.T, st *memory.Store, id string, lines ...entity.OrderItem) {
	t.Helper()
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.ProductDetails.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	require.NoError(t, st.Orders().Create(context.Background(), &entity.Order{
		ID: id, OrderNumber: "ORD-" + id, Items: lines, TotalPrice: total,
		OrderedBy: userID, TeamID: teamID, StoreID: storeID, CreatedAt: time.Now(),
	}))
}

func item(productID string, qty int, price string) entity.OrderItem {
	return entity.OrderItem{
		ProductID:      productID,
		Quantity:       qty,
		ProductDetails: entity.ProductDetails{Name: "P" + productID, UnitPrice: decimal.RequireFromString(price)},
	}
}

func TestAssembleOneReport_TotalesDerivados(t *testing.T) {
	st := seed(t)
	order(t, st, "o1", item("p1", 2, "10"), item("p2", 1, "5"))
	order(t, st, "o2", item("p1", 3, "10"))
	uc := newUseCase(st, nil)
	ctx := context.Background()

	created, err := uc.CreateReport(ctx, scope, userID, dto.CreateReportRequest{Name: "Enero", OrderIDs: []string{"o1", "o2"}})
	require.NoError(t, err)

	out, err := uc.AssembleOneReport(ctx, scope, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, out.TotalItems)
	assert.Len(t, out.AllOrderItems, 3)
	assert.True(t, decimal.RequireFromString("55").Equal(out.TotalPrices), "obtenido %s", out.TotalPrices)
	require.Len(t, out.Orders, 2)
	assert.Equal(t, "o1", out.Orders[0].ID)

	require.NotNil(t, out.OwnerDetails)
	assert.Equal(t, userID, out.OwnerDetails.ID)
	assert.Equal(t, "Ana", out.OwnerDetails.FirstName)
	require.NotNil(t, out.StoreDetails)
	assert.Equal(t, "Bogotá", out.StoreDetails.Address.City)
}

func TestCreateReport_OrdenDeOtraTienda_BadRequest(t *testing.T) {
	st := seed(t)
	require.NoError(t, st.Orders().Create(context.Background(), &entity.Order{
		ID: "ajena", OrderNumber: "X", TeamID: teamID, StoreID: "otra-tienda",
	}))
	uc := newUseCase(st, nil)

	_, err := uc.CreateReport(context.Background(), scope, userID, dto.CreateReportRequest{Name: "Enero", OrderIDs: []string{"ajena"}})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestAssembleOneReport_FueraDeScope_Forbidden(t *testing.T) {
	st := seed(t)
	order(t, st, "o1", item("p1", 1, "1"))
	uc := newUseCase(st, nil)
	ctx := context.Background()
	created, err := uc.CreateReport(ctx, scope, userID, dto.CreateReportRequest{Name: "Enero", OrderIDs: []string{"o1"}})
	require.NoError(t, err)

	_, err = uc.AssembleOneReport(ctx, reporting.Scope{TeamID: "otro", StoreID: storeID}, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.AssembleOneReport(ctx, scope, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssembleReports_OmiteOrdenesEliminadas(t *testing.T) {
	st := seed(t)
	order(t, st, "o1", item("p1", 1, "1"))
	order(t, st, "o2", item("p1", 1, "1"))
	uc := newUseCase(st, nil)
	ctx := context.Background()
	_, err := uc.CreateReport(ctx, scope, userID, dto.CreateReportRequest{Name: "Enero", OrderIDs: []string{"o1", "o2"}})
	require.NoError(t, err)

	_, err = st.Orders().Delete(ctx, "o1")
	require.NoError(t, err)

	list, err := uc.AssembleReports(ctx, scope)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Orders, 1)
	assert.Equal(t, "o2", list[0].Orders[0].ID)
}

func TestUpdateAndDeleteReport(t *testing.T) {
	st := seed(t)
	order(t, st, "o1", item("p1", 1, "1"))
	uc := newUseCase(st, nil)
	ctx := context.Background()
	created, err := uc.CreateReport(ctx, scope, userID, dto.CreateReportRequest{Name: "Enero", OrderIDs: []string{"o1"}})
	require.NoError(t, err)

	name := "Febrero"
	updated, err := uc.UpdateReport(ctx, scope, created.ID, dto.UpdateNamedRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Febrero", updated.Name)

	_, err = uc.UpdateReport(ctx, scope, created.ID, dto.UpdateNamedRequest{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	require.NoError(t, uc.DeleteReport(ctx, scope, created.ID))
	assert.ErrorIs(t, uc.DeleteReport(ctx, scope, created.ID), domain.ErrNotFound)
}

func TestExportReportPDF_UsaReporteEnsamblado(t *testing.T) {
	st := seed(t)
	order(t, st, "o1", item("p1", 4, "2.5"))
	gen := &fakePDF{}
	uc := newUseCase(st, gen)
	ctx := context.Background()
	created, err := uc.CreateReport(ctx, scope, userID, dto.CreateReportRequest{Name: "Enero", OrderIDs: []string{"o1"}})
	require.NoError(t, err)

	data, filename, err := uc.ExportReportPDF(ctx, scope, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
	assert.Equal(t, "reporte_"+created.ID+".pdf", filename)
	require.NotNil(t, gen.got)
	assert.Equal(t, 4, gen.got.TotalItems)
}

func TestCreateGraphic_SinHistoriales_BadRequest(t *testing.T) {
	st := seed(t)
	uc := newUseCase(st, nil)

	_, err := uc.CreateGraphic(context.Background(), scope, userID, dto.CreateGraphicRequest{
		Name: "Rotación", ProductIDs: []string{"p1"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Equal(t, "Asegúrese de que todos los productos tengan historial", domain.PublicMessage(err))
}

func TestAssembleOneGraphic_UneHistorialesDuenoYTienda(t *testing.T) {
	st := seed(t)
	ctx := context.Background()
	require.NoError(t, st.Histories().Create(ctx, &entity.History{
		ID: "h1", ProductID: "p1", ProductName: "Café", StoreID: storeID, TeamID: teamID,
		Evolutions: []entity.Evolution{{DateKey: "2024-01-02", Quantity: 7}, {DateKey: "2024-01-01", Quantity: 5}},
	}))
	uc := newUseCase(st, nil)

	created, err := uc.CreateGraphic(ctx, scope, userID, dto.CreateGraphicRequest{
		Name: "Rotación", ProductIDs: []string{"p1", "p1", "sin-historial"},
	})
	require.NoError(t, err)
	require.Len(t, created.Histories, 1)

	out, err := uc.AssembleOneGraphic(ctx, scope, created.ID)
	require.NoError(t, err)
	require.Len(t, out.Histories, 1)
	assert.Equal(t, "Café", out.Histories[0].ProductName)
	assert.Equal(t, "2024-01-01", out.Histories[0].Evolutions[0].DateKey)
	require.NotNil(t, out.OwnerDetails)
	assert.Equal(t, "ana@example.com", out.OwnerDetails.Email)
	require.NotNil(t, out.StoreDetails)
	assert.Equal(t, "Centro", out.StoreDetails.Name)

	list, err := uc.AssembleGraphics(ctx, scope)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.AssembleOneGraphic(ctx, reporting.Scope{TeamID: teamID, StoreID: "otra"}, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, uc.DeleteGraphic(ctx, scope, created.ID))
	_, err = uc.AssembleOneGraphic(ctx, scope, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
