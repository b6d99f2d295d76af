package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/application/history"
	"github.com/jhoicas/Inventario-teams-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/memory"
)

const (
	adminID = "00000000-0000-0000-0000-0000000000c1"
	clerkID = "00000000-0000-0000-0000-0000000000c2"
)

type env struct {
	st       *memory.Store
	teams    *usecase.TeamUseCase
	stores   *usecase.StoreUseCase
	products *usecase.ProductUseCase
	orders   *usecase.OrderUseCase
	users    *usecase.UserUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, st.Users().Create(ctx, &entity.User{ID: adminID, Email: "admin@example.com", Role: entity.RoleAdmin, CreatedAt: time.Now()}))
	hist := history.NewUseCase(st, st.Histories(), st.Products(), st.Stores(), st.Users(), time.UTC, nil)
	return &env{
		st:       st,
		teams:    usecase.NewTeamUseCase(st, st.Teams(), st.Users()),
		stores:   usecase.NewStoreUseCase(st.Stores()),
		products: usecase.NewProductUseCase(st.Products(), st.Stores(), hist),
		orders:   usecase.NewOrderUseCase(st.Orders(), st.Stores()),
		users:    usecase.NewUserUseCase(st.Users()),
	}
}

// withTeam crea el equipo del admin y devuelve su actor ya enlazado.
func (e *env) withTeam(t *testing.T) dto.Actor {
	t.Helper()
	team, err := e.teams.Create(context.Background(), adminID, dto.CreateTeamRequest{Name: "Equipo Norte"})
	require.NoError(t, err)
	return dto.Actor{UserID: adminID, TeamID: team.ID, Role: entity.RoleAdmin}
}

func (e *env) withStore(t *testing.T, actor dto.Actor) string {
	t.Helper()
	s, err := e.stores.Create(context.Background(), actor, dto.CreateStoreRequest{
		Name: "Tienda Centro", Description: "Sucursal principal", Active: true,
		Address: dto.AddressDTO{Line1: "Calle 10 # 20-30", Country: "Colombia", State: "Cundinamarca", City: "Bogotá"},
	})
	require.NoError(t, err)
	return s.ID
}

func TestTeamCreate_EnlazaDuenoYRechazaSegundoEquipo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	actor := e.withTeam(t)

	owner, err := e.st.Users().GetByID(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, actor.TeamID, owner.TeamID)

	_, err = e.teams.Create(ctx, adminID, dto.CreateTeamRequest{Name: "Otro equipo"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = e.teams.Create(ctx, "no-existe", dto.CreateTeamRequest{Name: "Equipo"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTeamUpdate_SoloDueno(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	actor := e.withTeam(t)
	name := "Equipo Sur"

	out, err := e.teams.Update(ctx, actor, actor.TeamID, dto.UpdateTeamRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Equipo Sur", out.Name)

	other := dto.Actor{UserID: clerkID, TeamID: actor.TeamID, Role: entity.RoleManager}
	_, err = e.teams.Update(ctx, other, actor.TeamID, dto.UpdateTeamRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTeamDelete_DesvinculaMiembros(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	actor := e.withTeam(t)
	require.NoError(t, e.st.Users().Create(ctx, &entity.User{ID: clerkID, TeamID: actor.TeamID, Email: "clerk@example.com", Role: entity.RoleClerk}))

	members, err := e.teams.ListMembers(ctx, actor, actor.TeamID)
	require.NoError(t, err)
	require.Len(t, members, 1, "el actor se excluye")
	assert.Equal(t, clerkID, members[0].ID)

	require.NoError(t, e.teams.Delete(ctx, actor, actor.TeamID))
	clerk, err := e.st.Users().GetByID(ctx, clerkID)
	require.NoError(t, err)
	assert.Empty(t, clerk.TeamID)

	ok, err := e.teams.IsActiveTeam(ctx, actor.TeamID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SinEquipoForbiddenYSoloDuenoEdita(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.stores.Create(ctx, dto.Actor{UserID: adminID, Role: entity.RoleAdmin}, dto.CreateStoreRequest{Name: "Tienda"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	actor := e.withTeam(t)
	storeID := e.withStore(t, actor)

	list, err := e.stores.List(ctx, actor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bogotá", list[0].Address.City)

	manager := dto.Actor{UserID: clerkID, TeamID: actor.TeamID, Role: entity.RoleManager}
	active := false
	_, err = e.stores.Update(ctx, manager, storeID, dto.UpdateStoreRequest{Active: &active})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := e.stores.Update(ctx, actor, storeID, dto.UpdateStoreRequest{Active: &active})
	require.NoError(t, err)
	assert.False(t, out.Active)

	_, err = e.stores.Get(ctx, dto.Actor{UserID: "x", TeamID: "otro"}, storeID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProductCreate_RegistraHistorialInicial(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	actor := e.withTeam(t)
	storeID := e.withStore(t, actor)

	p, err := e.products.Create(ctx, actor, storeID, dto.CreateProductRequest{
		Name: "Café", Quantity: 12, MinQuantity: 5, UnitPrice: decimal.RequireFromString("8.5"),
	})
	require.NoError(t, err)
	assert.False(t, p.LowStock)

	h, err := e.st.Histories().GetByKey(ctx, p.ID, storeID, actor.TeamID)
	require.NoError(t, err)
	require.NotNil(t, h)
	require.Len(t, h.Evolutions, 1)
	assert.Equal(t, 12, h.Evolutions[0].Quantity)
	assert.Equal(t, adminID, h.Evolutions[0].CollectedBy)
}

func TestProductUpdate_SoloRegistraSiCambiaCantidad(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	actor := e.withTeam(t)
	storeID := e.withStore(t, actor)
	p, err := e.products.Create(ctx, actor, storeID, dto.CreateProductRequest{Name: "Café", Quantity: 12, UnitPrice: decimal.NewFromInt(1)})
	require.NoError(t, err)

	name := "Café molido"
	_, err = e.products.Update(ctx, actor, p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	h, err := e.st.Histories().GetByKey(ctx, p.ID, storeID, actor.TeamID)
	require.NoError(t, err)
	assert.Equal(t, 12, h.Evolutions[0].Quantity)

	qty := 3
	out, err := e.products.Update(ctx, actor, p.ID, dto.UpdateProductRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Quantity)
	h, err = e.st.Histories().GetByKey(ctx, p.ID, storeID, actor.TeamID)
	require.NoError(t, err)
	require.Len(t, h.Evolutions, 1, "mismo día: se sobrescribe")
	assert.Equal(t, 3, h.Evolutions[0].Quantity)
}

func TestProductList_FiltroPorNombreYStockBajo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	actor := e.withTeam(t)
	storeID := e.withStore(t, actor)
	for _, in := range []dto.CreateProductRequest{
		{Name: "Café Tostado", Quantity: 1, MinQuantity: 5},
		{Name: "CAFÉ verde", Quantity: 10, MinQuantity: 5},
		{Name: "Azúcar", Quantity: 2, MinQuantity: 1},
	} {
		_, err := e.products.Create(ctx, actor, storeID, in)
		require.NoError(t, err)
	}

	page, err := e.products.List(ctx, actor, storeID, "café", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page.Total)
	assert.Equal(t, 20, page.Page.Limit)

	low, err := e.products.ListLowStock(ctx, actor, storeID)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Café Tostado", low[0].Name)
}

func TestOrderCreate_CalculaTotalYNumero(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	actor := e.withTeam(t)
	storeID := e.withStore(t, actor)

	out, err := e.orders.Create(ctx, actor, dto.CreateOrderRequest{
		StoreID: storeID,
		Items: []dto.OrderItemDTO{
			{ProductID: "p1", Quantity: 2, ProductDetails: dto.ProductDetailsDTO{Name: "Café", UnitPrice: decimal.RequireFromString("3.5")}},
			{ProductID: "p2", Quantity: 1, ProductDetails: dto.ProductDetailsDTO{Name: "Azúcar", UnitPrice: decimal.RequireFromString("2")}},
		},
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("9").Equal(out.TotalPrice))
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{8}$`, out.OrderNumber)

	updated, err := e.orders.UpdateItems(ctx, actor, out.ID, dto.UpdateOrderRequest{Items: []dto.OrderItemDTO{
		{ProductID: "p1", Quantity: 1, ProductDetails: dto.ProductDetailsDTO{UnitPrice: decimal.RequireFromString("3.5")}},
	}})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3.5").Equal(updated.TotalPrice))

	_, err = e.orders.Create(ctx, actor, dto.CreateOrderRequest{StoreID: storeID})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = e.orders.GetByID(ctx, dto.Actor{UserID: "x", TeamID: "otro"}, out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserUpdate_RolSoloAdmin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	actor := e.withTeam(t)
	require.NoError(t, e.st.Users().Create(ctx, &entity.User{ID: clerkID, TeamID: actor.TeamID, Email: "clerk@example.com", Role: entity.RoleClerk}))
	clerk := dto.Actor{UserID: clerkID, TeamID: actor.TeamID, Role: entity.RoleClerk}

	role := entity.RoleManager
	_, err := e.users.Update(ctx, clerk, clerkID, dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	first := "Luis"
	out, err := e.users.Update(ctx, clerk, clerkID, dto.UpdateUserRequest{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Luis", out.FirstName)

	out, err = e.users.Update(ctx, actor, clerkID, dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)

	_, err = e.users.GetByID(ctx, dto.Actor{UserID: "x", TeamID: "otro"}, clerkID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
