package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-teams-api/internal/application/cart"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/memory"
)

const (
	teamID  = "00000000-0000-0000-0000-0000000000a1"
	storeID = "00000000-0000-0000-0000-0000000000b1"
	userID  = "00000000-0000-0000-0000-0000000000c1"
)

type fixture struct {
	store *memory.Store
	uc    *cart.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, st.Stores().Create(ctx, &entity.Store{ID: storeID, TeamID: teamID, Name: "Centro", Active: true}))
	uc := cart.NewUseCase(st, st.Carts(), st.CartItems(), st.Products(), st.Stores())
	return &fixture{store: st, uc: uc}
}

func (f *fixture) product(t *testing.T, id, price string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{
		ID:        id,
		StoreID:   storeID,
		TeamID:    teamID,
		Name:      "Producto " + id[len(id)-2:],
		Quantity:  50,
		UnitPrice: decimal.RequireFromString(price),
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateCart_SegundoCarritoMismaTiendaYUsuario_Conflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)

	_, err = f.uc.CreateCart(ctx, storeID, userID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "El carrito ya existe", domain.PublicMessage(err))
}

func TestCreateCart_TiendaInexistente_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateCart(context.Background(), "00000000-0000-0000-0000-0000000000ff", userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItems_ReagregarIncrementaEnUno(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := "00000000-0000-0000-0000-0000000000d1"
	f.product(t, p, "10")

	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)

	out, err := f.uc.AddItems(ctx, c.ID, []dto.AddCartItemInput{{ProductID: p, Quantity: 2}})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Items[0].Quantity)
	assert.True(t, dec("20").Equal(out.TotalPrices), "total esperado 20, obtenido %s", out.TotalPrices)

	// la cantidad solicitada se ignora para líneas existentes
	out, err = f.uc.AddItems(ctx, c.ID, []dto.AddCartItemInput{{ProductID: p, Quantity: 7}})
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "no debe duplicarse la línea")
	assert.Equal(t, 3, out.Items[0].Quantity)
	assert.True(t, dec("30").Equal(out.TotalPrices), "total esperado 30, obtenido %s", out.TotalPrices)

	raw, err := f.store.Carts().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, raw.Items, 1, "solo los IDs de líneas nuevas se enlazan")
}

func TestAddItems_VariosProductos_ConservaOrdenYTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := "00000000-0000-0000-0000-0000000000d1"
	p2 := "00000000-0000-0000-0000-0000000000d2"
	f.product(t, p1, "10")
	f.product(t, p2, "2.50")

	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)

	out, err := f.uc.AddItems(ctx, c.ID, []dto.AddCartItemInput{
		{ProductID: p1, Quantity: 1},
		{ProductID: p2, Quantity: 4},
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, p1, out.Items[0].ProductID)
	assert.Equal(t, p2, out.Items[1].ProductID)
	assert.True(t, dec("20").Equal(out.TotalPrices))
}

func TestAddItems_ProductoDeOtraTienda_NotFoundSinEfectos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := "00000000-0000-0000-0000-0000000000d1"
	f.product(t, p, "10")
	other := "00000000-0000-0000-0000-0000000000e9"
	require.NoError(t, f.store.Products().Create(ctx, &entity.Product{ID: other, StoreID: "otra", UnitPrice: dec("1")}))

	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)

	_, err = f.uc.AddItems(ctx, c.ID, []dto.AddCartItemInput{
		{ProductID: p, Quantity: 1},
		{ProductID: other, Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.store.CountCartItems(c.ID))
}

func TestAddItems_CantidadInvalida_BadRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := "00000000-0000-0000-0000-0000000000d1"
	f.product(t, p, "10")
	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)

	_, err = f.uc.AddItems(ctx, c.ID, []dto.AddCartItemInput{{ProductID: p, Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = f.uc.AddItems(ctx, c.ID, nil)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestGetCart_RecalculaConPrecioVigente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := "00000000-0000-0000-0000-0000000000d1"
	f.product(t, p, "10")
	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)
	_, err = f.uc.AddItems(ctx, c.ID, []dto.AddCartItemInput{{ProductID: p, Quantity: 2}})
	require.NoError(t, err)

	prod, err := f.store.Products().GetByID(ctx, p)
	require.NoError(t, err)
	prod.UnitPrice = dec("12.5")
	require.NoError(t, f.store.Products().Update(ctx, prod))

	out, err := f.uc.GetCart(ctx, cart.CartQuery{StoreID: storeID, UserID: userID})
	require.NoError(t, err)
	assert.True(t, dec("25").Equal(out.TotalPrices), "el caché de línea no debe usarse, obtenido %s", out.TotalPrices)
}

func TestGetCart_ParametrosIncompletos_BadRequest(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.GetCart(context.Background(), cart.CartQuery{StoreID: storeID})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpdateItem_CambiaCantidadYTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := "00000000-0000-0000-0000-0000000000d1"
	f.product(t, p, "3")
	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)
	out, err := f.uc.AddItems(ctx, c.ID, []dto.AddCartItemInput{{ProductID: p, Quantity: 1}})
	require.NoError(t, err)

	qty := 5
	out, err = f.uc.UpdateItem(ctx, c.ID, out.Items[0].ID, &qty)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Items[0].Quantity)
	assert.True(t, dec("15").Equal(out.TotalPrices))

	zero := 0
	_, err = f.uc.UpdateItem(ctx, c.ID, out.Items[0].ID, &zero)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = f.uc.UpdateItem(ctx, c.ID, out.Items[0].ID, nil)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestDeleteItem_DesenlazaYRecalcula(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := "00000000-0000-0000-0000-0000000000d1"
	p2 := "00000000-0000-0000-0000-0000000000d2"
	f.product(t, p1, "10")
	f.product(t, p2, "1")
	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)
	out, err := f.uc.AddItems(ctx, c.ID, []dto.AddCartItemInput{{ProductID: p1, Quantity: 1}, {ProductID: p2, Quantity: 2}})
	require.NoError(t, err)

	out, err = f.uc.DeleteItem(ctx, c.ID, out.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, p2, out.Items[0].ProductID)
	assert.True(t, dec("2").Equal(out.TotalPrices))

	_, err = f.uc.DeleteItem(ctx, c.ID, "00000000-0000-0000-0000-000000000999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCart_EliminaEnCascadaTodasLasLineas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := []string{
		"00000000-0000-0000-0000-0000000000d1",
		"00000000-0000-0000-0000-0000000000d2",
		"00000000-0000-0000-0000-0000000000d3",
	}
	in := make([]dto.AddCartItemInput, 0, len(ids))
	for _, id := range ids {
		f.product(t, id, "1")
		in = append(in, dto.AddCartItemInput{ProductID: id, Quantity: 1})
	}
	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)
	_, err = f.uc.AddItems(ctx, c.ID, in)
	require.NoError(t, err)
	require.Equal(t, 3, f.store.CountCartItems(c.ID))

	require.NoError(t, f.uc.DeleteCart(ctx, c.ID))
	assert.Zero(t, f.store.CountCartItems(c.ID))

	_, err = f.uc.GetCart(ctx, cart.CartQuery{CartID: c.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCart_Inexistente_BadRequest(t *testing.T) {
	f := newFixture(t)
	err := f.uc.DeleteCart(context.Background(), "00000000-0000-0000-0000-000000000404")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Equal(t, "Carrito inexistente", domain.PublicMessage(err))
}

func TestCheckout_CreaOrdenYEliminaCarrito(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := "00000000-0000-0000-0000-0000000000d1"
	f.product(t, p, "4.5")
	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)
	_, err = f.uc.AddItems(ctx, c.ID, []dto.AddCartItemInput{{ProductID: p, Quantity: 2}})
	require.NoError(t, err)

	order, err := f.uc.Checkout(ctx, c.ID, dto.Actor{UserID: userID, TeamID: teamID, Role: entity.RoleClerk})
	require.NoError(t, err)
	assert.True(t, dec("9").Equal(order.TotalPrice))
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, dec("4.5").Equal(order.Items[0].ProductDetails.UnitPrice))
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{8}$`, order.OrderNumber)

	assert.Zero(t, f.store.CountCartItems(c.ID))
	stored, err := f.store.Orders().GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, teamID, stored.TeamID)

	// tras el checkout el usuario puede abrir un carrito nuevo
	_, err = f.uc.CreateCart(ctx, storeID, userID)
	assert.NoError(t, err)
}

// beforeTxRunner ejecuta before una sola vez antes de delegar la primera transacción.
type beforeTxRunner struct {
	*memory.Store
	before func()
}

func (r *beforeTxRunner) RunCart(ctx context.Context, fn func(
	carts repository.CartRepository,
	items repository.CartItemRepository,
	orders repository.OrderRepository,
) error) error {
	if r.before != nil {
		before := r.before
		r.before = nil
		before()
	}
	return r.Store.RunCart(ctx, fn)
}

func TestCheckout_LineaAgregadaAntesDeLaTransaccionEntraEnLaOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := "00000000-0000-0000-0000-0000000000d1"
	p2 := "00000000-0000-0000-0000-0000000000d2"
	f.product(t, p1, "2")
	f.product(t, p2, "3")
	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)
	_, err = f.uc.AddItems(ctx, c.ID, []dto.AddCartItemInput{{ProductID: p1, Quantity: 1}})
	require.NoError(t, err)

	runner := &beforeTxRunner{Store: f.store}
	runner.before = func() {
		// commit concurrente de una segunda línea entre la lectura inicial y la transacción
		now := time.Now()
		item := &entity.CartItem{ID: "00000000-0000-0000-0000-0000000000e2", CartID: c.ID, ProductID: p2, Quantity: 2, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, f.store.CartItems().Create(ctx, item))
		require.NoError(t, f.store.Carts().AppendItems(ctx, c.ID, []string{item.ID}))
	}
	uc := cart.NewUseCase(runner, f.store.Carts(), f.store.CartItems(), f.store.Products(), f.store.Stores())

	order, err := uc.Checkout(ctx, c.ID, dto.Actor{UserID: userID, TeamID: teamID, Role: entity.RoleClerk})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, p2, order.Items[1].ProductID)
	assert.True(t, dec("8").Equal(order.TotalPrice))
	assert.Zero(t, f.store.CountCartItems(c.ID), "ninguna línea queda huérfana")
}

func TestCheckout_OtroUsuarioOCarritoVacio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)

	_, err = f.uc.Checkout(ctx, c.ID, dto.Actor{UserID: "otro", TeamID: teamID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Checkout(ctx, c.ID, dto.Actor{UserID: userID, TeamID: teamID})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestEnsureOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.uc.CreateCart(ctx, storeID, userID)
	require.NoError(t, err)

	assert.NoError(t, f.uc.EnsureOwner(ctx, c.ID, userID))
	assert.ErrorIs(t, f.uc.EnsureOwner(ctx, c.ID, "otro"), domain.ErrForbidden)
	assert.ErrorIs(t, f.uc.EnsureOwner(ctx, "nope", userID), domain.ErrNotFound)
}
