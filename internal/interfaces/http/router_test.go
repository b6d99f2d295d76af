package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-teams-api/internal/application/auth"
	"github.com/jhoicas/Inventario-teams-api/internal/application/cart"
	"github.com/jhoicas/Inventario-teams-api/internal/application/history"
	"github.com/jhoicas/Inventario-teams-api/internal/application/reporting"
	"github.com/jhoicas/Inventario-teams-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/permission"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Inventario-teams-api/internal/interfaces/http"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	st := memory.NewStore()
	log := logger.Nop()
	authUC := auth.NewUseCase(
		st.Users(),
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewJWTIssuer(auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		memory.NewDenylist(),
	)
	histUC := history.NewUseCase(st, st.Histories(), st.Products(), st.Stores(), st.Users(), time.UTC, log)
	storeUC := usecase.NewStoreUseCase(st.Stores())

	app := fiber.New(apphttp.NewFiberConfig("inventario-teams-api-test"))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		TeamUC:      usecase.NewTeamUseCase(st, st.Teams(), st.Users()),
		UserUC:      usecase.NewUserUseCase(st.Users()),
		StoreUC:     storeUC,
		ProductUC:   usecase.NewProductUseCase(st.Products(), st.Stores(), histUC),
		OrderUC:     usecase.NewOrderUseCase(st.Orders(), st.Stores()),
		CartUC:      cart.NewUseCase(st, st.Carts(), st.CartItems(), st.Products(), st.Stores()),
		HistoryUC:   histUC,
		ReportingUC: reporting.NewUseCase(st.Reports(), st.Graphics(), st.Orders(), st.Histories(), st.Users(), st.Stores(), pdf.NewMarotoPDFGenerator(), log),
		Policy:      permission.DefaultPolicy(),
		JWTSecret:   testJWTSecret,
		Log:         log,
	})
	return app
}

// call hace la petición y decodifica el cuerpo JSON en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, token string, in, out any) int {
	t.Helper()
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

type session struct {
	Token string `json:"token"`
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	var s session
	status := call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": email, "password": password}, &s)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, s.Token)
	return s.Token
}

// adminConTienda registra un admin, crea su equipo y una tienda. Devuelve el token vigente y el ID de la tienda.
func adminConTienda(t *testing.T, app *fiber.App) (string, string) {
	t.Helper()
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/auth/register", "",
		fiber.Map{"email": "ana@example.com", "password": "supersecreto", "first_name": "Ana"}, nil))
	token := login(t, app, "ana@example.com", "supersecreto")

	var created struct {
		Team    struct{ ID string } `json:"team"`
		Session session             `json:"session"`
	}
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/teams", token, fiber.Map{"name": "Equipo Norte"}, &created))
	require.NotEmpty(t, created.Team.ID)
	token = created.Session.Token

	var store struct{ ID string }
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/stores", token, fiber.Map{
		"name": "Tienda Centro", "description": "Sucursal principal", "active": true,
		"address": fiber.Map{"line1": "Calle 10 # 20-30", "country": "Colombia", "state": "Cundinamarca", "city": "Bogotá"},
	}, &store))
	return token, store.ID
}

func TestRouter_SinEquipoNoAccedeATiendas(t *testing.T) {
	app := newAPI(t)
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/auth/register", "",
		fiber.Map{"email": "luis@example.com", "password": "supersecreto"}, nil))
	token := login(t, app, "luis@example.com", "supersecreto")

	var errBody struct{ Code string }
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodGet, "/api/stores", token, nil, &errBody))
	assert.Equal(t, "TEAM_REQUIRED", errBody.Code)
}

func TestRouter_CarritoCheckoutYReporte(t *testing.T) {
	app := newAPI(t)
	token, storeID := adminConTienda(t, app)

	var product struct{ ID string }
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/stores/"+storeID+"/products", token,
		fiber.Map{"name": "Café", "quantity": 10, "min_quantity": 2, "unit_price": "2.5"}, &product))

	var c struct{ ID string }
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/stores/"+storeID+"/carts", token, nil, &c))
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/stores/"+storeID+"/carts", token, nil, nil),
		"un solo carrito por usuario y tienda")

	var withItems struct {
		Items       []struct{ Quantity int }
		TotalPrices string `json:"total_prices"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/carts/"+c.ID+"/items", token,
		fiber.Map{"items": []fiber.Map{{"product_id": product.ID, "quantity": 4}}}, &withItems))
	require.Len(t, withItems.Items, 1)
	assert.Equal(t, "10", withItems.TotalPrices)

	var order struct {
		ID         string
		TotalPrice string `json:"total_price"`
	}
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/carts/"+c.ID+"/checkout", token, nil, &order))
	assert.Equal(t, "10", order.TotalPrice)
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/carts/"+c.ID, token, nil, nil),
		"el checkout elimina el carrito")

	var report struct{ ID string }
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/stores/"+storeID+"/reports", token,
		fiber.Map{"name": "Ventas del día", "order_ids": []string{order.ID}}, &report))

	var detail struct {
		TotalItems  int    `json:"total_items"`
		TotalPrices string `json:"total_prices"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/stores/"+storeID+"/reports/"+report.ID, token, nil, &detail))
	assert.Equal(t, 4, detail.TotalItems)
	assert.Equal(t, "10", detail.TotalPrices)

	req := httptest.NewRequest(http.MethodGet, "/api/stores/"+storeID+"/reports/"+report.ID+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestRouter_CarritoConservaTiendaEntreRequests(t *testing.T) {
	app := newAPI(t)
	token, storeID := adminConTienda(t, app)

	var product struct{ ID string }
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/stores/"+storeID+"/products", token,
		fiber.Map{"name": "Azúcar", "quantity": 10, "unit_price": "3"}, &product))

	var c struct{ ID string }
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/stores/"+storeID+"/carts", token, nil, &c))

	// requests intermedios con otros parámetros de ruta
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/stores/"+storeID+"/products", token, nil, nil))
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products/"+product.ID, token, nil, nil))

	var got struct {
		StoreID string `json:"store_id"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/carts/"+c.ID, token, nil, &got))
	assert.Equal(t, storeID, got.StoreID)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/carts/"+c.ID+"/items", token,
		fiber.Map{"items": []fiber.Map{{"product_id": product.ID, "quantity": 1}}}, nil))
}

func TestRouter_HistorialDelProducto(t *testing.T) {
	app := newAPI(t)
	token, storeID := adminConTienda(t, app)

	var product struct{ ID string }
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/stores/"+storeID+"/products", token,
		fiber.Map{"name": "Arroz", "quantity": 5, "unit_price": "1"}, &product))

	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/stores/"+storeID+"/histories", token,
		fiber.Map{"product_id": product.ID, "quantity": 5, "at": day}, nil))
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/stores/"+storeID+"/histories", token,
		fiber.Map{"product_id": product.ID, "quantity": 8, "at": day.Add(3 * time.Hour)}, nil))

	var h struct {
		Evolutions []struct {
			DateKey  string `json:"date_key"`
			Quantity int
		}
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/stores/"+storeID+"/histories/"+product.ID, token, nil, &h))
	var jan1 []int
	for _, e := range h.Evolutions {
		if e.DateKey == "2024-01-01" {
			jan1 = append(jan1, e.Quantity)
		}
	}
	assert.Equal(t, []int{8}, jan1, "la lectura del mismo día reemplaza la anterior")

	var errBody struct{ Code string }
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/stores/"+storeID+"/histories", token,
		fiber.Map{"product_id": product.ID}, &errBody))
	assert.Equal(t, "BAD_REQUEST", errBody.Code)
}

func TestRouter_ClerkNoBorraTiendaYLogoutRevoca(t *testing.T) {
	app := newAPI(t)
	adminToken, storeID := adminConTienda(t, app)

	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/auth/members", adminToken,
		fiber.Map{"email": "clerk@example.com", "password": "supersecreto", "role": "clerk"}, nil))
	clerkToken := login(t, app, "clerk@example.com", "supersecreto")

	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/stores/"+storeID, clerkToken, nil, nil))
	var errBody struct{ Code string }
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodDelete, "/api/stores/"+storeID, clerkToken, nil, &errBody))
	assert.Equal(t, "FORBIDDEN", errBody.Code)

	assert.Equal(t, http.StatusNoContent, call(t, app, http.MethodPost, "/api/auth/logout", clerkToken, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodGet, "/api/stores/"+storeID, clerkToken, nil, &errBody))
	assert.Equal(t, "REVOKED_TOKEN", errBody.Code)
}
