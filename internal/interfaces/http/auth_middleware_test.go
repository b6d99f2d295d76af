package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/permission"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Inventario-teams-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-teams-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testTeamID    = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "inventario-teams-test"
	testExpMin    = 60
)

type fakeTeams struct {
	active bool
	err    error
}

func (f fakeTeams) IsActiveTeam(context.Context, string) (bool, error) { return f.active, f.err }

type failingDenylist struct{}

func (failingDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis caído")
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequirePermission con la política por defecto
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(resource, action string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, nil),
		apphttp.RequirePermission(permission.DefaultPolicy(), resource, action),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func tokenFor(t *testing.T, teamID, role string) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, testUserID, teamID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	code, _ := body["code"].(string)
	return code
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_AdminTieneComodin(t *testing.T) {
	app := buildTestApp(permission.ResourceStores, permission.ActionDelete)
	resp := doRequest(t, app, "/protected", tokenFor(t, testTeamID, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "admin", body["role"])
}

func TestRequirePermission_ClerkPuedeLeerPeroNoBorrar(t *testing.T) {
	read := doRequest(t, buildTestApp(permission.ResourceProducts, permission.ActionRead), "/protected", tokenFor(t, testTeamID, "clerk"))
	defer read.Body.Close()
	assert.Equal(t, http.StatusOK, read.StatusCode)

	del := doRequest(t, buildTestApp(permission.ResourceProducts, permission.ActionDelete), "/protected", tokenFor(t, testTeamID, "clerk"))
	defer del.Body.Close()
	assert.Equal(t, http.StatusForbidden, del.StatusCode)
	assert.Equal(t, "FORBIDDEN", bodyCode(t, del))
}

func TestRequirePermission_RolDesconocido_Forbidden(t *testing.T) {
	resp := doRequest(t, buildTestApp(permission.ResourceOrders, permission.ActionRead), "/protected", tokenFor(t, testTeamID, "vendedor"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequirePermission_TokenSinRol_MissingRole(t *testing.T) {
	resp := doRequest(t, buildTestApp(permission.ResourceOrders, permission.ActionRead), "/protected", tokenFor(t, testTeamID, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", bodyCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeaderOTokenInvalido_401(t *testing.T) {
	app := buildTestApp(permission.ResourceOrders, permission.ActionRead)

	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", bodyCode(t, resp))

	resp2 := doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", bodyCode(t, resp2))

	resp3 := doRequest(t, app, "/protected", "Basic abc")
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp3.StatusCode)
}

func TestAuthMiddleware_ExtraeActor(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, nil), func(c *fiber.Ctx) error {
		a := apphttp.GetActor(c)
		return c.JSON(fiber.Map{"user_id": a.UserID, "team_id": a.TeamID, "role": a.Role})
	})

	resp := doRequest(t, app, "/me", tokenFor(t, testTeamID, "manager"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testTeamID, body["team_id"])
	assert.Equal(t, "manager", body["role"])
}

func TestAuthMiddleware_TokenRevocado_401(t *testing.T) {
	denylist := memory.NewDenylist()
	raw, _, err := pkgjwt.Generate(testJWTSecret, testUserID, testTeamID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(testJWTSecret, raw)
	require.NoError(t, err)
	require.NoError(t, denylist.Revoke(context.Background(), claims.TokenID(), time.Now().Add(time.Hour)))

	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret, denylist), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp := doRequest(t, app, "/protected", "Bearer "+raw)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "REVOKED_TOKEN", bodyCode(t, resp))
}

func TestAuthMiddleware_DenylistCaida_503(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret, failingDenylist{}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp := doRequest(t, app, "/protected", tokenFor(t, testTeamID, "admin"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireTeam
// ──────────────────────────────────────────────────────────────────────────────

func teamApp(checker fakeTeams) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, nil),
		apphttp.RequireTeam(checker),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequireTeam(t *testing.T) {
	resp := doRequest(t, teamApp(fakeTeams{active: true}), "/protected", tokenFor(t, testTeamID, "admin"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	sinEquipo := doRequest(t, teamApp(fakeTeams{active: true}), "/protected", tokenFor(t, "", "admin"))
	defer sinEquipo.Body.Close()
	assert.Equal(t, http.StatusForbidden, sinEquipo.StatusCode)
	assert.Equal(t, "TEAM_REQUIRED", bodyCode(t, sinEquipo))

	eliminado := doRequest(t, teamApp(fakeTeams{active: false}), "/protected", tokenFor(t, testTeamID, "admin"))
	defer eliminado.Body.Close()
	assert.Equal(t, http.StatusForbidden, eliminado.StatusCode)

	caido := doRequest(t, teamApp(fakeTeams{err: errors.New("db caída")}), "/protected", tokenFor(t, testTeamID, "admin"))
	defer caido.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, caido.StatusCode)
}
