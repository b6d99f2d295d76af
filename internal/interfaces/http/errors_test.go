package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

func TestWriteError_MapeoPorTipo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.NewError(domain.ErrBadRequest, "dato inválido", "x"), fiber.StatusBadRequest, "BAD_REQUEST"},
		{domain.NewError(domain.ErrNotFound, "no existe", "x"), fiber.StatusNotFound, "NOT_FOUND"},
		{domain.NewError(domain.ErrForbidden, "prohibido", "x"), fiber.StatusForbidden, "FORBIDDEN"},
		{domain.NewError(domain.ErrUnauthorized, "credenciales", "x"), fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.NewError(domain.ErrConflict, "ya existe", "x"), fiber.StatusConflict, "DUPLICATED_RESOURCE"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATED_RESOURCE"},
		{errors.New("pgx: conexión rota"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, logger.Nop(), tc.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestWriteError_NoFiltraDetalleInterno(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "debug")
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, log, errors.New("password=secreto en el DSN"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "algo salió mal", body.Message)
	assert.Contains(t, buf.String(), "password=secreto", "el detalle queda solo en el log")
}
