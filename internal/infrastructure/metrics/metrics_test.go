package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_EtiquetaPorRuta(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/stores/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/metrics", m.Handler())

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/stores/"+id, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/stores/:id", "204")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `inventario_teams_http_requests_total{method="GET",route="/stores/:id",status="204"} 2`)
}

func TestRecordJobRunYSnapshot(t *testing.T) {
	m := New()
	m.RecordJobRun("history_snapshot", 0, true)
	m.RecordJobRun("", time.Second, false)
	m.RecordSnapshot(10, 1, 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobRuns.WithLabelValues("history_snapshot", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobRuns.WithLabelValues("unknown", "false")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.snapshot.WithLabelValues("low_stock")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.snapshot.WithLabelValues("recorded")))
}
