package dashboard

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	h := NewHandler(DemoProvider{})
	app := fiber.New()
	app.Get("/api/dashboard/stats", h.Stats)
	app.Get("/api/dashboard/charts/sales", h.SalesChart)
	app.Get("/api/dashboard/charts/performance", h.PerformanceChart)
	app.Get("/api/dashboard/page-visits", h.PageVisits)
	app.Get("/api/dashboard/social-traffic", h.SocialTraffic)
	app.Get("/api/dashboard/recent-activity", h.RecentActivity)
	app.Get("/api/dashboard/overview", h.Overview)
	return app
}

func get(t *testing.T, app *fiber.App, path string) map[string]any {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, "success", out["status"])
	return out["data"].(map[string]any)
}

func TestStats(t *testing.T) {
	data := get(t, newApp(), "/api/dashboard/stats")

	stats := data["stats"].(map[string]any)
	money := stats["todaysMoney"].(map[string]any)
	assert.EqualValues(t, 53897, money["amount"])
	assert.EqualValues(t, 3.48, money["percentage"])
	assert.Equal(t, "up", money["trend"])
}

func TestCharts(t *testing.T) {
	data := get(t, newApp(), "/api/dashboard/charts/sales")
	chart := data["chartData"].(map[string]any)
	assert.Len(t, chart["labels"], 12)

	data = get(t, newApp(), "/api/dashboard/charts/performance")
	chart = data["chartData"].(map[string]any)
	assert.Len(t, chart["labels"], 4)
}

func TestTables(t *testing.T) {
	data := get(t, newApp(), "/api/dashboard/page-visits")
	assert.Len(t, data["pageVisits"], 5)

	data = get(t, newApp(), "/api/dashboard/social-traffic")
	assert.Len(t, data["socialTraffic"], 5)

	data = get(t, newApp(), "/api/dashboard/recent-activity")
	assert.Len(t, data["activities"], 5)
}

func TestOverview(t *testing.T) {
	data := get(t, newApp(), "/api/dashboard/overview")

	overview := data["overview"].(map[string]any)
	quick := overview["quickStats"].(map[string]any)
	assert.EqualValues(t, 156, quick["totalTransactions"])
	assert.EqualValues(t, 23, quick["totalInvoices"])
	assert.Len(t, overview["recentTransactions"], 3)
}
