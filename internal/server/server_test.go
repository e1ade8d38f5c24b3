package server_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/server"
	"github.com/rshade/netzero/internal/solar"
)

func newServer(t *testing.T, mutate ...func(*config.Config)) *server.Server {
	t.Helper()
	cfg := config.Defaults()
	for _, m := range mutate {
		m(cfg)
	}
	return server.New(cfg, zerolog.Nop())
}

func do(t *testing.T, s *server.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestOffset(t *testing.T) {
	s := newServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/offset",
		`{"panel_count":3805,"energy_produced":50000,"current_emissions":500000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(server.RequestIDHeader))

	resp := decodeBody[server.OffsetResponse](t, rec)
	assert.InDelta(t, 20850, resp.Result.CarbonOffset, 1e-6)
	assert.InDelta(t, 479150, resp.Result.RemainingEmissions, 1e-6)
	assert.InDelta(t, 13.140604467805518, resp.Result.EnergyPerPanel, 1e-9)
	assert.Len(t, resp.Lines, 5)
	assert.Equal(t, solar.ChartTitle, resp.Chart.Title)
	assert.NotEmpty(t, resp.Equivalencies)
	assert.Empty(t, resp.Message)
}

func TestOffsetUnitsAndPreset(t *testing.T) {
	s := newServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/offset",
		`{"panel_count":10,"energy_produced":1,"energy_unit":"MWh","current_emissions":1,"emissions_unit":"tons","grid_preset":"france"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[server.OffsetResponse](t, rec)
	assert.InDelta(t, 56, resp.Result.CarbonOffset, 1e-9)
	assert.InDelta(t, 0.056, resp.Result.GridEmissionFactor, 1e-12)
}

func TestOffsetNetZero(t *testing.T) {
	s := newServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/offset",
		`{"panel_count":10,"energy_produced":10000,"current_emissions":100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[server.OffsetResponse](t, rec)
	assert.True(t, resp.Result.NetZeroReached)
	assert.Equal(t, solar.NetZeroReachedTitle, resp.Message)
	assert.Zero(t, resp.Result.AdditionalPanelsNeeded)
}

func TestOffsetErrors(t *testing.T) {
	s := newServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"zero panels", `{"panel_count":0,"energy_produced":1,"current_emissions":1}`, http.StatusBadRequest, "invalid_input"},
		{"no energy", `{"panel_count":1,"energy_produced":0,"current_emissions":1}`, http.StatusBadRequest, "invalid_input"},
		{"bad unit", `{"panel_count":1,"energy_produced":1,"energy_unit":"J","current_emissions":1}`, http.StatusBadRequest, "invalid_unit"},
		{"bad preset", `{"panel_count":1,"energy_produced":1,"current_emissions":1,"grid_preset":"mars"}`, http.StatusBadRequest, "unknown_preset"},
		{"negative factor", `{"panel_count":1,"energy_produced":1,"current_emissions":1,"grid_emission_factor":-1}`, http.StatusUnprocessableEntity, "division_guard"},
		{"malformed", `{"panel_count":`, http.StatusBadRequest, "bad_request"},
		{"unknown field", `{"panels":1}`, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/offset", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			resp := decodeBody[server.ErrorResponse](t, rec)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestOffsetNoEnergyMessage(t *testing.T) {
	s := newServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/offset", `{"panel_count":1,"energy_produced":0,"current_emissions":1}`)
	resp := decodeBody[server.ErrorResponse](t, rec)
	assert.Equal(t, solar.MsgNoEnergy, resp.Error)
}

func TestPlan(t *testing.T) {
	s := newServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/plan",
		`{"energy_per_panel":400,"cost_per_panel":250,"current_emissions":5000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[server.PlanResponse](t, rec)
	assert.InDelta(t, 166.8, resp.Result.CarbonOffsetPerPanel, 1e-9)
	assert.InDelta(t, 29.97601918465228, resp.Result.PanelsNeeded, 1e-9)
	assert.InDelta(t, 7494.00479616307, resp.Result.TotalInstallationCost, 1e-6)
	assert.InDelta(t, 3201.438848920864, resp.Result.PotentialSavings, 1e-6)
	assert.Len(t, resp.Lines, 4)

	rec = do(t, s, http.MethodPost, "/api/v1/plan", `{"energy_per_panel":0,"cost_per_panel":250,"current_emissions":5000}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReport(t *testing.T) {
	s := newServer(t)
	body := `{"panel_count":3805,"energy_produced":50000,"current_emissions":500000}`

	rec := do(t, s, http.MethodPost, "/api/v1/report/pdf", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".pdf")
	assert.NotEmpty(t, rec.Header().Get("X-Document-ID"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = do(t, s, http.MethodPost, "/api/v1/report/xlsx", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	rec = do(t, s, http.MethodPost, "/api/v1/report/docx", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/report/pdf", `{"panel_count":0,"energy_produced":1,"current_emissions":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnitsAndGridFactors(t *testing.T) {
	s := newServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/units", "")
	require.Equal(t, http.StatusOK, rec.Code)
	units := decodeBody[server.UnitsResponse](t, rec)
	require.Len(t, units.Energy, 3)
	assert.Equal(t, "GWh", units.Energy[2].Name)
	assert.InDelta(t, 1e6, units.Energy[2].ToBase, 0)
	require.Len(t, units.Emissions, 2)
	assert.InDelta(t, 1000, units.Emissions[1].ToBase, 0)

	rec = do(t, s, http.MethodGet, "/api/v1/grid-factors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	factors := decodeBody[[]server.GridFactorInfo](t, rec)
	assert.Len(t, factors, len(solar.GridFactorPresets))
}

func TestHealthzAndRequestID(t *testing.T) {
	s := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(server.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(server.RequestIDHeader))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestNotFoundAndMethod(t *testing.T) {
	s := newServer(t)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/v1/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodPost, "/healthz", "").Code)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/offset"},
		{http.MethodPut, "/api/v1/plan"},
		{http.MethodPost, "/api/v1/units"},
	} {
		rec := do(t, s, tc.method, tc.path, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, tc.method+" "+tc.path)
		assert.Contains(t, rec.Body.String(), `"method not allowed"`, tc.method+" "+tc.path)
	}
}

func TestMetrics(t *testing.T) {
	s := newServer(t)
	do(t, s, http.MethodPost, "/api/v1/offset", `{"panel_count":1,"energy_produced":1,"current_emissions":1}`)
	do(t, s, http.MethodPost, "/api/v1/offset", `{"panel_count":0,"energy_produced":1,"current_emissions":1}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `netzero_http_requests_total{code="200",method="POST",route="/api/v1/offset"} 1`)
	assert.Contains(t, body, `netzero_calculations_total{kind="offset",outcome="invalid_input"} 1`)
	assert.Contains(t, body, "netzero_http_request_duration_seconds")
}

func TestRateLimit(t *testing.T) {
	s := newServer(t, func(c *config.Config) {
		c.Server.RateLimit = 0.001
		c.Server.Burst = 1
	})
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/v1/units", "").Code)
	rec := do(t, s, http.MethodGet, "/api/v1/units", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz", "").Code, "health checks are not limited")
}

func TestServeGracefulShutdown(t *testing.T) {
	s := newServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
