package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/delivro/shipcore/internal/server"
	"github.com/delivro/shipcore/internal/telemetry"
	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/mock"
)

// promauto registers against the default registry, so the metrics are
// created once for the whole test binary.
var testMetrics = telemetry.NewMetrics()

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	logger := otelzap.New(zap.NewNop())
	registry := shipping.NewRegistry()

	settings := mock.Settings{CarrierID: "mock-test"}
	registry.Register(mock.NewMapper(settings), mock.NewProxy(settings))

	srv := server.New(server.Config{Port: 8080}, registry, logger, testMetrics)
	return srv.Handler()
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCarriers(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/carriers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Carriers []struct {
			Name         string   `json:"name"`
			Capabilities []string `json:"capabilities"`
		} `json:"carriers"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Carriers, 1)
	assert.Equal(t, "mock-test", resp.Carriers[0].Name)
	assert.Contains(t, resp.Carriers[0].Capabilities, "rating")
	assert.Contains(t, resp.Carriers[0].Capabilities, "tracking")
	assert.Len(t, resp.Carriers[0].Capabilities, 7)
}

func TestCarriersMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/carriers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRates(t *testing.T) {
	handler := newTestHandler(t)

	body := `{
		"shipper": {"postal_code": "H2B1A0", "country_code": "CA"},
		"recipient": {"postal_code": "K1K4T3", "country_code": "CA"},
		"parcels": [{"weight": 2, "weight_unit": "KG"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/rates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Rates []struct {
			CarrierName string  `json:"carrier_name"`
			Service     string  `json:"service"`
			TotalCharge float64 `json:"total_charge"`
		} `json:"rates"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Errors)
	require.Len(t, resp.Rates, 2)
	assert.Equal(t, "mock", resp.Rates[0].CarrierName)
	assert.Equal(t, "mock_standard", resp.Rates[0].Service)
	assert.Equal(t, 15.82, resp.Rates[0].TotalCharge)
}

func TestRatesInvalidParcel(t *testing.T) {
	handler := newTestHandler(t)

	// Parcel without weight fails validation before any carrier call;
	// the failure is reported per carrier, not as an HTTP error.
	body := `{
		"shipper": {"postal_code": "H2B1A0"},
		"recipient": {"postal_code": "K1K4T3"},
		"parcels": [{}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/rates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Rates  []interface{} `json:"rates"`
		Errors []string      `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Rates)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "parcel[0].weight")
}

func TestRatesUnknownCarrier(t *testing.T) {
	handler := newTestHandler(t)

	body := `{
		"carriers": ["nope"],
		"shipper": {"postal_code": "H2B1A0"},
		"recipient": {"postal_code": "K1K4T3"},
		"parcels": [{"weight": 2}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/rates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Rates  []interface{} `json:"rates"`
		Errors []string      `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Rates)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0], "nope")
}

func TestRatesInvalidJSON(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/rates", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
