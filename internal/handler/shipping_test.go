package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/infra"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/shipping"
)

const providerRatesBody = `{"success":true,"pricing":[{"courier_code":"jne","courier_service_code":"reg","courier_service_name":"Reguler","price":14000,"estimation_of_delivery":"1 - 2 days"}]}`

// proxyRouter wires the two storefront proxy routes against a stub provider
// and captures what the provider receives.
func proxyRouter(t *testing.T, provider http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(provider)
	t.Cleanup(srv.Close)

	gateway := shipping.NewGateway(infra.NewBiteshipClient(srv.URL, "biteship_test_key"), nil, "40122")
	h := NewShippingHandler(gateway, nil)

	r := gin.New()
	r.POST("/api/shipping-cost", h.ShippingCost)
	r.POST("/api/track-package", h.TrackPackage)
	return r
}

func TestShippingCostAcceptsStorefrontBody(t *testing.T) {
	var forwarded infra.RateRequest
	r := proxyRouter(t, func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&forwarded))
		w.Write([]byte(providerRatesBody))
	})

	body := `{"destinationPostalCode":"50241","destinationAreaName":"Kota Semarang","weight":1300}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/shipping-cost", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, providerRatesBody, w.Body.String())
	assert.Equal(t, "Kota Semarang", forwarded.DestinationCity)
	assert.Equal(t, "50241", forwarded.DestinationPostalCode)
	assert.Equal(t, 2, forwarded.WeightKg)
}

func TestShippingCostRejectsIncompleteBody(t *testing.T) {
	providerCalled := false
	r := proxyRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		providerCalled = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/shipping-cost", strings.NewReader(`{"weight":500}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.False(t, providerCalled)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"destinationPostalCode, destinationAreaName, dan weight diperlukan."}`, w.Body.String())
}

func TestTrackPackageAcceptsStorefrontBody(t *testing.T) {
	trackingBody := `{"success":true,"history":[{"updated_at":"2026-03-02T14:30:00+07:00","status":"dropping_off","note":"Paket dalam perjalanan","location":"Jakarta"}]}`
	r := proxyRouter(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/v1/trackings/JNE123/couriers/jne", req.URL.Path)
		w.Write([]byte(trackingBody))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/track-package", strings.NewReader(`{"trackingNumber":"JNE123","courier":"jne"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, trackingBody, w.Body.String())
}
