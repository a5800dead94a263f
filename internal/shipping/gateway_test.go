package shipping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/infra"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
)

const ratesBody = `{
	"success": true,
	"pricing": [
		{"courier_code": "jnt", "courier_service_code": "ez", "courier_service_name": "EZ", "price": 18000, "estimation_of_delivery": "2 - 3 days"},
		{"courier_code": "jne", "courier_service_code": "reg", "courier_service_name": "Reguler", "price": 12000, "estimation_of_delivery": "1 - 2 days"}
	]
}`

const trackingBody = `{
	"success": true,
	"history": [
		{"updated_at": "2026-03-01T08:00:00+07:00", "status": "picked", "note": "Paket diterima di gudang asal", "location": "Bandung"},
		{"updated_at": "2026-03-02T14:30:00+07:00", "status": "dropping_off", "note": "Paket dalam perjalanan", "location": "Jakarta"}
	]
}`

func gatewayFor(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGateway(infra.NewBiteshipClient(srv.URL, "biteship_test_key"), nil, "40123")
}

func testItems() []model.SaleItem {
	return []model.SaleItem{{ProductID: "kaos-basic-l-merah", Quantity: 2, WeightGrams: 300}}
}

func TestQuoteReturnsOptionsCheapestFirst(t *testing.T) {
	g := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/rates/couriers", r.URL.Path)
		assert.Equal(t, "biteship_test_key", r.Header.Get("Authorization"))
		w.Write([]byte(ratesBody))
	})

	options := g.Quote(context.Background(), "50241", "", testItems())
	require.Len(t, options, 2)
	assert.Equal(t, "jne", options[0].CourierCode)
	assert.True(t, options[0].Cost.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, "jnt", options[1].CourierCode)
	assert.Equal(t, "1 - 2 days", options[0].ETD)
}

func TestQuoteDegradesToEmptyOnProviderFailure(t *testing.T) {
	g := gatewayFor(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	})

	options := g.Quote(context.Background(), "50241", "jne", testItems())
	assert.NotNil(t, options)
	assert.Empty(t, options)
}

func TestTrackNormalizesHistoryNewestFirst(t *testing.T) {
	g := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/trackings/JNE123/couriers/jne", r.URL.Path)
		w.Write([]byte(trackingBody))
	})

	resp := g.Track(context.Background(), "JNE123", "jne")
	require.True(t, resp.Success)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "dropping_off", resp.Events[0].Status)
	assert.Equal(t, "Paket dalam perjalanan", resp.Events[0].Note)
	assert.Equal(t, "Jakarta", resp.Events[0].Location)
	assert.Equal(t, "dropping_off", resp.Status)
	assert.Equal(t, "picked", resp.Events[1].Status)
}

func TestTrackFailureYieldsEmptyEvents(t *testing.T) {
	g := gatewayFor(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"waybill not found"}`, http.StatusNotFound)
	})

	resp := g.Track(context.Background(), "NOPE", "jne")
	assert.False(t, resp.Success)
	assert.NotNil(t, resp.Events)
	assert.Empty(t, resp.Events)
}

func TestRepeatedFailuresOpenTheBreaker(t *testing.T) {
	g := gatewayFor(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	})

	for i := 0; i < 5; i++ {
		g.Quote(context.Background(), "50241", "jne", testItems())
	}
	assert.Equal(t, infra.CBOpen, g.BreakerState())

	// Further calls fast-fail without reaching the provider.
	_, err := g.RawQuote(context.Background(), dto.ShippingCostRequest{
		DestinationPostalCode: "50241",
		DestinationAreaName:   "Kota Semarang",
		Weight:                600,
	})
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
}

func TestRawQuoteRelaysBodyAndForwardsAreaName(t *testing.T) {
	var forwarded infra.RateRequest
	g := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&forwarded))
		w.Write([]byte(ratesBody))
	})

	raw, err := g.RawQuote(context.Background(), dto.ShippingCostRequest{
		DestinationPostalCode: "50241",
		DestinationAreaName:   "Kota Semarang",
		Weight:                600,
	})
	require.NoError(t, err)
	assert.JSONEq(t, ratesBody, string(raw))
	assert.Equal(t, "Kota Semarang", forwarded.DestinationCity)
	assert.Equal(t, "50241", forwarded.DestinationPostalCode)
	assert.Equal(t, "40123", forwarded.OriginPostalCode)
	assert.Equal(t, 1, forwarded.WeightKg)
}
