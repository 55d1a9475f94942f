package chilexpress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"praktico/internal/domain"
	apperrors "praktico/internal/errors"
	"praktico/internal/infrastructure/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAdapter(t *testing.T, apiKey, url string) *Adapter {
	t.Helper()

	coverage, err := LoadCoverage()
	require.NoError(t, err)

	client := httpclient.NewClient(ProviderName, time.Second, httpclient.BreakerSettings{MaxFailures: 10, OpenTimeout: time.Minute}, zap.NewNop())
	return NewAdapter(Config{APIKey: apiKey, RatingURL: url}, client, coverage, zap.NewNop())
}

func quoteRequest(origin, destination string, weight float64) domain.QuoteRequest {
	return domain.QuoteRequest{
		OriginComuna:      origin,
		DestinationComuna: destination,
		Parcel:            domain.Parcel{LengthCm: 20, WidthCm: 15, HeightCm: 10, WeightKg: weight},
		DeclaredValue:     25000,
	}
}

func TestAdapter_Quote_FallbackWithoutAPIKey(t *testing.T) {
	adapter := newTestAdapter(t, "", "http://127.0.0.1:0")

	result, err := adapter.Quote(context.Background(), quoteRequest("Providencia", "providencia", 1))

	require.NoError(t, err)
	assert.True(t, result.Estimated())
	require.Len(t, result.Options, 1)
	assert.Equal(t, int64(4300), result.Options[0].Price)
	assert.Equal(t, 1, result.Options[0].EtaDays)
	assert.Equal(t, "ChileExpress estándar (estimado)", result.Options[0].Name)
	assert.Equal(t, result.Options[0], *result.Recommended)
}

func TestAdapter_Quote_FallbackEtaForDifferentComunas(t *testing.T) {
	adapter := newTestAdapter(t, "", "http://127.0.0.1:0")

	result, err := adapter.Quote(context.Background(), quoteRequest("Providencia", "Temuco", 2.5))

	require.NoError(t, err)
	assert.Equal(t, int64(5500), result.Options[0].Price)
	assert.Equal(t, 2, result.Options[0].EtaDays)
}

func TestAdapter_Quote_DefaultsWeight(t *testing.T) {
	adapter := newTestAdapter(t, "", "http://127.0.0.1:0")

	result, err := adapter.Quote(context.Background(), quoteRequest("Providencia", "Temuco", 0))

	require.NoError(t, err)
	assert.Equal(t, int64(3900), result.Options[0].Price)
}

func TestAdapter_Quote_MapsRatingOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-123", r.Header.Get("Ocp-Apim-Subscription-Key"))

		var body rateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "PROV", body.OriginCountyCode)
		assert.Equal(t, "TEMU", body.DestinationCountyCode)
		assert.Equal(t, ratePackage{Weight: "1.25", Height: "10", Width: "15", Length: "20"}, body.Package)
		assert.Equal(t, "25000", body.DeclaredWorth)
		assert.Equal(t, productTypeParcel, body.ProductType)

		_, _ = w.Write([]byte(`{
			"data": {"courierServiceOptions": [
				{"serviceTypeCode": 3, "serviceDescription": "PRIORITARIO", "serviceValue": "6590.6", "deliveryType": 1},
				{"serviceDescription": "", "serviceValue": "4100"}
			]},
			"statusCode": 0,
			"statusDescription": "Success"
		}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(t, "key-123", server.URL)

	result, err := adapter.Quote(context.Background(), quoteRequest("Providencia", "Temuco", 1.25))

	require.NoError(t, err)
	assert.False(t, result.Estimated())
	assert.Equal(t, []domain.ShippingOption{
		{ID: 3, Name: "PRIORITARIO", DeliveryType: "Domicilio", ServiceType: "PRIORITARIO", Price: 6591, EtaDays: 1},
		{ID: 2, Name: "Chilexpress", DeliveryType: "Domicilio", ServiceType: "Normal", Price: 4100, EtaDays: 2},
	}, result.Options)
	assert.Equal(t, 3, result.Recommended.ID)
}

func TestAdapter_Quote_FallsBackOnUpstreamProblems(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{name: "server error", status: http.StatusInternalServerError, payload: `{}`},
		{name: "client error", status: http.StatusUnauthorized, payload: `{"statusDescription":"bad key"}`},
		{name: "non zero status code", status: http.StatusOK, payload: `{"statusCode":-1,"statusDescription":"sin cobertura"}`},
		{name: "empty options", status: http.StatusOK, payload: `{"data":{"courierServiceOptions":[]},"statusCode":0}`},
		{name: "invalid json", status: http.StatusOK, payload: `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer server.Close()

			adapter := newTestAdapter(t, "key-123", server.URL)

			result, err := adapter.Quote(context.Background(), quoteRequest("Santiago", "Santiago", 1))

			require.NoError(t, err)
			assert.Equal(t, int32(1), calls.Load())
			assert.True(t, result.Estimated())
			require.Len(t, result.Options, 1)
			assert.Equal(t, int64(4300), result.Options[0].Price)
		})
	}
}

func TestAdapter_Quote_ValidationErrors(t *testing.T) {
	adapter := newTestAdapter(t, "key-123", "http://127.0.0.1:0")

	tests := []struct {
		name    string
		req     domain.QuoteRequest
		message string
	}{
		{name: "missing origin", req: quoteRequest(" ", "Temuco", 1), message: "Falta comuna de origen."},
		{name: "missing destination", req: quoteRequest("Temuco", "", 1), message: "Falta comuna de destino."},
		{name: "negative weight", req: quoteRequest("Temuco", "Osorno", -1), message: "Peso del paquete inválido."},
		{name: "uncovered destination", req: quoteRequest("Temuco", "X", 1), message: `Comuna de destino no encontrada en cobertura: "X".`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := adapter.Quote(context.Background(), tt.req)

			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}
