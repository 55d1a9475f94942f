package product

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"praktico/internal/domain"
	"praktico/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCartUseCase struct {
	ResolveParcelFunc func(ctx context.Context, lines []CartLine) (*CartParcel, error)
}

func (m *mockCartUseCase) ResolveParcel(ctx context.Context, lines []CartLine) (*CartParcel, error) {
	return m.ResolveParcelFunc(ctx, lines)
}

func post(c *Controller, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/cart/parcel", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.HandleCartParcel(rec, req)
	return rec
}

func TestHandleCartParcel_Success(t *testing.T) {
	var captured []CartLine
	uc := &mockCartUseCase{ResolveParcelFunc: func(ctx context.Context, lines []CartLine) (*CartParcel, error) {
		captured = lines
		return &CartParcel{
			Parcel:        domain.Parcel{LengthCm: 30, WidthCm: 21, HeightCm: 10, WeightKg: 0.8},
			HasAny:        true,
			DeclaredValue: 7980,
		}, nil
	}}

	rec := post(NewController(uc, zap.NewNop()), `{"items":[{"productId":"p1","quantity":2}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"ok": true,
		"parcel": {"lengthCm": 30, "widthCm": 21, "heightCm": 10, "weightKg": 0.8},
		"hasAny": true,
		"declaredValueCLP": 7980
	}`, rec.Body.String())
	assert.Equal(t, []CartLine{{ProductID: "p1", Quantity: 2}}, captured)
}

func TestHandleCartParcel_Validation(t *testing.T) {
	uc := &mockCartUseCase{ResolveParcelFunc: func(context.Context, []CartLine) (*CartParcel, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	}}

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{name: "malformed", body: `{"items":[`, wantError: "JSON inválido."},
		{name: "empty cart", body: `{"items":[]}`, wantError: "Carrito inválido."},
		{name: "zero quantity", body: `{"items":[{"productId":"p1","quantity":0}]}`, wantError: "Carrito inválido."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(NewController(uc, zap.NewNop()), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.OK)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestHandleCartParcel_Error(t *testing.T) {
	uc := &mockCartUseCase{ResolveParcelFunc: func(context.Context, []CartLine) (*CartParcel, error) {
		return nil, errors.New("db down")
	}}

	rec := post(NewController(uc, zap.NewNop()), `{"items":[{"productId":"p1","quantity":1}]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "No se pudo calcular el paquete.")
}
