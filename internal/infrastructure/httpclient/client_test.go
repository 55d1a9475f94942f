package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DoJSON_SendsBodyAndHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("X-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "ping", in["msg"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"msg":"pong"}`))
	}))
	defer server.Close()

	client := NewClient("test", time.Second, BreakerSettings{MaxFailures: 3, OpenTimeout: time.Minute}, nil)

	var out map[string]string
	err := client.DoJSON(context.Background(), Request{
		Method: http.MethodPost,
		URL:    server.URL,
		Header: http.Header{"X-Key": []string{"secret"}},
		Body:   map[string]string{"msg": "ping"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "pong", out["msg"])
}

func TestClient_Do_ReturnsBodyOnClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad"}`))
	}))
	defer server.Close()

	client := NewClient("test", time.Second, BreakerSettings{MaxFailures: 1, OpenTimeout: time.Minute}, nil)

	resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, URL: server.URL})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"bad"}`, string(resp.Body))

	// 4xx answers do not trip the breaker.
	_, err = client.Do(context.Background(), Request{Method: http.MethodGet, URL: server.URL})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestClient_Do_OpensBreakerAfterServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("test", time.Second, BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute}, nil)

	for i := 0; i < 2; i++ {
		_, err := client.Do(context.Background(), Request{Method: http.MethodGet, URL: server.URL})
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	}

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, URL: server.URL})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_DoJSON_InvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient("test", time.Second, BreakerSettings{}, nil)

	var out map[string]any
	err := client.DoJSON(context.Background(), Request{Method: http.MethodGet, URL: server.URL}, &out)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Do_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient("test", time.Second, BreakerSettings{}, nil)

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, URL: url})
	assert.ErrorIs(t, err, ErrUnavailable)
}
