package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWriteTimeout(t *testing.T) {
	tests := []struct {
		name     string
		upstream time.Duration
		want     time.Duration
	}{
		{name: "default shipping timeout", upstream: 15 * time.Second, want: 50 * time.Second},
		{name: "short upstream keeps floor", upstream: time.Second, want: 10 * time.Second},
		{name: "zero upstream", upstream: 0, want: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WriteTimeout(tt.upstream))
		})
	}
}

func TestNew_WriteTimeoutCoversChainedCourierCalls(t *testing.T) {
	upstream := 15 * time.Second
	srv := New(8080, upstream, http.NotFoundHandler(), zap.NewNop())

	assert.Equal(t, ":8080", srv.httpServer.Addr)
	assert.Greater(t, srv.httpServer.WriteTimeout, 3*upstream)
}
