package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplash_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	p := NewProber(srv.URL+"/api/", nil)
	assert.Equal(t, srv.URL+"/api/health", p.URL())

	s := p.Splash(context.Background())
	assert.True(t, s.OK)
	assert.Equal(t, "API Connected", s.Message)
	assert.Equal(t, time.Second, s.ProceedAfter)
	assert.Equal(t, int64(1000), s.ProceedAfterMs)
}

func TestSplash_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewProber(srv.URL, nil).Splash(context.Background())
	assert.False(t, s.OK)
	assert.Equal(t, "API Error: HTTP 503: Service Unavailable", s.Message)
	assert.Equal(t, 2*time.Second, s.ProceedAfter)
}

func TestProbe_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	err := NewProber(base, nil).Probe(context.Background())
	require.Error(t, err)
}

func TestNewProber_Fallback(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewProber("  ", nil).BaseURL)
}
