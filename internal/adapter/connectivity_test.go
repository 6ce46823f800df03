package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPConnectivityProbe_Reachable(t *testing.T) {
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	probe := NewHTTPConnectivityProbe(ConnectivityConfig{ProbeURL: srv.URL, Timeout: time.Second})

	assert.True(t, probe.HasNetwork(context.Background()))
	assert.Equal(t, http.MethodHead, method)
}

func TestHTTPConnectivityProbe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	probe := NewHTTPConnectivityProbe(ConnectivityConfig{ProbeURL: url, Timeout: 200 * time.Millisecond})
	assert.False(t, probe.HasNetwork(context.Background()))
}

func TestHTTPConnectivityProbe_EmptyURL(t *testing.T) {
	probe := NewHTTPConnectivityProbe(ConnectivityConfig{})
	assert.False(t, probe.HasNetwork(context.Background()))
}
