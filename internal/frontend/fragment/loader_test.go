package fragment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/frontend/httpx"
)

func TestNewLoader_RequiresBaseURL(t *testing.T) {
	_, err := NewLoader(nil, "", nil)
	assert.Error(t, err)
}

func TestLoad_ReturnsFragmentBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login-template", r.URL.Path)
		w.Write([]byte(`<div class="auth-form-small">login</div>`))
	}))
	defer server.Close()

	loader, err := NewLoader(server.Client(), server.URL, nil)
	require.NoError(t, err)

	markup, err := loader.Load(context.Background(), "/login-template", PurposeModalView)
	require.NoError(t, err)
	assert.Contains(t, markup, "auth-form-small")
}

func TestLoad_Non2xxBecomesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Módulo no encontrado"}`))
	}))
	defer server.Close()

	loader, err := NewLoader(server.Client(), server.URL, nil)
	require.NoError(t, err)

	_, err = loader.Load(context.Background(), "/admin/modules/nope", PurposeMenuItem)
	var httpErr *httpx.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "Módulo no encontrado", httpErr.Detail)
}

func TestLoad_TransportFailureBecomesNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	loader, err := NewLoader(nil, server.URL, nil)
	require.NoError(t, err)

	_, err = loader.Load(context.Background(), "/account-menu", PurposeModalView)
	var netErr *httpx.NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	loader, err := NewLoader(server.Client(), server.URL+"/", nil)
	require.NoError(t, err)

	_, err = loader.Load(context.Background(), "account-menu", PurposeModalView)
	require.NoError(t, err)
	assert.Equal(t, "/account-menu", requested)
}
