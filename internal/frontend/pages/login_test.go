package pages

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/frontend/api"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/httpx"
)

func newLoginController(t *testing.T, serverURL string) (*LoginController, *testNotifier) {
	t.Helper()
	client, err := api.New(nil, serverURL)
	require.NoError(t, err)
	notifier := &testNotifier{}
	ctrl, err := NewLoginController(client, notifier)
	require.NoError(t, err)
	return ctrl, notifier
}

func TestLoginSubmit_EmptyCredentialsSkipNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()
	ctrl, notifier := newLoginController(t, server.URL)

	for _, tc := range []struct{ correo, contrasena string }{
		{"", "secreto"},
		{"ana@example.com", ""},
		{"", ""},
	} {
		_, err := ctrl.Submit(context.Background(), tc.correo, tc.contrasena)
		var validation *httpx.ValidationError
		require.ErrorAs(t, err, &validation)
	}

	assert.Zero(t, requests)
	assert.Equal(t, "Correo y contraseña son obligatorios", notifier.last())
}

func TestLoginSubmit_WrongCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Credenciales incorrectas"})
	}))
	defer server.Close()
	ctrl, notifier := newLoginController(t, server.URL)

	_, err := ctrl.Submit(context.Background(), "ana@example.com", "equivocada")

	require.Error(t, err)
	assert.Equal(t, "Correo o contraseña incorrectos", notifier.last())
}

func TestLoginSubmit_ServerFailureNotifiesGenerically(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()
	ctrl, notifier := newLoginController(t, server.URL)

	_, err := ctrl.Submit(context.Background(), "ana@example.com", "secreto")

	require.Error(t, err)
	assert.Equal(t, "No se pudo iniciar sesión", notifier.last())
}

func TestLoginSubmit_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/clientes/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["correo"])
		json.NewEncoder(w).Encode(map[string]any{"message": "Login exitoso", "cliente_id": 7, "nombre": "Ana", "correo": "ana@example.com"})
	}))
	defer server.Close()
	ctrl, notifier := newLoginController(t, server.URL)

	result, err := ctrl.Submit(context.Background(), "ana@example.com", "secreto")

	require.NoError(t, err)
	assert.Equal(t, 7, result.ClienteID)
	assert.Equal(t, "Hola, Ana", notifier.last())
}
