package pages

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/customer"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/api"
)

func newUserController(t *testing.T, serverURL string) (*UserController, *testPanel, *testNotifier) {
	t.Helper()
	client, err := api.New(nil, serverURL)
	require.NoError(t, err)
	panel := &testPanel{}
	notifier := &testNotifier{}
	ctrl, err := NewUserController(client, 7, panel, notifier)
	require.NoError(t, err)
	return ctrl, panel, notifier
}

func profileServer(t *testing.T, failUpdates bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/clientes/7", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(customer.Cliente{IDCliente: 7, Nombre: "Ana", Apellido: "García", Correo: "ana@example.com"})
	})
	mux.HandleFunc("PUT /api/v1/clientes/7", func(w http.ResponseWriter, r *http.Request) {
		if failUpdates {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "El correo ya está registrado"})
			return
		}
		var update customer.ClienteCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		json.NewEncoder(w).Encode(customer.Cliente{IDCliente: 7, Nombre: update.Nombre, Apellido: update.Apellido, Correo: update.Correo})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestUserLoad_RendersProfile(t *testing.T) {
	server := profileServer(t, false)
	ctrl, panel, _ := newUserController(t, server.URL)

	require.NoError(t, ctrl.Load(context.Background()))

	assert.Contains(t, panel.content, "user-profile")
	assert.Contains(t, panel.content, "Ana García")
	assert.Contains(t, panel.content, "ana@example.com")
	require.NotNil(t, ctrl.Current())
	assert.Equal(t, 7, ctrl.Current().IDCliente)
}

func TestUserLoad_FailureReplacesPanel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()
	ctrl, panel, _ := newUserController(t, server.URL)

	require.Error(t, ctrl.Load(context.Background()))

	assert.Contains(t, panel.content, "page-error")
	assert.Contains(t, panel.content, "No se pudo cargar el perfil")
	assert.Nil(t, ctrl.Current())
}

func TestUserUpdate_SuccessReRenders(t *testing.T) {
	server := profileServer(t, false)
	ctrl, panel, notifier := newUserController(t, server.URL)
	require.NoError(t, ctrl.Load(context.Background()))

	err := ctrl.Update(context.Background(), &customer.ClienteCreate{
		Nombre:   "Ana María",
		Apellido: "García",
		Correo:   "ana.maria@example.com",
	})

	require.NoError(t, err)
	assert.Contains(t, panel.content, "Ana María")
	assert.Contains(t, panel.content, "ana.maria@example.com")
	assert.Equal(t, "Perfil actualizado", notifier.last())
}

func TestUserUpdate_FailurePreservesRenderedProfile(t *testing.T) {
	server := profileServer(t, true)
	ctrl, panel, notifier := newUserController(t, server.URL)
	require.NoError(t, ctrl.Load(context.Background()))
	rendered := panel.content

	err := ctrl.Update(context.Background(), &customer.ClienteCreate{
		Nombre: "Otra", Apellido: "Persona", Correo: "otra@example.com",
	})

	require.Error(t, err)
	assert.Equal(t, rendered, panel.content)
	assert.Equal(t, "No se pudo actualizar el perfil", notifier.last())
	assert.Equal(t, "Ana", ctrl.Current().Nombre)
}
