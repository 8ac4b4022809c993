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
)

func newCatalogController(t *testing.T, serverURL string) (*CatalogController, *testPanel) {
	t.Helper()
	client, err := api.New(nil, serverURL)
	require.NoError(t, err)
	panel := &testPanel{}
	ctrl, err := NewCatalogController(client, panel)
	require.NoError(t, err)
	return ctrl, panel
}

func TestCatalogLoad_RendersItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/productos", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{
			{"id_producto": 1, "nombre": "Mouse", "precio": 19.99, "stock": 5},
			{"id_producto": 2, "nombre": "Teclado", "precio": 49.50, "stock": 3},
		})
	}))
	defer server.Close()
	ctrl, panel := newCatalogController(t, server.URL)

	require.NoError(t, ctrl.Load(context.Background()))

	assert.Contains(t, panel.content, `data-id="1"`)
	assert.Contains(t, panel.content, "Mouse")
	assert.Contains(t, panel.content, "$19.99")
	assert.Contains(t, panel.content, "Teclado")
}

func TestCatalogLoad_EmptyCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{})
	}))
	defer server.Close()
	ctrl, panel := newCatalogController(t, server.URL)

	require.NoError(t, ctrl.Load(context.Background()))

	assert.Contains(t, panel.content, "No hay productos disponibles")
}

func TestCatalogLoad_FailureReplacesPanel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()
	ctrl, panel := newCatalogController(t, server.URL)

	require.Error(t, ctrl.Load(context.Background()))

	assert.Contains(t, panel.content, "page-error")
}

func TestCatalogLoadCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/productos/categoria/3", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{
			{"id_producto": 7, "nombre": "Lámpara", "precio": 12.00, "stock": 8},
		})
	}))
	defer server.Close()
	ctrl, panel := newCatalogController(t, server.URL)

	require.NoError(t, ctrl.LoadCategory(context.Background(), 3))

	assert.Contains(t, panel.content, "Lámpara")
}
