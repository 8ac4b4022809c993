package pages

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/api"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/httpx"
)

type testPanel struct {
	content string
}

func (p *testPanel) SetContent(html string) { p.content = html }

type testNotifier struct {
	messages []string
}

func (n *testNotifier) Notify(message string) { n.messages = append(n.messages, message) }

func (n *testNotifier) last() string {
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

// storeStub mimics the subset of the REST API the product page touches.
type storeStub struct {
	requests  atomic.Int64
	cartLines []commerce.DetalleCarritoCreate
}

func (s *storeStub) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/productos/42", func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"id_producto": 42, "nombre": "Mouse", "precio": 19.99, "stock": 10,
		})
	})
	mux.HandleFunc("GET /api/v1/productos/99", func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Producto no encontrado"})
	})
	mux.HandleFunc("GET /api/v1/carritos/cliente/7", func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	mux.HandleFunc("POST /api/v1/carritos", func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id_carrito": 3, "id_cliente": 7, "activo": 1, "detalles": []any{},
		})
	})
	mux.HandleFunc("POST /api/v1/carritos/3/detalles", func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		var line commerce.DetalleCarritoCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&line))
		s.cartLines = append(s.cartLines, line)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id_detalle": 1, "id_carrito": 3, "id_producto": line.IDProducto,
			"cantidad": line.Cantidad, "precio_unitario": line.PrecioUnitario,
		})
	})

	return httptest.NewServer(mux)
}

func newProductController(t *testing.T, serverURL string) (*ProductController, *testPanel, *testNotifier) {
	t.Helper()
	client, err := api.New(nil, serverURL)
	require.NoError(t, err)
	panel := &testPanel{}
	notifier := &testNotifier{}
	ctrl, err := NewProductController(client, 7, panel, notifier)
	require.NoError(t, err)
	return ctrl, panel, notifier
}

func TestNewProductController_Validation(t *testing.T) {
	client, err := api.New(nil, "http://localhost")
	require.NoError(t, err)

	_, err = NewProductController(nil, 7, &testPanel{}, &testNotifier{})
	assert.Error(t, err)
	_, err = NewProductController(client, 0, &testPanel{}, &testNotifier{})
	assert.Error(t, err)
	_, err = NewProductController(client, 7, nil, &testNotifier{})
	assert.Error(t, err)
	_, err = NewProductController(client, 7, &testPanel{}, nil)
	assert.Error(t, err)
}

func TestLoad_RendersNameAndPrice(t *testing.T) {
	stub := &storeStub{}
	server := stub.server(t)
	defer server.Close()
	ctrl, panel, _ := newProductController(t, server.URL)

	require.NoError(t, ctrl.Load(context.Background(), 42))

	assert.Contains(t, panel.content, "Mouse")
	assert.Contains(t, panel.content, "19.99")
	require.NotNil(t, ctrl.Current())
	assert.Equal(t, 42, ctrl.Current().IDProducto)
}

func TestLoad_404RendersNotFoundPanel(t *testing.T) {
	stub := &storeStub{}
	server := stub.server(t)
	defer server.Close()
	ctrl, panel, _ := newProductController(t, server.URL)

	err := ctrl.Load(context.Background(), 99)

	var notFound *httpx.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, panel.content, "page-not-found")
	assert.Nil(t, ctrl.Current())
}

func TestAddToCart_RejectsQuantityBeforeNetwork(t *testing.T) {
	stub := &storeStub{}
	server := stub.server(t)
	defer server.Close()
	ctrl, _, notifier := newProductController(t, server.URL)

	require.NoError(t, ctrl.Load(context.Background(), 42))
	requestsAfterLoad := stub.requests.Load()

	for _, cantidad := range []int{0, -1, -5} {
		err := ctrl.AddToCart(context.Background(), cantidad)
		var validation *httpx.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "cantidad", validation.Field)
	}

	assert.Equal(t, requestsAfterLoad, stub.requests.Load(), "rejected quantities must not reach the network")
	assert.Contains(t, notifier.last(), "al menos 1")
}

func TestAddToCart_MouseEndToEnd(t *testing.T) {
	stub := &storeStub{}
	server := stub.server(t)
	defer server.Close()
	ctrl, _, notifier := newProductController(t, server.URL)

	require.NoError(t, ctrl.Load(context.Background(), 42))
	require.NoError(t, ctrl.AddToCart(context.Background(), 3))

	require.Len(t, stub.cartLines, 1)
	assert.Equal(t, 42, stub.cartLines[0].IDProducto)
	assert.Equal(t, 3, stub.cartLines[0].Cantidad)
	assert.InDelta(t, 19.99, stub.cartLines[0].PrecioUnitario, 0.001)

	assert.Contains(t, notifier.last(), "3")
	assert.Contains(t, notifier.last(), "Mouse")
}

func TestAddToCart_FailurePreservesRenderedProduct(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/productos/42", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id_producto": 42, "nombre": "Mouse", "precio": 19.99, "stock": 10})
	})
	mux.HandleFunc("GET /api/v1/carritos/cliente/7", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	ctrl, panel, notifier := newProductController(t, server.URL)

	require.NoError(t, ctrl.Load(context.Background(), 42))
	rendered := panel.content

	err := ctrl.AddToCart(context.Background(), 2)
	require.Error(t, err)

	assert.Equal(t, rendered, panel.content, "secondary failure must not destroy rendered content")
	assert.Contains(t, notifier.last(), "No se pudo")
}
