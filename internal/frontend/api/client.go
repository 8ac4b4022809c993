// Package api is the typed client the storefront's page controllers use to
// talk to the Tiendo REST API. Responses decode into the shared domain
// entities; failures map onto the httpx error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/catalog"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/customer"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/httpx"
)

// Client calls /api/v1 endpoints. Same-origin paths resolve against the
// base URL.
type Client struct {
	client  *http.Client
	baseURL string
}

// New creates an API client. A nil http.Client falls back to
// http.DefaultClient.
func New(client *http.Client, baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("api client requires a base URL")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// GetProduct fetches one product. A 404 becomes *httpx.NotFoundError so
// callers can render a dedicated not-found view.
func (c *Client) GetProduct(ctx context.Context, id int) (*catalog.Producto, error) {
	var producto catalog.Producto
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/productos/%d", id), nil, &producto, "producto"); err != nil {
		return nil, err
	}
	return &producto, nil
}

// ListProducts fetches the catalog.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Producto, error) {
	var productos []catalog.Producto
	if err := c.do(ctx, http.MethodGet, "/api/v1/productos", nil, &productos, "productos"); err != nil {
		return nil, err
	}
	return productos, nil
}

// ListProductsByCategory fetches the products of one category.
func (c *Client) ListProductsByCategory(ctx context.Context, categoriaID int) ([]catalog.Producto, error) {
	var productos []catalog.Producto
	path := fmt.Sprintf("/api/v1/productos/categoria/%d", categoriaID)
	if err := c.do(ctx, http.MethodGet, path, nil, &productos, "categoría"); err != nil {
		return nil, err
	}
	return productos, nil
}

// CreateCustomer registers a new customer account.
func (c *Client) CreateCustomer(ctx context.Context, create *customer.ClienteCreate) (*customer.Cliente, error) {
	var cliente customer.Cliente
	if err := c.do(ctx, http.MethodPost, "/api/v1/clientes", create, &cliente, "cliente"); err != nil {
		return nil, err
	}
	return &cliente, nil
}

// Login authenticates a customer. Bad credentials surface as *httpx.HTTPError
// with status 401.
func (c *Client) Login(ctx context.Context, correo, contrasena string) (*customer.LoginResult, error) {
	body := map[string]string{"correo": correo, "contrasena": contrasena}
	var result customer.LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/clientes/login", body, &result, "cliente"); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCustomer fetches one customer profile.
func (c *Client) GetCustomer(ctx context.Context, id int) (*customer.Cliente, error) {
	var cliente customer.Cliente
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/clientes/%d", id), nil, &cliente, "cliente"); err != nil {
		return nil, err
	}
	return &cliente, nil
}

// UpdateCustomer updates a customer profile.
func (c *Client) UpdateCustomer(ctx context.Context, id int, update *customer.ClienteCreate) (*customer.Cliente, error) {
	var cliente customer.Cliente
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/clientes/%d", id), update, &cliente, "cliente"); err != nil {
		return nil, err
	}
	return &cliente, nil
}

// ListCartsByCustomer fetches a customer's carts, newest first.
func (c *Client) ListCartsByCustomer(ctx context.Context, clienteID int) ([]commerce.Carrito, error) {
	var carritos []commerce.Carrito
	path := fmt.Sprintf("/api/v1/carritos/cliente/%d", clienteID)
	if err := c.do(ctx, http.MethodGet, path, nil, &carritos, "cliente"); err != nil {
		return nil, err
	}
	return carritos, nil
}

// CreateCart creates a cart for a customer.
func (c *Client) CreateCart(ctx context.Context, create *commerce.CarritoCreate) (*commerce.Carrito, error) {
	var carrito commerce.Carrito
	if err := c.do(ctx, http.MethodPost, "/api/v1/carritos", create, &carrito, "carrito"); err != nil {
		return nil, err
	}
	return &carrito, nil
}

// AddCartLine appends a line to an existing cart.
func (c *Client) AddCartLine(ctx context.Context, carritoID int, line *commerce.DetalleCarritoCreate) (*commerce.DetalleCarrito, error) {
	var detalle commerce.DetalleCarrito
	path := fmt.Sprintf("/api/v1/carritos/%d/detalles", carritoID)
	if err := c.do(ctx, http.MethodPost, path, line, &detalle, "carrito"); err != nil {
		return nil, err
	}
	return &detalle, nil
}

// GetCartLines fetches a cart's lines.
func (c *Client) GetCartLines(ctx context.Context, carritoID int) ([]commerce.DetalleCarrito, error) {
	var detalles []commerce.DetalleCarrito
	path := fmt.Sprintf("/api/v1/carritos/%d/detalles", carritoID)
	if err := c.do(ctx, http.MethodGet, path, nil, &detalles, "carrito"); err != nil {
		return nil, err
	}
	return detalles, nil
}

// UpdateCart replaces a cart's mutable fields, deactivating it on checkout.
func (c *Client) UpdateCart(ctx context.Context, carritoID int, update *commerce.CarritoCreate) (*commerce.Carrito, error) {
	var carrito commerce.Carrito
	path := fmt.Sprintf("/api/v1/carritos/%d", carritoID)
	if err := c.do(ctx, http.MethodPut, path, update, &carrito, "carrito"); err != nil {
		return nil, err
	}
	return &carrito, nil
}

// CreateOrder creates an order with its lines.
func (c *Client) CreateOrder(ctx context.Context, create *commerce.PedidoCreate) (*commerce.Pedido, error) {
	var pedido commerce.Pedido
	if err := c.do(ctx, http.MethodPost, "/api/v1/pedidos", create, &pedido, "pedido"); err != nil {
		return nil, err
	}
	return &pedido, nil
}

// CreatePayment records a payment against an order.
func (c *Client) CreatePayment(ctx context.Context, create *commerce.PagoCreate) (*commerce.Pago, error) {
	var pago commerce.Pago
	if err := c.do(ctx, http.MethodPost, "/api/v1/pagos", create, &pago, "pago"); err != nil {
		return nil, err
	}
	return &pago, nil
}

// CreateShipment opens a shipment for an order.
func (c *Client) CreateShipment(ctx context.Context, create *commerce.EnvioCreate) (*commerce.Envio, error) {
	var envio commerce.Envio
	if err := c.do(ctx, http.MethodPost, "/api/v1/envios", create, &envio, "envío"); err != nil {
		return nil, err
	}
	return &envio, nil
}

// do performs one request and decodes a 2xx JSON body into out. Non-2xx
// responses map to the httpx taxonomy; resource names a 404's subject.
func (c *Client) do(ctx context.Context, method, path string, body, out any, resource string) error {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &httpx.NetworkError{URL: url, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &httpx.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &httpx.NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := httpx.HTTPError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Detail:     decodeDetail(payload),
		}
		if resp.StatusCode == http.StatusNotFound {
			return &httpx.NotFoundError{Resource: resource, HTTPError: httpErr}
		}
		return &httpErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func decodeDetail(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, candidate := range []string{payload.Detail, payload.Error, payload.Message} {
			if candidate != "" {
				return candidate
			}
		}
	}
	return strings.TrimSpace(string(body))
}
