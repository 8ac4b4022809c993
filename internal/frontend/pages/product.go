package pages

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/catalog"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/api"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/httpx"
)

// ProductController drives the product detail page: load one product,
// validate the requested quantity and add it to the customer's active cart.
type ProductController struct {
	client    *api.Client
	clienteID int
	panel     Panel
	notifier  Notifier

	current *catalog.Producto
}

// NewProductController validates collaborators and the customer identity.
func NewProductController(client *api.Client, clienteID int, panel Panel, notifier Notifier) (*ProductController, error) {
	if client == nil {
		return nil, fmt.Errorf("product controller requires an api client")
	}
	if clienteID <= 0 {
		return nil, fmt.Errorf("product controller requires a customer identity")
	}
	if panel == nil {
		return nil, fmt.Errorf("product controller requires a panel")
	}
	if notifier == nil {
		return nil, fmt.Errorf("product controller requires a notifier")
	}
	return &ProductController{client: client, clienteID: clienteID, panel: panel, notifier: notifier}, nil
}

// Load fetches the product and renders its name and price. A 404 renders a
// dedicated not-found panel; other failures render a generic error panel.
func (p *ProductController) Load(ctx context.Context, productID int) error {
	producto, err := p.client.GetProduct(ctx, productID)
	if err != nil {
		var notFound *httpx.NotFoundError
		if errors.As(err, &notFound) {
			p.current = nil
			p.panel.SetContent(notFoundPanelHTML("Producto"))
			return err
		}
		p.current = nil
		p.panel.SetContent(errorPanelHTML("No se pudo cargar el producto"))
		return err
	}

	p.current = producto
	p.panel.SetContent(fmt.Sprintf(
		`<div class="product-detail"><h1>%s</h1><p class="price">$%s</p></div>`,
		html.EscapeString(producto.Nombre), formatPrecio(producto.Precio)))
	return nil
}

// Current returns the loaded product, nil before a successful Load.
func (p *ProductController) Current() *catalog.Producto { return p.current }

// AddToCart validates cantidad before any network call, then appends a line
// to the customer's active cart, creating one when none exists. Success
// notifies with the quantity and product name; failure only notifies, the
// rendered product stays on screen.
func (p *ProductController) AddToCart(ctx context.Context, cantidad int) error {
	if cantidad < 1 {
		err := &httpx.ValidationError{Field: "cantidad", Message: "la cantidad debe ser al menos 1"}
		p.notifier.Notify("La cantidad debe ser al menos 1")
		return err
	}
	if p.current == nil {
		err := &httpx.ValidationError{Field: "producto", Message: "no hay producto cargado"}
		p.notifier.Notify("Carga un producto antes de agregarlo al carrito")
		return err
	}

	carrito, err := p.activeCart(ctx)
	if err != nil {
		p.notifier.Notify("No se pudo agregar al carrito")
		return err
	}

	line := &commerce.DetalleCarritoCreate{
		IDProducto:     p.current.IDProducto,
		Cantidad:       cantidad,
		PrecioUnitario: p.current.Precio,
	}
	if _, err := p.client.AddCartLine(ctx, carrito.IDCarrito, line); err != nil {
		p.notifier.Notify("No se pudo agregar al carrito")
		return err
	}

	p.notifier.Notify(fmt.Sprintf("Se agregaron %d %s al carrito", cantidad, p.current.Nombre))
	return nil
}

// activeCart returns the customer's active cart, creating one when none of
// the existing carts is active.
func (p *ProductController) activeCart(ctx context.Context) (*commerce.Carrito, error) {
	carritos, err := p.client.ListCartsByCustomer(ctx, p.clienteID)
	if err != nil {
		var notFound *httpx.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		carritos = nil
	}

	for i := range carritos {
		if carritos[i].Activo == 1 {
			return &carritos[i], nil
		}
	}

	return p.client.CreateCart(ctx, &commerce.CarritoCreate{IDCliente: p.clienteID})
}
