package pages

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/api"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/httpx"
)

// CartController renders the active cart and turns it into an order with a
// payment and shipment on checkout.
type CartController struct {
	client    *api.Client
	clienteID int
	panel     Panel
	notifier  Notifier

	activeCart *commerce.Carrito
}

// CheckoutInfo carries the payment and shipping details entered at checkout.
type CheckoutInfo struct {
	MetodoPago     string
	DireccionEnvio string
	CiudadEnvio    string
	PaisEnvio      string
}

func NewCartController(client *api.Client, clienteID int, panel Panel, notifier Notifier) (*CartController, error) {
	if client == nil {
		return nil, fmt.Errorf("cart controller requires an api client")
	}
	if clienteID <= 0 {
		return nil, fmt.Errorf("cart controller requires a customer identity")
	}
	if panel == nil {
		return nil, fmt.Errorf("cart controller requires a panel")
	}
	if notifier == nil {
		return nil, fmt.Errorf("cart controller requires a notifier")
	}
	return &CartController{client: client, clienteID: clienteID, panel: panel, notifier: notifier}, nil
}

// Load renders the customer's active cart with product names and line
// totals. No active cart renders an empty-cart panel.
func (c *CartController) Load(ctx context.Context) error {
	carritos, err := c.client.ListCartsByCustomer(ctx, c.clienteID)
	if err != nil {
		var notFound *httpx.NotFoundError
		if !errors.As(err, &notFound) {
			c.panel.SetContent(errorPanelHTML("No se pudo cargar el carrito"))
			return err
		}
		carritos = nil
	}

	c.activeCart = nil
	for i := range carritos {
		if carritos[i].Activo == 1 {
			c.activeCart = &carritos[i]
			break
		}
	}

	if c.activeCart == nil || len(c.activeCart.Detalles) == 0 {
		c.panel.SetContent(`<div class="cart-empty"><p>Tu carrito está vacío</p></div>`)
		return nil
	}

	markup, err := c.renderLines(ctx, c.activeCart.Detalles)
	if err != nil {
		c.panel.SetContent(errorPanelHTML("No se pudo cargar el carrito"))
		return err
	}
	c.panel.SetContent(markup)
	return nil
}

func (c *CartController) renderLines(ctx context.Context, detalles []commerce.DetalleCarrito) (string, error) {
	var b strings.Builder
	b.WriteString(`<ul class="cart-lines">`)

	var total float64
	for _, detalle := range detalles {
		producto, err := c.client.GetProduct(ctx, detalle.IDProducto)
		if err != nil {
			return "", err
		}
		lineTotal := float64(detalle.Cantidad) * detalle.PrecioUnitario
		total += lineTotal
		fmt.Fprintf(&b,
			`<li class="cart-line"><span class="name">%s</span><span class="qty">%d</span><span class="line-total">$%s</span></li>`,
			html.EscapeString(producto.Nombre), detalle.Cantidad, formatPrecio(lineTotal))
	}

	b.WriteString(`</ul>`)
	fmt.Fprintf(&b, `<p class="cart-total">Total: $%s</p>`, formatPrecio(total))
	return b.String(), nil
}

// Checkout turns the active cart into an order, records a payment for the
// order total and opens a shipment. The cart is deactivated afterwards.
// Failure notifies and leaves the rendered cart intact.
func (c *CartController) Checkout(ctx context.Context, info CheckoutInfo) (*commerce.Pedido, error) {
	if c.activeCart == nil || len(c.activeCart.Detalles) == 0 {
		err := &httpx.ValidationError{Field: "carrito", Message: "el carrito está vacío"}
		c.notifier.Notify("Tu carrito está vacío")
		return nil, err
	}

	lines := make([]commerce.DetallePedidoCreate, 0, len(c.activeCart.Detalles))
	var total float64
	for _, detalle := range c.activeCart.Detalles {
		lines = append(lines, commerce.DetallePedidoCreate{
			IDProducto:     detalle.IDProducto,
			Cantidad:       detalle.Cantidad,
			PrecioUnitario: detalle.PrecioUnitario,
		})
		total += float64(detalle.Cantidad) * detalle.PrecioUnitario
	}

	pedido, err := c.client.CreateOrder(ctx, &commerce.PedidoCreate{
		IDCliente: c.clienteID,
		Total:     total,
		Detalles:  lines,
	})
	if err != nil {
		c.notifier.Notify("No se pudo completar el pedido")
		return nil, err
	}

	if _, err := c.client.CreatePayment(ctx, &commerce.PagoCreate{
		IDPedido: pedido.IDPedido,
		Monto:    total,
		Metodo:   info.MetodoPago,
	}); err != nil {
		c.notifier.Notify("El pedido se creó pero el pago falló")
		return pedido, err
	}

	if _, err := c.client.CreateShipment(ctx, &commerce.EnvioCreate{
		IDPedido:       pedido.IDPedido,
		DireccionEnvio: info.DireccionEnvio,
		CiudadEnvio:    info.CiudadEnvio,
		PaisEnvio:      info.PaisEnvio,
	}); err != nil {
		c.notifier.Notify("El pedido se creó pero el envío falló")
		return pedido, err
	}

	inactive := 0
	if _, err := c.client.UpdateCart(ctx, c.activeCart.IDCarrito, &commerce.CarritoCreate{
		IDCliente: c.clienteID,
		Activo:    &inactive,
	}); err != nil {
		c.notifier.Notify("El pedido se creó pero el carrito no se pudo cerrar")
		return pedido, err
	}

	c.activeCart = nil
	c.notifier.Notify(fmt.Sprintf("Pedido #%d creado", pedido.IDPedido))
	return pedido, nil
}
