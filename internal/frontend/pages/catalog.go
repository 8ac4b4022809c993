package pages

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/catalog"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/api"
)

// CatalogController renders the product listing, optionally narrowed to a
// category.
type CatalogController struct {
	client *api.Client
	panel  Panel
}

func NewCatalogController(client *api.Client, panel Panel) (*CatalogController, error) {
	if client == nil {
		return nil, fmt.Errorf("catalog controller requires an api client")
	}
	if panel == nil {
		return nil, fmt.Errorf("catalog controller requires a panel")
	}
	return &CatalogController{client: client, panel: panel}, nil
}

// Load renders the full catalog.
func (c *CatalogController) Load(ctx context.Context) error {
	productos, err := c.client.ListProducts(ctx)
	if err != nil {
		c.panel.SetContent(errorPanelHTML("No se pudo cargar el catálogo"))
		return err
	}
	c.panel.SetContent(renderCatalog(productos))
	return nil
}

// LoadCategory renders the products of one category.
func (c *CatalogController) LoadCategory(ctx context.Context, categoriaID int) error {
	productos, err := c.client.ListProductsByCategory(ctx, categoriaID)
	if err != nil {
		c.panel.SetContent(errorPanelHTML("No se pudo cargar la categoría"))
		return err
	}
	c.panel.SetContent(renderCatalog(productos))
	return nil
}

func renderCatalog(productos []catalog.Producto) string {
	if len(productos) == 0 {
		return `<div class="catalog-empty"><p>No hay productos disponibles</p></div>`
	}

	var b strings.Builder
	b.WriteString(`<ul class="catalog">`)
	for _, producto := range productos {
		fmt.Fprintf(&b,
			`<li class="catalog-item" data-id="%d"><span class="name">%s</span><span class="price">$%s</span></li>`,
			producto.IDProducto, html.EscapeString(producto.Nombre), formatPrecio(producto.Precio))
	}
	b.WriteString(`</ul>`)
	return b.String()
}
