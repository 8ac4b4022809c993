package services

import (
	"fmt"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	catalogrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/catalog"
	commercerepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/commerce"
	customerrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/customer"
)

// CartService orchestrates shopping cart operations.
type CartService struct {
	carts    *commercerepo.CartRepository
	products *catalogrepo.ProductRepository
	clientes *customerrepo.ClienteRepository
	logger   *logging.ChanneledLogger
}

// NewCartService creates a new cart application service
func NewCartService(carts *commercerepo.CartRepository, products *catalogrepo.ProductRepository, clientes *customerrepo.ClienteRepository, logger *logging.ChanneledLogger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		clientes: clientes,
		logger:   logger,
	}
}

// CreateCart creates a cart for a customer, optionally with initial lines.
// Line prices default to the product's current price when omitted.
func (s *CartService) CreateCart(create *commerce.CarritoCreate) (*commerce.Carrito, error) {
	cliente, err := s.clientes.FindByID(create.IDCliente)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, ErrUnknownCustomer
	}

	for i := range create.Detalles {
		if err := s.fillLine(&create.Detalles[i]); err != nil {
			return nil, err
		}
	}

	carrito, err := s.carts.Create(create)
	if err != nil {
		return nil, err
	}
	s.logger.Commerce().Info("Cart created", "id", carrito.IDCarrito, "cliente", carrito.IDCliente)
	return carrito, nil
}

// GetCart returns a cart with its lines, or nil when missing.
func (s *CartService) GetCart(id int) (*commerce.Carrito, error) {
	return s.carts.FindByID(id)
}

// ListCarts returns carts with offset pagination.
func (s *CartService) ListCarts(skip, limit int) ([]*commerce.Carrito, error) {
	return s.carts.FindAll(skip, limit)
}

// ListCartsByCustomer returns every cart of a customer.
func (s *CartService) ListCartsByCustomer(clienteID int) ([]*commerce.Carrito, error) {
	cliente, err := s.clientes.FindByID(clienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, ErrUnknownCustomer
	}
	return s.carts.FindByCliente(clienteID)
}

// GetCartLines returns the lines of a cart, or nil when the cart is missing.
func (s *CartService) GetCartLines(id int) ([]commerce.DetalleCarrito, error) {
	carrito, err := s.carts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if carrito == nil {
		return nil, nil
	}
	return carrito.Detalles, nil
}

// AddLine appends a product line to a cart. Returns nil when the cart is
// missing.
func (s *CartService) AddLine(cartID int, line *commerce.DetalleCarritoCreate) (*commerce.DetalleCarrito, error) {
	carrito, err := s.carts.FindByID(cartID)
	if err != nil {
		return nil, err
	}
	if carrito == nil {
		return nil, nil
	}

	if err := s.fillLine(line); err != nil {
		return nil, err
	}
	detalle, err := s.carts.AddDetalle(cartID, line)
	if err != nil {
		return nil, err
	}
	s.logger.Commerce().Debug("Cart line added", "carrito", cartID, "producto", line.IDProducto, "cantidad", line.Cantidad)
	return detalle, nil
}

// UpdateCart replaces the cart's owner and active flag. Returns nil when
// missing.
func (s *CartService) UpdateCart(id int, update *commerce.CarritoCreate) (*commerce.Carrito, error) {
	return s.carts.Update(id, update)
}

// DeleteCart removes a cart and its lines.
func (s *CartService) DeleteCart(id int) (bool, error) {
	return s.carts.Delete(id)
}

// fillLine validates the product reference and quantity, defaulting the unit
// price to the product's current price.
func (s *CartService) fillLine(line *commerce.DetalleCarritoCreate) error {
	producto, err := s.products.FindByID(line.IDProducto)
	if err != nil {
		return err
	}
	if producto == nil {
		return ErrUnknownProduct
	}
	if line.Cantidad <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", ErrInvalidLine)
	}
	if producto.Stock < line.Cantidad {
		return fmt.Errorf("%w: stock insuficiente para el producto %d", ErrInvalidLine, line.IDProducto)
	}
	if line.PrecioUnitario == 0 {
		line.PrecioUnitario = producto.Precio
	}
	return nil
}
