package services

import (
	"fmt"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/admin"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	catalogrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/catalog"
	commercerepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/commerce"
	customerrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/customer"
)

// OrderService orchestrates order lifecycle operations.
type OrderService struct {
	orders   *commercerepo.OrderRepository
	products *catalogrepo.ProductRepository
	clientes *customerrepo.ClienteRepository
	logger   *logging.ChanneledLogger
}

// NewOrderService creates a new order application service
func NewOrderService(orders *commercerepo.OrderRepository, products *catalogrepo.ProductRepository, clientes *customerrepo.ClienteRepository, logger *logging.ChanneledLogger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		clientes: clientes,
		logger:   logger,
	}
}

// CreateOrder validates and stores an order, decrementing product stock for
// each line. A zero total is computed from the lines.
func (s *OrderService) CreateOrder(create *commerce.PedidoCreate) (*commerce.Pedido, error) {
	cliente, err := s.clientes.FindByID(create.IDCliente)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, ErrUnknownCustomer
	}
	if create.Estado != nil && !commerce.ValidEstadoPedido(*create.Estado) {
		return nil, ErrInvalidEstado
	}

	var computedTotal float64
	for i := range create.Detalles {
		line := &create.Detalles[i]
		producto, err := s.products.FindByID(line.IDProducto)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, ErrUnknownProduct
		}
		if line.Cantidad <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", ErrInvalidLine)
		}
		if producto.Stock < line.Cantidad {
			return nil, fmt.Errorf("%w: stock insuficiente para el producto %d", ErrInvalidLine, line.IDProducto)
		}
		if line.PrecioUnitario == 0 {
			line.PrecioUnitario = producto.Precio
		}
		computedTotal += line.PrecioUnitario * float64(line.Cantidad)
	}
	if create.Total == 0 {
		create.Total = computedTotal
	}

	pedido, err := s.orders.Create(create)
	if err != nil {
		return nil, err
	}

	for _, line := range pedido.Detalles {
		if err := s.products.AdjustStock(line.IDProducto, -line.Cantidad); err != nil {
			s.logger.Commerce().Error("Failed to decrement stock", "pedido", pedido.IDPedido, "producto", line.IDProducto, "error", err)
		}
	}

	s.logger.Commerce().Info("Order created", "id", pedido.IDPedido, "cliente", pedido.IDCliente, "total", pedido.Total)
	return pedido, nil
}

// GetOrder returns an order with its lines, or nil when missing.
func (s *OrderService) GetOrder(id int) (*commerce.Pedido, error) {
	return s.orders.FindByID(id)
}

// ListOrders returns orders with offset pagination.
func (s *OrderService) ListOrders(skip, limit int) ([]*commerce.Pedido, error) {
	return s.orders.FindAll(skip, limit)
}

// ListOrdersByCustomer returns every order of a customer.
func (s *OrderService) ListOrdersByCustomer(clienteID int) ([]*commerce.Pedido, error) {
	cliente, err := s.clientes.FindByID(clienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, ErrUnknownCustomer
	}
	return s.orders.FindByCliente(clienteID)
}

// UpdateOrder replaces an order's mutable fields. Returns nil when missing.
func (s *OrderService) UpdateOrder(id int, update *commerce.PedidoCreate) (*commerce.Pedido, error) {
	if update.Estado != nil && !commerce.ValidEstadoPedido(*update.Estado) {
		return nil, ErrInvalidEstado
	}
	return s.orders.Update(id, update)
}

// SetOrderEstado transitions an order to a new state. Returns
// ErrInvalidEstado for unknown states and nil when the order is missing.
func (s *OrderService) SetOrderEstado(id int, estado string) (*commerce.Pedido, error) {
	if !commerce.ValidEstadoPedido(estado) {
		return nil, ErrInvalidEstado
	}
	pedido, err := s.orders.SetEstado(id, estado)
	if err != nil {
		return nil, err
	}
	if pedido != nil {
		s.logger.Commerce().Info("Order state changed", "id", id, "estado", estado)
	}
	return pedido, nil
}

// DeleteOrder removes an order and its lines.
func (s *OrderService) DeleteOrder(id int) (bool, error) {
	deleted, err := s.orders.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Commerce().Info("Order deleted", "id", id)
	}
	return deleted, nil
}

// FilterOrders returns orders matching the admin console filter. Returns
// ErrInvalidEstado when the filter names an unknown state.
func (s *OrderService) FilterOrders(filter *admin.OrderFilter) ([]*commerce.Pedido, error) {
	if filter.Estado != "" && !commerce.ValidEstadoPedido(filter.Estado) {
		return nil, ErrInvalidEstado
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.orders.Filter(filter)
}
