package services

import (
	"time"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/admin"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	catalogrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/catalog"
	commercerepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/commerce"
	customerrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/customer"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/database"
)

// AdminService aggregates the dashboard statistics, debug inspection and the
// live store snapshot pushed over the stats stream.
type AdminService struct {
	db                *database.Database
	products          *catalogrepo.ProductRepository
	categories        *catalogrepo.CategoryRepository
	clientes          *customerrepo.ClienteRepository
	orders            *commercerepo.OrderRepository
	lowStockThreshold int
	logger            *logging.ChanneledLogger
}

// NewAdminService creates a new admin application service
func NewAdminService(db *database.Database, products *catalogrepo.ProductRepository, categories *catalogrepo.CategoryRepository, clientes *customerrepo.ClienteRepository, orders *commercerepo.OrderRepository, lowStockThreshold int, logger *logging.ChanneledLogger) *AdminService {
	return &AdminService{
		db:                db,
		products:          products,
		categories:        categories,
		clientes:          clientes,
		orders:            orders,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// ProductStats builds the product dashboard card.
func (s *AdminService) ProductStats() (*admin.ProductStats, error) {
	total, err := s.products.CountAll()
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.CountLowStock(s.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	missingImage, err := s.products.CountMissingImage()
	if err != nil {
		return nil, err
	}
	return &admin.ProductStats{
		TotalProductos:     total,
		ProductosBajoStock: lowStock,
		ProductosSinImagen: missingImage,
	}, nil
}

// OrderStats builds the order dashboard card.
func (s *AdminService) OrderStats() (*admin.OrderStats, error) {
	total, err := s.orders.CountAll()
	if err != nil {
		return nil, err
	}
	today, err := s.orders.CountToday()
	if err != nil {
		return nil, err
	}
	ventas, err := s.orders.SumVentas()
	if err != nil {
		return nil, err
	}
	porEstado, err := s.orders.CountByEstado()
	if err != nil {
		return nil, err
	}
	return &admin.OrderStats{
		TotalPedidos:  total,
		PedidosHoy:    today,
		TotalVentas:   ventas,
		PedidosEstado: porEstado,
	}, nil
}

// UserStats builds the customer dashboard card. Usuarios nuevos covers the
// last seven days.
func (s *AdminService) UserStats() (*admin.UserStats, error) {
	total, err := s.clientes.CountAll()
	if err != nil {
		return nil, err
	}
	withOrders, err := s.clientes.CountWithOrders()
	if err != nil {
		return nil, err
	}
	recent, err := s.clientes.CountRegisteredSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	return &admin.UserStats{
		TotalUsuarios:      total,
		UsuariosConPedidos: withOrders,
		UsuariosNuevos:     recent,
	}, nil
}

// DebugInfo builds the connectivity and row-count report. Individual query
// failures are reported inside the payload rather than failing the request.
func (s *AdminService) DebugInfo() *admin.DebugInfo {
	info := &admin.DebugInfo{}

	if err := s.db.Conn.Ping(); err != nil {
		info.Error = err.Error()
		return info
	}
	info.DatabaseOK = true

	var err error
	if info.TotalCategorias, err = s.categories.CountAll(); err != nil {
		info.Error = err.Error()
		return info
	}
	if info.TotalProductos, err = s.products.CountAll(); err != nil {
		info.Error = err.Error()
		return info
	}
	if info.TotalClientes, err = s.clientes.CountAll(); err != nil {
		info.Error = err.Error()
		return info
	}
	if info.TotalPedidos, err = s.orders.CountAll(); err != nil {
		info.Error = err.Error()
		return info
	}

	if producto, err := s.products.Latest(); err == nil && producto != nil {
		info.UltimoProducto = map[string]any{
			"id_producto": producto.IDProducto,
			"nombre":      producto.Nombre,
			"precio":      producto.Precio,
			"stock":       producto.Stock,
		}
	}
	if cliente, err := s.clientes.Latest(); err == nil && cliente != nil {
		info.UltimoCliente = map[string]any{
			"id_cliente": cliente.IDCliente,
			"nombre":     cliente.Nombre,
			"correo":     cliente.Correo,
		}
	}
	if pedidos, err := s.orders.Latest(1); err == nil && len(pedidos) > 0 {
		info.UltimoPedido = map[string]any{
			"id_pedido":  pedidos[0].IDPedido,
			"id_cliente": pedidos[0].IDCliente,
			"total":      pedidos[0].Total,
			"estado":     pedidos[0].Estado,
		}
	}
	return info
}

// StoreSnapshot builds the payload pushed to connected admin consoles.
func (s *AdminService) StoreSnapshot() (*admin.StoreSnapshot, error) {
	totalProductos, err := s.products.CountAll()
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.CountLowStock(s.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	totalPedidos, err := s.orders.CountAll()
	if err != nil {
		return nil, err
	}
	pedidosHoy, err := s.orders.CountToday()
	if err != nil {
		return nil, err
	}
	ventas, err := s.orders.SumVentas()
	if err != nil {
		return nil, err
	}
	totalClientes, err := s.clientes.CountAll()
	if err != nil {
		return nil, err
	}

	return &admin.StoreSnapshot{
		Timestamp:      time.Now().UTC(),
		TotalProductos: totalProductos,
		TotalPedidos:   totalPedidos,
		PedidosHoy:     pedidosHoy,
		TotalVentas:    ventas,
		TotalClientes:  totalClientes,
		BajoStock:      lowStock,
	}, nil
}
