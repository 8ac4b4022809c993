package services

import (
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	commercerepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/security"
)

// ShipmentService manages order shipments. At most one shipment exists per
// order, and every shipment gets a generated tracking number unless the
// caller supplies one.
type ShipmentService struct {
	shipments *commercerepo.ShipmentRepository
	orders    *commercerepo.OrderRepository
	logger    *logging.ChanneledLogger
}

// NewShipmentService creates a new shipment application service
func NewShipmentService(shipments *commercerepo.ShipmentRepository, orders *commercerepo.OrderRepository, logger *logging.ChanneledLogger) *ShipmentService {
	return &ShipmentService{
		shipments: shipments,
		orders:    orders,
		logger:    logger,
	}
}

// CreateShipment validates and records a shipment. Returns ErrShipmentExists
// when the order already has one.
func (s *ShipmentService) CreateShipment(create *commerce.EnvioCreate) (*commerce.Envio, error) {
	pedido, err := s.orders.FindByID(create.IDPedido)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, ErrUnknownOrder
	}

	existing, err := s.shipments.FindByPedido(create.IDPedido)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrShipmentExists
	}

	numeroGuia := ""
	if create.NumeroGuia != nil && *create.NumeroGuia != "" {
		numeroGuia = *create.NumeroGuia
	} else {
		numeroGuia = "SHIP-" + security.GenerateULID()
	}

	envio, err := s.shipments.Create(create, numeroGuia)
	if err != nil {
		return nil, err
	}
	s.logger.Commerce().Info("Shipment created", "id", envio.IDEnvio, "pedido", envio.IDPedido, "guia", numeroGuia)
	return envio, nil
}

// GetShipment returns a shipment by ID, or nil when missing.
func (s *ShipmentService) GetShipment(id int) (*commerce.Envio, error) {
	return s.shipments.FindByID(id)
}

// GetShipmentByOrder returns the shipment of an order, or nil. Returns
// ErrUnknownOrder when the order itself does not exist.
func (s *ShipmentService) GetShipmentByOrder(pedidoID int) (*commerce.Envio, error) {
	pedido, err := s.orders.FindByID(pedidoID)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, ErrUnknownOrder
	}
	return s.shipments.FindByPedido(pedidoID)
}

// ListShipments returns shipments with offset pagination.
func (s *ShipmentService) ListShipments(skip, limit int) ([]*commerce.Envio, error) {
	return s.shipments.FindAll(skip, limit)
}

// UpdateShipment replaces a shipment's mutable fields. Returns nil when
// missing.
func (s *ShipmentService) UpdateShipment(id int, update *commerce.EnvioCreate) (*commerce.Envio, error) {
	return s.shipments.Update(id, update)
}

// DeleteShipment removes a shipment record.
func (s *ShipmentService) DeleteShipment(id int) (bool, error) {
	return s.shipments.Delete(id)
}
