package services

import (
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	commercerepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/security"
)

// PaymentService records payments against orders. Every payment gets a
// generated ULID reference unless the caller supplies one.
type PaymentService struct {
	payments *commercerepo.PaymentRepository
	orders   *commercerepo.OrderRepository
	logger   *logging.ChanneledLogger
}

// NewPaymentService creates a new payment application service
func NewPaymentService(payments *commercerepo.PaymentRepository, orders *commercerepo.OrderRepository, logger *logging.ChanneledLogger) *PaymentService {
	return &PaymentService{
		payments: payments,
		orders:   orders,
		logger:   logger,
	}
}

// CreatePayment validates and records a payment.
func (s *PaymentService) CreatePayment(create *commerce.PagoCreate) (*commerce.Pago, error) {
	if !commerce.ValidMetodoPago(create.Metodo) {
		return nil, ErrInvalidMetodo
	}
	if create.Monto <= 0 {
		return nil, ErrInvalidMonto
	}

	pedido, err := s.orders.FindByID(create.IDPedido)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, ErrUnknownOrder
	}

	referencia := ""
	if create.ReferenciaPago != nil && *create.ReferenciaPago != "" {
		referencia = *create.ReferenciaPago
	} else {
		referencia = "PAY-" + security.GenerateULID()
	}

	pago, err := s.payments.Create(create, referencia)
	if err != nil {
		return nil, err
	}
	s.logger.Commerce().Info("Payment recorded", "id", pago.IDPago, "pedido", pago.IDPedido, "monto", pago.Monto, "metodo", pago.Metodo)
	return pago, nil
}

// GetPayment returns a payment by ID, or nil when missing.
func (s *PaymentService) GetPayment(id int) (*commerce.Pago, error) {
	return s.payments.FindByID(id)
}

// ListPayments returns payments with offset pagination.
func (s *PaymentService) ListPayments(skip, limit int) ([]*commerce.Pago, error) {
	return s.payments.FindAll(skip, limit)
}

// ListPaymentsByOrder returns every payment recorded against an order.
func (s *PaymentService) ListPaymentsByOrder(pedidoID int) ([]*commerce.Pago, error) {
	pedido, err := s.orders.FindByID(pedidoID)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, ErrUnknownOrder
	}
	return s.payments.FindByPedido(pedidoID)
}

// UpdatePayment replaces a payment's mutable fields. Returns nil when
// missing.
func (s *PaymentService) UpdatePayment(id int, update *commerce.PagoCreate) (*commerce.Pago, error) {
	if !commerce.ValidMetodoPago(update.Metodo) {
		return nil, ErrInvalidMetodo
	}
	return s.payments.Update(id, update)
}

// DeletePayment removes a payment record.
func (s *PaymentService) DeletePayment(id int) (bool, error) {
	return s.payments.Delete(id)
}
