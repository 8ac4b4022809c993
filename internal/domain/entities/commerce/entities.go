// Package commerce defines the cart, order, payment and shipment domain
// entities. Wire names match the Tiendo REST API contract.
package commerce

import "time"

// Order states.
const (
	EstadoPendiente  = "PENDIENTE"
	EstadoProcesando = "PROCESANDO"
	EstadoEnviado    = "ENVIADO"
	EstadoEntregado  = "ENTREGADO"
	EstadoCancelado  = "CANCELADO"
)

// ValidEstadoPedido reports whether estado is a recognized order state.
func ValidEstadoPedido(estado string) bool {
	switch estado {
	case EstadoPendiente, EstadoProcesando, EstadoEnviado, EstadoEntregado, EstadoCancelado:
		return true
	}
	return false
}

// Payment methods.
const (
	MetodoTarjetaCredito = "tarjeta_credito"
	MetodoTarjetaDebito  = "tarjeta_debito"
	MetodoTransferencia  = "transferencia"
	MetodoEfectivo       = "efectivo"
	MetodoPaypal         = "paypal"
)

// ValidMetodoPago reports whether metodo is a recognized payment method.
func ValidMetodoPago(metodo string) bool {
	switch metodo {
	case MetodoTarjetaCredito, MetodoTarjetaDebito, MetodoTransferencia, MetodoEfectivo, MetodoPaypal:
		return true
	}
	return false
}

// Shipment default state.
const EstadoEnvioPreparacion = "PREPARACION"

// Carrito is a shopping cart. Activo is 1 while the cart is the customer's
// current cart and 0 once checked out.
type Carrito struct {
	IDCarrito     int              `json:"id_carrito"`
	IDCliente     int              `json:"id_cliente"`
	FechaCreacion time.Time        `json:"fecha_creacion"`
	Activo        int              `json:"activo"`
	Detalles      []DetalleCarrito `json:"detalles"`
}

// CarritoCreate carries the fields accepted when creating or updating a cart.
type CarritoCreate struct {
	IDCliente int                    `json:"id_cliente" binding:"required"`
	Activo    *int                   `json:"activo"`
	Detalles  []DetalleCarritoCreate `json:"detalles"`
}

// DetalleCarrito is a single cart line.
type DetalleCarrito struct {
	IDDetalle      int     `json:"id_detalle"`
	IDCarrito      int     `json:"id_carrito"`
	IDProducto     int     `json:"id_producto"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}

// DetalleCarritoCreate carries a new cart line.
type DetalleCarritoCreate struct {
	IDProducto     int     `json:"id_producto" binding:"required"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}

// Pedido is an order.
type Pedido struct {
	IDPedido    int             `json:"id_pedido"`
	IDCliente   int             `json:"id_cliente"`
	FechaPedido time.Time       `json:"fecha_pedido"`
	Total       float64         `json:"total"`
	Estado      string          `json:"estado"`
	Detalles    []DetallePedido `json:"detalles"`
}

// PedidoCreate carries the fields accepted when creating or updating an order.
type PedidoCreate struct {
	IDCliente int                   `json:"id_cliente" binding:"required"`
	Total     float64               `json:"total"`
	Estado    *string               `json:"estado"`
	Detalles  []DetallePedidoCreate `json:"detalles"`
}

// DetallePedido is a single order line.
type DetallePedido struct {
	IDDetalle      int     `json:"id_detalle"`
	IDPedido       int     `json:"id_pedido"`
	IDProducto     int     `json:"id_producto"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}

// DetallePedidoCreate carries a new order line.
type DetallePedidoCreate struct {
	IDProducto     int     `json:"id_producto" binding:"required"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}

// Pago is a payment against an order.
type Pago struct {
	IDPago         int       `json:"id_pago"`
	IDPedido       int       `json:"id_pedido"`
	FechaPago      time.Time `json:"fecha_pago"`
	Monto          float64   `json:"monto"`
	Metodo         string    `json:"metodo"`
	ReferenciaPago *string   `json:"referencia_pago,omitempty"`
}

// PagoCreate carries the fields accepted when recording a payment.
type PagoCreate struct {
	IDPedido       int     `json:"id_pedido" binding:"required"`
	Monto          float64 `json:"monto"`
	Metodo         string  `json:"metodo" binding:"required"`
	ReferenciaPago *string `json:"referencia_pago"`
}

// Envio is a shipment; at most one exists per order.
type Envio struct {
	IDEnvio           int        `json:"id_envio"`
	IDPedido          int        `json:"id_pedido"`
	DireccionEnvio    string     `json:"direccion_envio"`
	CiudadEnvio       string     `json:"ciudad_envio"`
	PaisEnvio         string     `json:"pais_envio"`
	EstadoEnvio       string     `json:"estado_envio"`
	FechaEnvio        *time.Time `json:"fecha_envio,omitempty"`
	FechaEntrega      *time.Time `json:"fecha_entrega,omitempty"`
	EmpresaTransporte *string    `json:"empresa_transporte,omitempty"`
	NumeroGuia        *string    `json:"numero_guia,omitempty"`
}

// EnvioCreate carries the fields accepted when creating or updating a shipment.
type EnvioCreate struct {
	IDPedido          int        `json:"id_pedido" binding:"required"`
	DireccionEnvio    string     `json:"direccion_envio" binding:"required"`
	CiudadEnvio       string     `json:"ciudad_envio" binding:"required"`
	PaisEnvio         string     `json:"pais_envio" binding:"required"`
	EstadoEnvio       *string    `json:"estado_envio"`
	FechaEnvio        *time.Time `json:"fecha_envio"`
	FechaEntrega      *time.Time `json:"fecha_entrega"`
	EmpresaTransporte *string    `json:"empresa_transporte"`
	NumeroGuia        *string    `json:"numero_guia"`
}
