// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handler layer.
var (
	ErrDuplicateEmail     = errors.New("el correo ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidEstado      = errors.New("estado de pedido no válido")
	ErrInvalidLine        = errors.New("detalle no válido")
	ErrInvalidMetodo      = errors.New("método de pago no válido")
	ErrInvalidMonto       = errors.New("el monto debe ser mayor que cero")
	ErrShipmentExists     = errors.New("el pedido ya tiene un envío")
	ErrUnknownCategory    = errors.New("la categoría no existe")
	ErrUnknownOrder       = errors.New("el pedido no existe")
	ErrUnknownCustomer    = errors.New("el cliente no existe")
	ErrUnknownProduct     = errors.New("el producto no existe")
)
