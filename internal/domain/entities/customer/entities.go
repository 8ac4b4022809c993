// Package customer defines the customer account domain entities.
package customer

import "time"

// Cliente is a customer account. The password hash never leaves the server;
// it is excluded from serialization.
type Cliente struct {
	IDCliente     int       `json:"id_cliente"`
	Nombre        string    `json:"nombre"`
	Apellido      string    `json:"apellido"`
	Correo        string    `json:"correo"`
	Contrasena    string    `json:"-"`
	Telefono      *string   `json:"telefono,omitempty"`
	Direccion     *string   `json:"direccion,omitempty"`
	Ciudad        *string   `json:"ciudad,omitempty"`
	Pais          *string   `json:"pais,omitempty"`
	FechaRegistro time.Time `json:"fecha_registro"`
}

// ClienteCreate carries the fields accepted when registering or updating a
// customer. Contrasena is plaintext on the wire and hashed before storage.
type ClienteCreate struct {
	Nombre     string  `json:"nombre" binding:"required"`
	Apellido   string  `json:"apellido" binding:"required"`
	Correo     string  `json:"correo" binding:"required"`
	Contrasena string  `json:"contrasena"`
	Telefono   *string `json:"telefono"`
	Direccion  *string `json:"direccion"`
	Ciudad     *string `json:"ciudad"`
	Pais       *string `json:"pais"`
}

// LoginResult is the response body of POST /api/v1/clientes/login.
type LoginResult struct {
	Message   string `json:"message"`
	ClienteID int    `json:"cliente_id"`
	Nombre    string `json:"nombre"`
	Correo    string `json:"correo"`
}
