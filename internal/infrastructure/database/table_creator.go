// Package database provides schema creation for the Tiendo store
package database

import (
	"database/sql"
	"fmt"
)

// TableCreator handles the creation of the store's database schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the store's tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedInitialContent adds the default catalog data a fresh store needs.
func (tc *TableCreator) SeedInitialContent(db *sql.DB) error {
	// Idempotently create the default "General" category.
	var categoryID int
	err := db.QueryRow("SELECT id_categoria FROM categoria WHERE nombre = 'General'").Scan(&categoryID)
	if err == sql.ErrNoRows {
		if _, err := db.Exec(`INSERT INTO categoria (nombre, descripcion) VALUES (?, ?)`,
			"General", "Productos sin categoría asignada"); err != nil {
			return fmt.Errorf("failed to insert default category: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check for default category: %w", err)
	}
	return nil
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS categoria (id_categoria INTEGER PRIMARY KEY AUTOINCREMENT, nombre TEXT NOT NULL, descripcion TEXT)`,
	`CREATE TABLE IF NOT EXISTS producto (id_producto INTEGER PRIMARY KEY AUTOINCREMENT, nombre TEXT NOT NULL, descripcion TEXT, precio REAL NOT NULL, imagen TEXT, id_categoria INTEGER REFERENCES categoria(id_categoria), stock INTEGER NOT NULL DEFAULT 0)`,
	`CREATE TABLE IF NOT EXISTS cliente (id_cliente INTEGER PRIMARY KEY AUTOINCREMENT, nombre TEXT NOT NULL, apellido TEXT NOT NULL, correo TEXT NOT NULL UNIQUE, contrasena TEXT NOT NULL, telefono TEXT, direccion TEXT, ciudad TEXT, pais TEXT, fecha_registro TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS carrito (id_carrito INTEGER PRIMARY KEY AUTOINCREMENT, id_cliente INTEGER NOT NULL REFERENCES cliente(id_cliente), fecha_creacion TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, activo INTEGER NOT NULL DEFAULT 1)`,
	`CREATE TABLE IF NOT EXISTS detalle_carrito (id_detalle INTEGER PRIMARY KEY AUTOINCREMENT, id_carrito INTEGER NOT NULL REFERENCES carrito(id_carrito), id_producto INTEGER NOT NULL REFERENCES producto(id_producto), cantidad INTEGER NOT NULL DEFAULT 1, precio_unitario REAL NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS pedido (id_pedido INTEGER PRIMARY KEY AUTOINCREMENT, id_cliente INTEGER NOT NULL REFERENCES cliente(id_cliente), fecha_pedido TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, total REAL NOT NULL, estado TEXT NOT NULL DEFAULT 'PENDIENTE')`,
	`CREATE TABLE IF NOT EXISTS detalle_pedido (id_detalle INTEGER PRIMARY KEY AUTOINCREMENT, id_pedido INTEGER NOT NULL REFERENCES pedido(id_pedido), id_producto INTEGER NOT NULL REFERENCES producto(id_producto), cantidad INTEGER NOT NULL, precio_unitario REAL NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS pago (id_pago INTEGER PRIMARY KEY AUTOINCREMENT, id_pedido INTEGER NOT NULL REFERENCES pedido(id_pedido), fecha_pago TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, monto REAL NOT NULL, metodo TEXT NOT NULL, referencia_pago TEXT)`,
	`CREATE TABLE IF NOT EXISTS envio (id_envio INTEGER PRIMARY KEY AUTOINCREMENT, id_pedido INTEGER NOT NULL UNIQUE REFERENCES pedido(id_pedido), direccion_envio TEXT NOT NULL, ciudad_envio TEXT NOT NULL, pais_envio TEXT NOT NULL, estado_envio TEXT NOT NULL DEFAULT 'PREPARACION', fecha_envio TIMESTAMP, fecha_entrega TIMESTAMP, empresa_transporte TEXT, numero_guia TEXT)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_producto_categoria ON producto(id_categoria)`,
	`CREATE INDEX IF NOT EXISTS idx_cliente_correo ON cliente(correo)`,
	`CREATE INDEX IF NOT EXISTS idx_carrito_cliente ON carrito(id_cliente)`,
	`CREATE INDEX IF NOT EXISTS idx_detalle_carrito_carrito ON detalle_carrito(id_carrito)`,
	`CREATE INDEX IF NOT EXISTS idx_detalle_carrito_producto ON detalle_carrito(id_producto)`,
	`CREATE INDEX IF NOT EXISTS idx_pedido_cliente ON pedido(id_cliente)`,
	`CREATE INDEX IF NOT EXISTS idx_pedido_estado ON pedido(estado)`,
	`CREATE INDEX IF NOT EXISTS idx_detalle_pedido_pedido ON detalle_pedido(id_pedido)`,
	`CREATE INDEX IF NOT EXISTS idx_pago_pedido ON pago(id_pedido)`,
	`CREATE INDEX IF NOT EXISTS idx_envio_pedido ON envio(id_pedido)`,
}
