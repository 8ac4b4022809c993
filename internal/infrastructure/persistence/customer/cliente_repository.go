// Package customer provides the customer account repository
package customer

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/customer"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

type ClienteRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewClienteRepository(db *sql.DB, logger *logging.ChanneledLogger) *ClienteRepository {
	return &ClienteRepository{db: db, logger: logger}
}

const clienteColumns = "id_cliente, nombre, apellido, correo, contrasena, telefono, direccion, ciudad, pais, fecha_registro"

func scanCliente(row interface{ Scan(...any) error }) (*customer.Cliente, error) {
	var c customer.Cliente
	var telefono, direccion, ciudad, pais sql.NullString

	if err := row.Scan(&c.IDCliente, &c.Nombre, &c.Apellido, &c.Correo, &c.Contrasena,
		&telefono, &direccion, &ciudad, &pais, &c.FechaRegistro); err != nil {
		return nil, err
	}

	if telefono.Valid {
		c.Telefono = &telefono.String
	}
	if direccion.Valid {
		c.Direccion = &direccion.String
	}
	if ciudad.Valid {
		c.Ciudad = &ciudad.String
	}
	if pais.Valid {
		c.Pais = &pais.String
	}
	return &c, nil
}

// Create inserts a customer. The password must already be hashed.
func (r *ClienteRepository) Create(create *customer.ClienteCreate, passwordHash string) (*customer.Cliente, error) {
	result, err := r.db.Exec(
		`INSERT INTO cliente (nombre, apellido, correo, contrasena, telefono, direccion, ciudad, pais) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		create.Nombre, create.Apellido, create.Correo, passwordHash,
		create.Telefono, create.Direccion, create.Ciudad, create.Pais,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read customer id: %w", err)
	}
	return r.FindByID(int(id))
}

// FindByID returns the customer or nil when it does not exist.
func (r *ClienteRepository) FindByID(id int) (*customer.Cliente, error) {
	row := r.db.QueryRow(`SELECT `+clienteColumns+` FROM cliente WHERE id_cliente = ?`, id)
	c, err := scanCliente(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load customer %d: %w", id, err)
	}
	return c, nil
}

// FindByCorreo returns the customer with the given email, or nil.
func (r *ClienteRepository) FindByCorreo(correo string) (*customer.Cliente, error) {
	row := r.db.QueryRow(`SELECT `+clienteColumns+` FROM cliente WHERE correo = ?`, correo)
	c, err := scanCliente(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load customer by email: %w", err)
	}
	return c, nil
}

// FindAll returns customers with offset pagination.
func (r *ClienteRepository) FindAll(skip, limit int) ([]*customer.Cliente, error) {
	rows, err := r.db.Query(`SELECT `+clienteColumns+` FROM cliente ORDER BY id_cliente LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	clientes := []*customer.Cliente{}
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		clientes = append(clientes, c)
	}
	return clientes, rows.Err()
}

// Update overwrites a customer's profile fields. An empty passwordHash keeps
// the stored hash. Returns nil when the customer does not exist.
func (r *ClienteRepository) Update(id int, update *customer.ClienteCreate, passwordHash string) (*customer.Cliente, error) {
	var result sql.Result
	var err error

	if passwordHash != "" {
		result, err = r.db.Exec(
			`UPDATE cliente SET nombre = ?, apellido = ?, correo = ?, contrasena = ?, telefono = ?, direccion = ?, ciudad = ?, pais = ? WHERE id_cliente = ?`,
			update.Nombre, update.Apellido, update.Correo, passwordHash,
			update.Telefono, update.Direccion, update.Ciudad, update.Pais, id,
		)
	} else {
		result, err = r.db.Exec(
			`UPDATE cliente SET nombre = ?, apellido = ?, correo = ?, telefono = ?, direccion = ?, ciudad = ?, pais = ? WHERE id_cliente = ?`,
			update.Nombre, update.Apellido, update.Correo,
			update.Telefono, update.Direccion, update.Ciudad, update.Pais, id,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update customer %d: %w", id, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// Delete removes a customer. Reports whether a row was deleted.
func (r *ClienteRepository) Delete(id int) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM cliente WHERE id_cliente = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete customer %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// CountAll returns the number of customers.
func (r *ClienteRepository) CountAll() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM cliente`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// CountWithOrders counts distinct customers that have placed at least one order.
func (r *ClienteRepository) CountWithOrders() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(DISTINCT c.id_cliente) FROM cliente c JOIN pedido p ON p.id_cliente = c.id_cliente`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers with orders: %w", err)
	}
	return count, nil
}

// CountRegisteredSince counts customers registered on or after the given time.
func (r *ClienteRepository) CountRegisteredSince(since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM cliente WHERE fecha_registro >= ?`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent customers: %w", err)
	}
	return count, nil
}

// Latest returns the most recently registered customer, or nil on an empty table.
func (r *ClienteRepository) Latest() (*customer.Cliente, error) {
	row := r.db.QueryRow(`SELECT ` + clienteColumns + ` FROM cliente ORDER BY id_cliente DESC LIMIT 1`)
	c, err := scanCliente(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest customer: %w", err)
	}
	return c, nil
}
