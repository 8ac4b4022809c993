// Package commerce provides cart, order, payment and shipment repositories
package commerce

import (
	"database/sql"
	"fmt"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

type CartRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewCartRepository(db *sql.DB, logger *logging.ChanneledLogger) *CartRepository {
	return &CartRepository{db: db, logger: logger}
}

// Create inserts a cart along with any initial detail lines.
func (r *CartRepository) Create(create *commerce.CarritoCreate) (*commerce.Carrito, error) {
	activo := 1
	if create.Activo != nil {
		activo = *create.Activo
	}

	result, err := r.db.Exec(`INSERT INTO carrito (id_cliente, activo) VALUES (?, ?)`, create.IDCliente, activo)
	if err != nil {
		return nil, fmt.Errorf("failed to insert cart: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read cart id: %w", err)
	}

	for _, detalle := range create.Detalles {
		if _, err := r.AddDetalle(int(id), &detalle); err != nil {
			return nil, err
		}
	}
	return r.FindByID(int(id))
}

// FindByID returns the cart with its detail lines, or nil.
func (r *CartRepository) FindByID(id int) (*commerce.Carrito, error) {
	var c commerce.Carrito
	err := r.db.QueryRow(`SELECT id_carrito, id_cliente, fecha_creacion, activo FROM carrito WHERE id_carrito = ?`, id).
		Scan(&c.IDCarrito, &c.IDCliente, &c.FechaCreacion, &c.Activo)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %d: %w", id, err)
	}

	detalles, err := r.FindDetalles(id)
	if err != nil {
		return nil, err
	}
	c.Detalles = detalles
	return &c, nil
}

// FindByCliente returns every cart belonging to a customer, newest first.
func (r *CartRepository) FindByCliente(clienteID int) ([]*commerce.Carrito, error) {
	rows, err := r.db.Query(`SELECT id_carrito FROM carrito WHERE id_cliente = ? ORDER BY id_carrito DESC`, clienteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list carts for customer %d: %w", clienteID, err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cart row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	carritos := []*commerce.Carrito{}
	for _, id := range ids {
		c, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if c != nil {
			carritos = append(carritos, c)
		}
	}
	return carritos, nil
}

// FindAll returns carts with offset pagination.
func (r *CartRepository) FindAll(skip, limit int) ([]*commerce.Carrito, error) {
	rows, err := r.db.Query(`SELECT id_carrito FROM carrito ORDER BY id_carrito LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list carts: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cart row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	carritos := []*commerce.Carrito{}
	for _, id := range ids {
		c, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if c != nil {
			carritos = append(carritos, c)
		}
	}
	return carritos, nil
}

// Update changes the cart's owner and active flag. Returns nil when the cart
// does not exist.
func (r *CartRepository) Update(id int, update *commerce.CarritoCreate) (*commerce.Carrito, error) {
	activo := 1
	if update.Activo != nil {
		activo = *update.Activo
	}

	result, err := r.db.Exec(`UPDATE carrito SET id_cliente = ?, activo = ? WHERE id_carrito = ?`, update.IDCliente, activo, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart %d: %w", id, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// Delete removes a cart and its detail lines. Reports whether a row was deleted.
func (r *CartRepository) Delete(id int) (bool, error) {
	if _, err := r.db.Exec(`DELETE FROM detalle_carrito WHERE id_carrito = ?`, id); err != nil {
		return false, fmt.Errorf("failed to delete cart lines for cart %d: %w", id, err)
	}

	result, err := r.db.Exec(`DELETE FROM carrito WHERE id_carrito = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete cart %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// AddDetalle appends a line to a cart.
func (r *CartRepository) AddDetalle(carritoID int, detalle *commerce.DetalleCarritoCreate) (*commerce.DetalleCarrito, error) {
	result, err := r.db.Exec(
		`INSERT INTO detalle_carrito (id_carrito, id_producto, cantidad, precio_unitario) VALUES (?, ?, ?, ?)`,
		carritoID, detalle.IDProducto, detalle.Cantidad, detalle.PrecioUnitario,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert cart line: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read cart line id: %w", err)
	}

	return &commerce.DetalleCarrito{
		IDDetalle:      int(id),
		IDCarrito:      carritoID,
		IDProducto:     detalle.IDProducto,
		Cantidad:       detalle.Cantidad,
		PrecioUnitario: detalle.PrecioUnitario,
	}, nil
}

// FindDetalles returns every line of a cart.
func (r *CartRepository) FindDetalles(carritoID int) ([]commerce.DetalleCarrito, error) {
	rows, err := r.db.Query(
		`SELECT id_detalle, id_carrito, id_producto, cantidad, precio_unitario FROM detalle_carrito WHERE id_carrito = ? ORDER BY id_detalle`,
		carritoID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines for cart %d: %w", carritoID, err)
	}
	defer rows.Close()

	detalles := []commerce.DetalleCarrito{}
	for rows.Next() {
		var d commerce.DetalleCarrito
		if err := rows.Scan(&d.IDDetalle, &d.IDCarrito, &d.IDProducto, &d.Cantidad, &d.PrecioUnitario); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		detalles = append(detalles, d)
	}
	return detalles, rows.Err()
}
