package commerce

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/admin"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

type OrderRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewOrderRepository(db *sql.DB, logger *logging.ChanneledLogger) *OrderRepository {
	return &OrderRepository{db: db, logger: logger}
}

// Create inserts an order with its detail lines.
func (r *OrderRepository) Create(create *commerce.PedidoCreate) (*commerce.Pedido, error) {
	estado := commerce.EstadoPendiente
	if create.Estado != nil {
		estado = *create.Estado
	}

	result, err := r.db.Exec(`INSERT INTO pedido (id_cliente, total, estado) VALUES (?, ?, ?)`,
		create.IDCliente, create.Total, estado)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read order id: %w", err)
	}

	for _, detalle := range create.Detalles {
		if _, err := r.AddDetalle(int(id), &detalle); err != nil {
			return nil, err
		}
	}
	return r.FindByID(int(id))
}

// FindByID returns the order with its detail lines, or nil.
func (r *OrderRepository) FindByID(id int) (*commerce.Pedido, error) {
	var p commerce.Pedido
	err := r.db.QueryRow(`SELECT id_pedido, id_cliente, fecha_pedido, total, estado FROM pedido WHERE id_pedido = ?`, id).
		Scan(&p.IDPedido, &p.IDCliente, &p.FechaPedido, &p.Total, &p.Estado)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}

	detalles, err := r.FindDetalles(id)
	if err != nil {
		return nil, err
	}
	p.Detalles = detalles
	return &p, nil
}

// FindAll returns orders with offset pagination, newest first.
func (r *OrderRepository) FindAll(skip, limit int) ([]*commerce.Pedido, error) {
	rows, err := r.db.Query(`SELECT id_pedido FROM pedido ORDER BY id_pedido DESC LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()
	return r.collectByIDs(rows)
}

// FindByCliente returns every order of a customer, newest first.
func (r *OrderRepository) FindByCliente(clienteID int) ([]*commerce.Pedido, error) {
	rows, err := r.db.Query(`SELECT id_pedido FROM pedido WHERE id_cliente = ? ORDER BY id_pedido DESC`, clienteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for customer %d: %w", clienteID, err)
	}
	defer rows.Close()
	return r.collectByIDs(rows)
}

// Update replaces the order's mutable fields. Returns nil when missing.
func (r *OrderRepository) Update(id int, update *commerce.PedidoCreate) (*commerce.Pedido, error) {
	estado := commerce.EstadoPendiente
	if update.Estado != nil {
		estado = *update.Estado
	}

	result, err := r.db.Exec(`UPDATE pedido SET id_cliente = ?, total = ?, estado = ? WHERE id_pedido = ?`,
		update.IDCliente, update.Total, estado, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", id, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// SetEstado changes only the order state. Returns nil when missing.
func (r *OrderRepository) SetEstado(id int, estado string) (*commerce.Pedido, error) {
	result, err := r.db.Exec(`UPDATE pedido SET estado = ? WHERE id_pedido = ?`, estado, id)
	if err != nil {
		return nil, fmt.Errorf("failed to set state for order %d: %w", id, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// Delete removes an order and its detail lines. Reports whether a row was deleted.
func (r *OrderRepository) Delete(id int) (bool, error) {
	if _, err := r.db.Exec(`DELETE FROM detalle_pedido WHERE id_pedido = ?`, id); err != nil {
		return false, fmt.Errorf("failed to delete order lines for order %d: %w", id, err)
	}

	result, err := r.db.Exec(`DELETE FROM pedido WHERE id_pedido = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// AddDetalle appends a line to an order.
func (r *OrderRepository) AddDetalle(pedidoID int, detalle *commerce.DetallePedidoCreate) (*commerce.DetallePedido, error) {
	result, err := r.db.Exec(
		`INSERT INTO detalle_pedido (id_pedido, id_producto, cantidad, precio_unitario) VALUES (?, ?, ?, ?)`,
		pedidoID, detalle.IDProducto, detalle.Cantidad, detalle.PrecioUnitario,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order line: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read order line id: %w", err)
	}

	return &commerce.DetallePedido{
		IDDetalle:      int(id),
		IDPedido:       pedidoID,
		IDProducto:     detalle.IDProducto,
		Cantidad:       detalle.Cantidad,
		PrecioUnitario: detalle.PrecioUnitario,
	}, nil
}

// FindDetalles returns every line of an order.
func (r *OrderRepository) FindDetalles(pedidoID int) ([]commerce.DetallePedido, error) {
	rows, err := r.db.Query(
		`SELECT id_detalle, id_pedido, id_producto, cantidad, precio_unitario FROM detalle_pedido WHERE id_pedido = ? ORDER BY id_detalle`,
		pedidoID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list order lines for order %d: %w", pedidoID, err)
	}
	defer rows.Close()

	detalles := []commerce.DetallePedido{}
	for rows.Next() {
		var d commerce.DetallePedido
		if err := rows.Scan(&d.IDDetalle, &d.IDPedido, &d.IDProducto, &d.Cantidad, &d.PrecioUnitario); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		detalles = append(detalles, d)
	}
	return detalles, rows.Err()
}

// Filter returns orders matching the admin console filter.
func (r *OrderRepository) Filter(filter *admin.OrderFilter) ([]*commerce.Pedido, error) {
	conditions := []string{}
	args := []interface{}{}

	if filter.Estado != "" {
		conditions = append(conditions, "estado = ?")
		args = append(args, filter.Estado)
	}
	if filter.ClienteID > 0 {
		conditions = append(conditions, "id_cliente = ?")
		args = append(args, filter.ClienteID)
	}
	if filter.FechaDesde != nil {
		conditions = append(conditions, "fecha_pedido >= ?")
		args = append(args, *filter.FechaDesde)
	}
	if filter.FechaHasta != nil {
		conditions = append(conditions, "fecha_pedido <= ?")
		args = append(args, *filter.FechaHasta)
	}

	query := "SELECT id_pedido FROM pedido"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id_pedido DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter orders: %w", err)
	}
	defer rows.Close()
	return r.collectByIDs(rows)
}

// CountAll returns the total number of orders.
func (r *OrderRepository) CountAll() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM pedido`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// CountToday returns the number of orders placed since midnight.
func (r *OrderRepository) CountToday() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM pedido WHERE date(fecha_pedido) = date('now')`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count today's orders: %w", err)
	}
	return count, nil
}

// SumVentas returns the total value of all orders.
func (r *OrderRepository) SumVentas() (float64, error) {
	var total float64
	err := r.db.QueryRow(`SELECT COALESCE(SUM(total), 0) FROM pedido`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum order totals: %w", err)
	}
	return total, nil
}

// CountByEstado returns order counts grouped by state.
func (r *OrderRepository) CountByEstado() ([]admin.OrderStatusCount, error) {
	rows, err := r.db.Query(`SELECT estado, COUNT(*) FROM pedido GROUP BY estado ORDER BY estado`)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by state: %w", err)
	}
	defer rows.Close()

	counts := []admin.OrderStatusCount{}
	for rows.Next() {
		var c admin.OrderStatusCount
		if err := rows.Scan(&c.Estado, &c.Cantidad); err != nil {
			return nil, fmt.Errorf("failed to scan state count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Latest returns the most recent orders without their detail lines.
func (r *OrderRepository) Latest(limit int) ([]*commerce.Pedido, error) {
	rows, err := r.db.Query(`SELECT id_pedido, id_cliente, fecha_pedido, total, estado FROM pedido ORDER BY id_pedido DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest orders: %w", err)
	}
	defer rows.Close()

	pedidos := []*commerce.Pedido{}
	for rows.Next() {
		p := &commerce.Pedido{Detalles: []commerce.DetallePedido{}}
		if err := rows.Scan(&p.IDPedido, &p.IDCliente, &p.FechaPedido, &p.Total, &p.Estado); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		pedidos = append(pedidos, p)
	}
	return pedidos, rows.Err()
}

func (r *OrderRepository) collectByIDs(rows *sql.Rows) ([]*commerce.Pedido, error) {
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pedidos := []*commerce.Pedido{}
	for _, id := range ids {
		p, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			pedidos = append(pedidos, p)
		}
	}
	return pedidos, nil
}
