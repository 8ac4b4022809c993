package commerce

import (
	"database/sql"
	"fmt"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

type PaymentRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewPaymentRepository(db *sql.DB, logger *logging.ChanneledLogger) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger}
}

const pagoColumns = "id_pago, id_pedido, fecha_pago, monto, metodo, referencia_pago"

func scanPago(row interface{ Scan(...any) error }) (*commerce.Pago, error) {
	var p commerce.Pago
	var referencia sql.NullString
	if err := row.Scan(&p.IDPago, &p.IDPedido, &p.FechaPago, &p.Monto, &p.Metodo, &referencia); err != nil {
		return nil, err
	}
	if referencia.Valid {
		p.ReferenciaPago = &referencia.String
	}
	return &p, nil
}

// Create records a payment. The reference is generated by the service layer.
func (r *PaymentRepository) Create(create *commerce.PagoCreate, referencia string) (*commerce.Pago, error) {
	result, err := r.db.Exec(
		`INSERT INTO pago (id_pedido, monto, metodo, referencia_pago) VALUES (?, ?, ?, ?)`,
		create.IDPedido, create.Monto, create.Metodo, referencia,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read payment id: %w", err)
	}
	return r.FindByID(int(id))
}

// FindByID returns a payment or nil.
func (r *PaymentRepository) FindByID(id int) (*commerce.Pago, error) {
	row := r.db.QueryRow(`SELECT `+pagoColumns+` FROM pago WHERE id_pago = ?`, id)
	pago, err := scanPago(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment %d: %w", id, err)
	}
	return pago, nil
}

// FindAll returns payments with offset pagination, newest first.
func (r *PaymentRepository) FindAll(skip, limit int) ([]*commerce.Pago, error) {
	rows, err := r.db.Query(`SELECT `+pagoColumns+` FROM pago ORDER BY id_pago DESC LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()
	return collectPagos(rows)
}

// FindByPedido returns every payment recorded against an order.
func (r *PaymentRepository) FindByPedido(pedidoID int) ([]*commerce.Pago, error) {
	rows, err := r.db.Query(`SELECT `+pagoColumns+` FROM pago WHERE id_pedido = ? ORDER BY id_pago`, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for order %d: %w", pedidoID, err)
	}
	defer rows.Close()
	return collectPagos(rows)
}

// Update replaces a payment's mutable fields. Returns nil when missing.
func (r *PaymentRepository) Update(id int, update *commerce.PagoCreate) (*commerce.Pago, error) {
	result, err := r.db.Exec(
		`UPDATE pago SET id_pedido = ?, monto = ?, metodo = ? WHERE id_pago = ?`,
		update.IDPedido, update.Monto, update.Metodo, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment %d: %w", id, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// Delete removes a payment. Reports whether a row was deleted.
func (r *PaymentRepository) Delete(id int) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM pago WHERE id_pago = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete payment %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

func collectPagos(rows *sql.Rows) ([]*commerce.Pago, error) {
	pagos := []*commerce.Pago{}
	for rows.Next() {
		pago, err := scanPago(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		pagos = append(pagos, pago)
	}
	return pagos, rows.Err()
}
