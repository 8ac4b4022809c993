package commerce

import (
	"database/sql"
	"fmt"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

type ShipmentRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewShipmentRepository(db *sql.DB, logger *logging.ChanneledLogger) *ShipmentRepository {
	return &ShipmentRepository{db: db, logger: logger}
}

const envioColumns = "id_envio, id_pedido, direccion_envio, ciudad_envio, pais_envio, estado_envio, " +
	"fecha_envio, fecha_entrega, empresa_transporte, numero_guia"

func scanEnvio(row interface{ Scan(...any) error }) (*commerce.Envio, error) {
	var e commerce.Envio
	var fechaEnvio, fechaEntrega sql.NullTime
	var empresa, guia sql.NullString
	err := row.Scan(&e.IDEnvio, &e.IDPedido, &e.DireccionEnvio, &e.CiudadEnvio, &e.PaisEnvio,
		&e.EstadoEnvio, &fechaEnvio, &fechaEntrega, &empresa, &guia)
	if err != nil {
		return nil, err
	}
	if fechaEnvio.Valid {
		e.FechaEnvio = &fechaEnvio.Time
	}
	if fechaEntrega.Valid {
		e.FechaEntrega = &fechaEntrega.Time
	}
	if empresa.Valid {
		e.EmpresaTransporte = &empresa.String
	}
	if guia.Valid {
		e.NumeroGuia = &guia.String
	}
	return &e, nil
}

// Create records a shipment. The tracking number is generated by the service
// layer when the caller does not supply one.
func (r *ShipmentRepository) Create(create *commerce.EnvioCreate, numeroGuia string) (*commerce.Envio, error) {
	estado := commerce.EstadoEnvioPreparacion
	if create.EstadoEnvio != nil {
		estado = *create.EstadoEnvio
	}

	result, err := r.db.Exec(
		`INSERT INTO envio (id_pedido, direccion_envio, ciudad_envio, pais_envio, estado_envio,
			fecha_envio, fecha_entrega, empresa_transporte, numero_guia)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		create.IDPedido, create.DireccionEnvio, create.CiudadEnvio, create.PaisEnvio, estado,
		create.FechaEnvio, create.FechaEntrega, create.EmpresaTransporte, numeroGuia,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert shipment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read shipment id: %w", err)
	}
	return r.FindByID(int(id))
}

// FindByID returns a shipment or nil.
func (r *ShipmentRepository) FindByID(id int) (*commerce.Envio, error) {
	row := r.db.QueryRow(`SELECT `+envioColumns+` FROM envio WHERE id_envio = ?`, id)
	envio, err := scanEnvio(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment %d: %w", id, err)
	}
	return envio, nil
}

// FindByPedido returns the shipment for an order, or nil. At most one exists.
func (r *ShipmentRepository) FindByPedido(pedidoID int) (*commerce.Envio, error) {
	row := r.db.QueryRow(`SELECT `+envioColumns+` FROM envio WHERE id_pedido = ?`, pedidoID)
	envio, err := scanEnvio(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment for order %d: %w", pedidoID, err)
	}
	return envio, nil
}

// FindAll returns shipments with offset pagination, newest first.
func (r *ShipmentRepository) FindAll(skip, limit int) ([]*commerce.Envio, error) {
	rows, err := r.db.Query(`SELECT `+envioColumns+` FROM envio ORDER BY id_envio DESC LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	defer rows.Close()

	envios := []*commerce.Envio{}
	for rows.Next() {
		envio, err := scanEnvio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shipment row: %w", err)
		}
		envios = append(envios, envio)
	}
	return envios, rows.Err()
}

// Update replaces a shipment's mutable fields. Returns nil when missing.
func (r *ShipmentRepository) Update(id int, update *commerce.EnvioCreate) (*commerce.Envio, error) {
	current, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	estado := current.EstadoEnvio
	if update.EstadoEnvio != nil {
		estado = *update.EstadoEnvio
	}
	guia := current.NumeroGuia
	if update.NumeroGuia != nil {
		guia = update.NumeroGuia
	}

	_, err = r.db.Exec(
		`UPDATE envio SET id_pedido = ?, direccion_envio = ?, ciudad_envio = ?, pais_envio = ?,
			estado_envio = ?, fecha_envio = ?, fecha_entrega = ?, empresa_transporte = ?, numero_guia = ?
		WHERE id_envio = ?`,
		update.IDPedido, update.DireccionEnvio, update.CiudadEnvio, update.PaisEnvio,
		estado, update.FechaEnvio, update.FechaEntrega, update.EmpresaTransporte, guia, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update shipment %d: %w", id, err)
	}
	return r.FindByID(id)
}

// Delete removes a shipment. Reports whether a row was deleted.
func (r *ShipmentRepository) Delete(id int) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM envio WHERE id_envio = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete shipment %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}
