package commerce

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/admin"
	entities "github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	schema "github.com/TiendoLabs/tiendo-go/internal/infrastructure/database"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

// seededDB opens a fresh store with one customer (id 1) and two products
// (ids 1 and 2) so foreign keys on commerce rows resolve.
func seededDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiendo.db")
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, schema.NewTableCreator().CreateSchema(db))

	_, err = db.Exec(`INSERT INTO cliente (nombre, apellido, correo, contrasena) VALUES ('Ana', 'García', 'ana@example.com', 'hash')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO producto (nombre, precio, stock) VALUES ('Mouse', 19.99, 25), ('Teclado', 49.50, 10)`)
	require.NoError(t, err)
	return db
}

func quietLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToConsole = false
	cfg.EnableStreaming = false
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger
}

func TestCartRepository_CreateWithLines(t *testing.T) {
	db := seededDB(t)
	repo := NewCartRepository(db, quietLogger(t))

	carrito, err := repo.Create(&entities.CarritoCreate{
		IDCliente: 1,
		Detalles: []entities.DetalleCarritoCreate{
			{IDProducto: 1, Cantidad: 2, PrecioUnitario: 19.99},
			{IDProducto: 2, Cantidad: 1, PrecioUnitario: 49.50},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, carrito.Activo)
	require.Len(t, carrito.Detalles, 2)
	assert.Equal(t, 2, carrito.Detalles[0].Cantidad)

	byCliente, err := repo.FindByCliente(1)
	require.NoError(t, err)
	require.Len(t, byCliente, 1)
	assert.Equal(t, carrito.IDCarrito, byCliente[0].IDCarrito)
}

func TestCartRepository_UpdateDeactivates(t *testing.T) {
	db := seededDB(t)
	repo := NewCartRepository(db, quietLogger(t))
	carrito, err := repo.Create(&entities.CarritoCreate{IDCliente: 1})
	require.NoError(t, err)

	inactive := 0
	updated, err := repo.Update(carrito.IDCarrito, &entities.CarritoCreate{IDCliente: 1, Activo: &inactive})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Zero(t, updated.Activo)
}

func TestCartRepository_AddDetalleAndDelete(t *testing.T) {
	db := seededDB(t)
	repo := NewCartRepository(db, quietLogger(t))
	carrito, err := repo.Create(&entities.CarritoCreate{IDCliente: 1})
	require.NoError(t, err)

	detalle, err := repo.AddDetalle(carrito.IDCarrito, &entities.DetalleCarritoCreate{IDProducto: 1, Cantidad: 3, PrecioUnitario: 19.99})
	require.NoError(t, err)
	assert.Positive(t, detalle.IDDetalle)

	detalles, err := repo.FindDetalles(carrito.IDCarrito)
	require.NoError(t, err)
	require.Len(t, detalles, 1)

	deleted, err := repo.Delete(carrito.IDCarrito)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := repo.FindByID(carrito.IDCarrito)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestOrderRepository_CreateAndEstado(t *testing.T) {
	db := seededDB(t)
	repo := NewOrderRepository(db, quietLogger(t))

	pedido, err := repo.Create(&entities.PedidoCreate{
		IDCliente: 1,
		Total:     89.48,
		Detalles: []entities.DetallePedidoCreate{
			{IDProducto: 1, Cantidad: 2, PrecioUnitario: 19.99},
			{IDProducto: 2, Cantidad: 1, PrecioUnitario: 49.50},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.EstadoPendiente, pedido.Estado)
	require.Len(t, pedido.Detalles, 2)

	updated, err := repo.SetEstado(pedido.IDPedido, entities.EstadoEnviado)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, entities.EstadoEnviado, updated.Estado)

	missing, err := repo.SetEstado(999, entities.EstadoEnviado)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOrderRepository_FilterByEstadoAndCliente(t *testing.T) {
	db := seededDB(t)
	repo := NewOrderRepository(db, quietLogger(t))

	first, err := repo.Create(&entities.PedidoCreate{IDCliente: 1, Total: 10})
	require.NoError(t, err)
	_, err = repo.Create(&entities.PedidoCreate{IDCliente: 1, Total: 20})
	require.NoError(t, err)
	_, err = repo.SetEstado(first.IDPedido, entities.EstadoEntregado)
	require.NoError(t, err)

	entregados, err := repo.Filter(&admin.OrderFilter{Estado: entities.EstadoEntregado, Limit: 100})
	require.NoError(t, err)
	require.Len(t, entregados, 1)
	assert.Equal(t, first.IDPedido, entregados[0].IDPedido)

	future := time.Now().Add(24 * time.Hour)
	none, err := repo.Filter(&admin.OrderFilter{ClienteID: 1, FechaDesde: &future, Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderRepository_Stats(t *testing.T) {
	db := seededDB(t)
	repo := NewOrderRepository(db, quietLogger(t))
	_, err := repo.Create(&entities.PedidoCreate{IDCliente: 1, Total: 10.5})
	require.NoError(t, err)
	_, err = repo.Create(&entities.PedidoCreate{IDCliente: 1, Total: 4.5})
	require.NoError(t, err)

	total, err := repo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	hoy, err := repo.CountToday()
	require.NoError(t, err)
	assert.Equal(t, 2, hoy)

	ventas, err := repo.SumVentas()
	require.NoError(t, err)
	assert.InDelta(t, 15.0, ventas, 0.001)

	porEstado, err := repo.CountByEstado()
	require.NoError(t, err)
	require.Len(t, porEstado, 1)
	assert.Equal(t, entities.EstadoPendiente, porEstado[0].Estado)
	assert.Equal(t, 2, porEstado[0].Cantidad)
}

func TestPaymentRepository_RoundTrip(t *testing.T) {
	db := seededDB(t)
	logger := quietLogger(t)
	orders := NewOrderRepository(db, logger)
	payments := NewPaymentRepository(db, logger)

	pedido, err := orders.Create(&entities.PedidoCreate{IDCliente: 1, Total: 89.48})
	require.NoError(t, err)

	pago, err := payments.Create(&entities.PagoCreate{
		IDPedido: pedido.IDPedido,
		Monto:    89.48,
		Metodo:   entities.MetodoTarjetaCredito,
	}, "PAY-TEST-REF")
	require.NoError(t, err)
	require.NotNil(t, pago.ReferenciaPago)
	assert.Equal(t, "PAY-TEST-REF", *pago.ReferenciaPago)

	porPedido, err := payments.FindByPedido(pedido.IDPedido)
	require.NoError(t, err)
	require.Len(t, porPedido, 1)
	assert.Equal(t, entities.MetodoTarjetaCredito, porPedido[0].Metodo)

	missing, err := payments.FindByID(999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestShipmentRepository_OnePerOrder(t *testing.T) {
	db := seededDB(t)
	logger := quietLogger(t)
	orders := NewOrderRepository(db, logger)
	shipments := NewShipmentRepository(db, logger)

	pedido, err := orders.Create(&entities.PedidoCreate{IDCliente: 1, Total: 10})
	require.NoError(t, err)

	envio, err := shipments.Create(&entities.EnvioCreate{
		IDPedido:       pedido.IDPedido,
		DireccionEnvio: "Calle 10 #4-21",
		CiudadEnvio:    "Bogotá",
		PaisEnvio:      "Colombia",
	}, "GUIA-0001")
	require.NoError(t, err)
	assert.Equal(t, entities.EstadoEnvioPreparacion, envio.EstadoEnvio)
	require.NotNil(t, envio.NumeroGuia)
	assert.Equal(t, "GUIA-0001", *envio.NumeroGuia)

	// The envio table holds a unique index on id_pedido.
	_, err = shipments.Create(&entities.EnvioCreate{
		IDPedido:       pedido.IDPedido,
		DireccionEnvio: "Otra dirección",
		CiudadEnvio:    "Medellín",
		PaisEnvio:      "Colombia",
	}, "GUIA-0002")
	require.Error(t, err)

	porPedido, err := shipments.FindByPedido(pedido.IDPedido)
	require.NoError(t, err)
	require.NotNil(t, porPedido)
	assert.Equal(t, envio.IDEnvio, porPedido.IDEnvio)

	none, err := shipments.FindByPedido(999)
	require.NoError(t, err)
	assert.Nil(t, none)
}
