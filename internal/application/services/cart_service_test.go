package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	schema "github.com/TiendoLabs/tiendo-go/internal/infrastructure/database"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	catalogrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/catalog"
	commercerepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/commerce"
	customerrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/customer"
)

// newCartService seeds one customer (id 1) and one product (id 1, stock 5).
func newCartService(t *testing.T) *CartService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiendo.db")
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, schema.NewTableCreator().CreateSchema(db))

	_, err = db.Exec(`INSERT INTO cliente (nombre, apellido, correo, contrasena) VALUES ('Ana', 'García', 'ana@example.com', 'hash')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO producto (nombre, precio, stock) VALUES ('Mouse', 19.99, 5)`)
	require.NoError(t, err)

	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToConsole = false
	cfg.EnableStreaming = false
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)

	return NewCartService(
		commercerepo.NewCartRepository(db, logger),
		catalogrepo.NewProductRepository(db, logger),
		customerrepo.NewClienteRepository(db, logger),
		logger,
	)
}

func TestCreateCart_DefaultsLinePriceToProduct(t *testing.T) {
	service := newCartService(t)

	carrito, err := service.CreateCart(&commerce.CarritoCreate{
		IDCliente: 1,
		Detalles:  []commerce.DetalleCarritoCreate{{IDProducto: 1, Cantidad: 2}},
	})
	require.NoError(t, err)
	require.Len(t, carrito.Detalles, 1)
	assert.InDelta(t, 19.99, carrito.Detalles[0].PrecioUnitario, 0.001)
}

func TestCreateCart_UnknownCustomer(t *testing.T) {
	service := newCartService(t)

	_, err := service.CreateCart(&commerce.CarritoCreate{IDCliente: 99})
	assert.ErrorIs(t, err, ErrUnknownCustomer)
}

func TestAddLine_RejectsInvalidLines(t *testing.T) {
	service := newCartService(t)
	carrito, err := service.CreateCart(&commerce.CarritoCreate{IDCliente: 1})
	require.NoError(t, err)

	tests := []struct {
		name string
		line commerce.DetalleCarritoCreate
		want error
	}{
		{"unknown product", commerce.DetalleCarritoCreate{IDProducto: 99, Cantidad: 1}, ErrUnknownProduct},
		{"zero quantity", commerce.DetalleCarritoCreate{IDProducto: 1, Cantidad: 0}, ErrInvalidLine},
		{"over stock", commerce.DetalleCarritoCreate{IDProducto: 1, Cantidad: 6}, ErrInvalidLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddLine(carrito.IDCarrito, &tt.line)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAddLine_MissingCartReturnsNil(t *testing.T) {
	service := newCartService(t)

	detalle, err := service.AddLine(99, &commerce.DetalleCarritoCreate{IDProducto: 1, Cantidad: 1})
	require.NoError(t, err)
	assert.Nil(t, detalle)
}
