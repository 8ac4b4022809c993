package customer

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entities "github.com/TiendoLabs/tiendo-go/internal/domain/entities/customer"
	schema "github.com/TiendoLabs/tiendo-go/internal/infrastructure/database"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

func testRepo(t *testing.T) (*ClienteRepository, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiendo.db")
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, schema.NewTableCreator().CreateSchema(db))

	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToConsole = false
	cfg.EnableStreaming = false
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return NewClienteRepository(db, logger), db
}

func anaCreate() *entities.ClienteCreate {
	telefono := "3001234567"
	return &entities.ClienteCreate{
		Nombre:   "Ana",
		Apellido: "García",
		Correo:   "ana@example.com",
		Telefono: &telefono,
	}
}

func TestClienteRepository_CreateStoresHash(t *testing.T) {
	repo, _ := testRepo(t)

	cliente, err := repo.Create(anaCreate(), "$2a$10$hash")
	require.NoError(t, err)
	assert.Positive(t, cliente.IDCliente)
	assert.Equal(t, "$2a$10$hash", cliente.Contrasena)
	require.NotNil(t, cliente.Telefono)
	assert.Equal(t, "3001234567", *cliente.Telefono)
	assert.Nil(t, cliente.Direccion)
	assert.False(t, cliente.FechaRegistro.IsZero())
}

func TestClienteRepository_DuplicateCorreoFails(t *testing.T) {
	repo, _ := testRepo(t)
	_, err := repo.Create(anaCreate(), "hash")
	require.NoError(t, err)

	_, err = repo.Create(anaCreate(), "hash")
	require.Error(t, err)
}

func TestClienteRepository_FindByCorreo(t *testing.T) {
	repo, _ := testRepo(t)
	created, err := repo.Create(anaCreate(), "hash")
	require.NoError(t, err)

	found, err := repo.FindByCorreo("ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.IDCliente, found.IDCliente)

	none, err := repo.FindByCorreo("nadie@example.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestClienteRepository_UpdateKeepsHashWhenEmpty(t *testing.T) {
	repo, _ := testRepo(t)
	created, err := repo.Create(anaCreate(), "hash-original")
	require.NoError(t, err)

	update := anaCreate()
	update.Nombre = "Ana María"
	updated, err := repo.Update(created.IDCliente, update, "")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Ana María", updated.Nombre)
	assert.Equal(t, "hash-original", updated.Contrasena)

	updated, err = repo.Update(created.IDCliente, update, "hash-nuevo")
	require.NoError(t, err)
	assert.Equal(t, "hash-nuevo", updated.Contrasena)
}

func TestClienteRepository_UpdateMissingReturnsNil(t *testing.T) {
	repo, _ := testRepo(t)

	updated, err := repo.Update(404, anaCreate(), "")
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestClienteRepository_Counts(t *testing.T) {
	repo, db := testRepo(t)
	created, err := repo.Create(anaCreate(), "hash")
	require.NoError(t, err)
	otro := anaCreate()
	otro.Correo = "otro@example.com"
	_, err = repo.Create(otro, "hash")
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO pedido (id_cliente, total) VALUES (?, 10)`, created.IDCliente)
	require.NoError(t, err)

	total, err := repo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	conPedidos, err := repo.CountWithOrders()
	require.NoError(t, err)
	assert.Equal(t, 1, conPedidos)

	nuevos, err := repo.CountRegisteredSince(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, nuevos)

	latest, err := repo.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "otro@example.com", latest.Correo)
}
