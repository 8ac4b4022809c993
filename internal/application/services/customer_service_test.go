package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/customer"
	schema "github.com/TiendoLabs/tiendo-go/internal/infrastructure/database"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	customerrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/customer"
)

func newCustomerService(t *testing.T) *CustomerService {
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

	return NewCustomerService(customerrepo.NewClienteRepository(db, logger), nil, "", logger)
}

func anaRegistration() *customer.ClienteCreate {
	return &customer.ClienteCreate{
		Nombre:     "Ana",
		Apellido:   "García",
		Correo:     "ana@example.com",
		Contrasena: "secreto123",
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	service := newCustomerService(t)

	cliente, err := service.Register(anaRegistration())
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", cliente.Contrasena)
	assert.Contains(t, cliente.Contrasena, "$2a$")
}

func TestRegister_RequiresPassword(t *testing.T) {
	service := newCustomerService(t)

	create := anaRegistration()
	create.Contrasena = ""
	_, err := service.Register(create)
	require.Error(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service := newCustomerService(t)
	_, err := service.Register(anaRegistration())
	require.NoError(t, err)

	_, err = service.Register(anaRegistration())
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	service := newCustomerService(t)
	registered, err := service.Register(anaRegistration())
	require.NoError(t, err)

	result, err := service.Login("ana@example.com", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, registered.IDCliente, result.ClienteID)
	assert.Equal(t, "Login exitoso", result.Message)

	_, err = service.Login("ana@example.com", "equivocada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login("nadie@example.com", "secreto123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateCustomer_EmailOwnership(t *testing.T) {
	service := newCustomerService(t)
	ana, err := service.Register(anaRegistration())
	require.NoError(t, err)

	otro := anaRegistration()
	otro.Correo = "otro@example.com"
	_, err = service.Register(otro)
	require.NoError(t, err)

	// Keeping your own email is not a conflict.
	update := anaRegistration()
	update.Contrasena = ""
	updated, err := service.UpdateCustomer(ana.IDCliente, update)
	require.NoError(t, err)
	require.NotNil(t, updated)

	// Taking another account's email is.
	conflict := anaRegistration()
	conflict.Correo = "otro@example.com"
	_, err = service.UpdateCustomer(ana.IDCliente, conflict)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdateCustomer_EmptyPasswordKeepsHash(t *testing.T) {
	service := newCustomerService(t)
	ana, err := service.Register(anaRegistration())
	require.NoError(t, err)

	update := anaRegistration()
	update.Contrasena = ""
	update.Nombre = "Ana María"
	updated, err := service.UpdateCustomer(ana.IDCliente, update)
	require.NoError(t, err)
	assert.Equal(t, ana.Contrasena, updated.Contrasena)

	// Login still works with the original password.
	_, err = service.Login("ana@example.com", "secreto123")
	require.NoError(t, err)
}
