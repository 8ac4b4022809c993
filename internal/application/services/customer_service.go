package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/customer"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/email"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	customerrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/customer"
)

// CustomerService orchestrates customer registration, login and account
// management. Passwords are bcrypt hashed before storage.
type CustomerService struct {
	clientes *customerrepo.ClienteRepository
	mailer   email.Service
	storeURL string
	logger   *logging.ChanneledLogger
}

// NewCustomerService creates a new customer application service. mailer may
// be nil when email is not configured.
func NewCustomerService(clientes *customerrepo.ClienteRepository, mailer email.Service, storeURL string, logger *logging.ChanneledLogger) *CustomerService {
	return &CustomerService{
		clientes: clientes,
		mailer:   mailer,
		storeURL: storeURL,
		logger:   logger,
	}
}

// Register creates a customer account. Returns ErrDuplicateEmail when the
// email address is already registered.
func (s *CustomerService) Register(create *customer.ClienteCreate) (*customer.Cliente, error) {
	if create.Contrasena == "" {
		return nil, fmt.Errorf("la contraseña es obligatoria")
	}

	existing, err := s.clientes.FindByCorreo(create.Correo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(create.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cliente, err := s.clientes.Create(create, string(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	s.logger.Customer().Info("Customer registered", "id", cliente.IDCliente, "correo", cliente.Correo)

	if s.mailer != nil {
		// Registration never fails on email problems.
		go func(to, name string) {
			if err := s.mailer.SendWelcomeEmail(to, name, s.storeURL); err != nil {
				s.logger.Email().Warn("Failed to send welcome email", "correo", to, "error", err)
			}
		}(cliente.Correo, cliente.Nombre)
	}
	return cliente, nil
}

// Login verifies credentials and returns the login payload. Returns
// ErrInvalidCredentials on unknown email or wrong password.
func (s *CustomerService) Login(correo, contrasena string) (*customer.LoginResult, error) {
	cliente, err := s.clientes.FindByCorreo(correo)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		s.logger.Auth().Debug("Login attempt for unknown email", "correo", correo)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cliente.Contrasena), []byte(contrasena)); err != nil {
		s.logger.Auth().Debug("Login attempt with wrong password", "correo", correo)
		return nil, ErrInvalidCredentials
	}

	return &customer.LoginResult{
		Message:   "Login exitoso",
		ClienteID: cliente.IDCliente,
		Nombre:    cliente.Nombre,
		Correo:    cliente.Correo,
	}, nil
}

// GetCustomer returns a customer by ID, or nil when missing.
func (s *CustomerService) GetCustomer(id int) (*customer.Cliente, error) {
	return s.clientes.FindByID(id)
}

// ListCustomers returns customers with offset pagination.
func (s *CustomerService) ListCustomers(skip, limit int) ([]*customer.Cliente, error) {
	return s.clientes.FindAll(skip, limit)
}

// UpdateCustomer replaces a customer's profile. An empty password keeps the
// stored hash. Returns nil when missing, ErrDuplicateEmail when the new email
// belongs to another account.
func (s *CustomerService) UpdateCustomer(id int, update *customer.ClienteCreate) (*customer.Cliente, error) {
	existing, err := s.clientes.FindByCorreo(update.Correo)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IDCliente != id {
		return nil, ErrDuplicateEmail
	}

	passwordHash := ""
	if update.Contrasena != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(update.Contrasena), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = string(hash)
	}
	return s.clientes.Update(id, update, passwordHash)
}

// DeleteCustomer removes a customer account.
func (s *CustomerService) DeleteCustomer(id int) (bool, error) {
	deleted, err := s.clientes.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Customer().Info("Customer deleted", "id", id)
	}
	return deleted, nil
}
