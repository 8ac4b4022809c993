package pages

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/customer"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/api"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/httpx"
)

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterForm is the register fragment's input state.
type RegisterForm struct {
	Nombre          string
	Apellido        string
	Correo          string
	Contrasena      string
	ConfirmPassword string
}

// MatchIndicator is the live password-match hint shown under the confirm
// field. The controller removes and recreates it on every keystroke so at
// most one indicator exists at a time.
type MatchIndicator struct {
	Matches bool
	Text    string
}

// RegisterController validates and submits the registration form.
type RegisterController struct {
	client   *api.Client
	notifier Notifier

	indicator *MatchIndicator
}

func NewRegisterController(client *api.Client, notifier Notifier) (*RegisterController, error) {
	if client == nil {
		return nil, fmt.Errorf("register controller requires an api client")
	}
	if notifier == nil {
		return nil, fmt.Errorf("register controller requires a notifier")
	}
	return &RegisterController{client: client, notifier: notifier}, nil
}

// UpdateMatchIndicator recomputes the password-match hint after a
// keystroke. The previous indicator is dropped before the new one is
// created; with both fields empty no indicator is shown.
func (r *RegisterController) UpdateMatchIndicator(contrasena, confirm string) {
	r.indicator = nil
	if contrasena == "" && confirm == "" {
		return
	}
	if contrasena == confirm {
		r.indicator = &MatchIndicator{Matches: true, Text: "Las contraseñas coinciden"}
		return
	}
	r.indicator = &MatchIndicator{Matches: false, Text: "Las contraseñas no coinciden"}
}

// Indicator returns the current password-match hint, nil when none is
// shown.
func (r *RegisterController) Indicator() *MatchIndicator { return r.indicator }

// Validate checks the form client-side: required fields, email shape and
// password confirmation. The first failure is returned as a
// *httpx.ValidationError.
func (r *RegisterController) Validate(form RegisterForm) error {
	required := []struct {
		field string
		value string
	}{
		{"nombre", form.Nombre},
		{"apellido", form.Apellido},
		{"correo", form.Correo},
		{"contrasena", form.Contrasena},
	}
	for _, entry := range required {
		if strings.TrimSpace(entry.value) == "" {
			return &httpx.ValidationError{Field: entry.field, Message: "es obligatorio"}
		}
	}
	if !emailShape.MatchString(form.Correo) {
		return &httpx.ValidationError{Field: "correo", Message: "no tiene un formato válido"}
	}
	if form.Contrasena != form.ConfirmPassword {
		return &httpx.ValidationError{Field: "contrasena", Message: "las contraseñas no coinciden"}
	}
	return nil
}

// Submit validates and posts the registration. Validation failures never
// reach the network. Server rejections (duplicate email) notify with the
// server's detail.
func (r *RegisterController) Submit(ctx context.Context, form RegisterForm) (*customer.Cliente, error) {
	if err := r.Validate(form); err != nil {
		var validation *httpx.ValidationError
		if errors.As(err, &validation) {
			r.notifier.Notify(fmt.Sprintf("Campo %s: %s", validation.Field, validation.Message))
		}
		return nil, err
	}

	cliente, err := r.client.CreateCustomer(ctx, &customer.ClienteCreate{
		Nombre:     form.Nombre,
		Apellido:   form.Apellido,
		Correo:     form.Correo,
		Contrasena: form.Contrasena,
	})
	if err != nil {
		r.notifier.Notify(registrationFailureMessage(err))
		return nil, err
	}

	r.notifier.Notify(fmt.Sprintf("Bienvenido, %s", cliente.Nombre))
	return cliente, nil
}

func registrationFailureMessage(err error) string {
	var httpErr *httpx.HTTPError
	if errors.As(err, &httpErr) && httpErr.Detail != "" {
		return httpErr.Detail
	}
	return "No se pudo completar el registro"
}
