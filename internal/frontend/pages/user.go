package pages

import (
	"context"
	"fmt"
	"html"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/customer"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/api"
)

// UserController renders and updates the customer's profile.
type UserController struct {
	client    *api.Client
	clienteID int
	panel     Panel
	notifier  Notifier

	current *customer.Cliente
}

func NewUserController(client *api.Client, clienteID int, panel Panel, notifier Notifier) (*UserController, error) {
	if client == nil {
		return nil, fmt.Errorf("user controller requires an api client")
	}
	if clienteID <= 0 {
		return nil, fmt.Errorf("user controller requires a customer identity")
	}
	if panel == nil {
		return nil, fmt.Errorf("user controller requires a panel")
	}
	if notifier == nil {
		return nil, fmt.Errorf("user controller requires a notifier")
	}
	return &UserController{client: client, clienteID: clienteID, panel: panel, notifier: notifier}, nil
}

// Load renders the customer profile. Failure replaces the panel with an
// error panel.
func (u *UserController) Load(ctx context.Context) error {
	cliente, err := u.client.GetCustomer(ctx, u.clienteID)
	if err != nil {
		u.current = nil
		u.panel.SetContent(errorPanelHTML("No se pudo cargar el perfil"))
		return err
	}

	u.current = cliente
	u.panel.SetContent(renderProfile(cliente))
	return nil
}

// Current returns the loaded profile, nil before a successful Load.
func (u *UserController) Current() *customer.Cliente { return u.current }

// Update submits profile changes. This is a secondary action: failure
// notifies and the rendered profile stays untouched; success re-renders
// with the server's response.
func (u *UserController) Update(ctx context.Context, update *customer.ClienteCreate) error {
	cliente, err := u.client.UpdateCustomer(ctx, u.clienteID, update)
	if err != nil {
		u.notifier.Notify("No se pudo actualizar el perfil")
		return err
	}

	u.current = cliente
	u.panel.SetContent(renderProfile(cliente))
	u.notifier.Notify("Perfil actualizado")
	return nil
}

func renderProfile(cliente *customer.Cliente) string {
	return fmt.Sprintf(
		`<div class="user-profile"><p class="name">%s %s</p><p class="email">%s</p></div>`,
		html.EscapeString(cliente.Nombre), html.EscapeString(cliente.Apellido), html.EscapeString(cliente.Correo))
}
