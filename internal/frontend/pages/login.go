package pages

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/customer"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/api"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/httpx"
)

// LoginController submits the login fragment's credentials. Success yields
// the customer identity the page controllers are constructed with.
type LoginController struct {
	client   *api.Client
	notifier Notifier
}

func NewLoginController(client *api.Client, notifier Notifier) (*LoginController, error) {
	if client == nil {
		return nil, fmt.Errorf("login controller requires an api client")
	}
	if notifier == nil {
		return nil, fmt.Errorf("login controller requires a notifier")
	}
	return &LoginController{client: client, notifier: notifier}, nil
}

// Submit posts the credentials. A 401 notifies with an incorrect-credentials
// message; other failures notify generically. Both return the error.
func (l *LoginController) Submit(ctx context.Context, correo, contrasena string) (*customer.LoginResult, error) {
	if correo == "" || contrasena == "" {
		err := &httpx.ValidationError{Field: "credenciales", Message: "correo y contraseña son obligatorios"}
		l.notifier.Notify("Correo y contraseña son obligatorios")
		return nil, err
	}

	result, err := l.client.Login(ctx, correo, contrasena)
	if err != nil {
		var httpErr *httpx.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
			l.notifier.Notify("Correo o contraseña incorrectos")
		} else {
			l.notifier.Notify("No se pudo iniciar sesión")
		}
		return nil, err
	}

	l.notifier.Notify(fmt.Sprintf("Hola, %s", result.Nombre))
	return result, nil
}
