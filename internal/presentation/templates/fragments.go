// Package templates renders the HTML fragments and pages served to the
// storefront. All templates are pre-parsed; html/template escaping protects
// every interpolated value.
package templates

import (
	"bytes"
	"html/template"
	"log/slog"
)

// renderLog receives template execution failures. Startup points it at the
// system channel; until then errors go to the default slog logger.
var renderLog *slog.Logger

// SetLogger routes template rendering errors through the given logger.
func SetLogger(l *slog.Logger) {
	renderLog = l
}

// accountMenuTmpl is the default modal content: the account menu with its two
// trigger buttons. The data-action attributes are the trigger identities the
// login and register fragments reuse for in-modal navigation.
var accountMenuTmpl = template.Must(template.New("accountMenu").Parse(`<div id="account-menu" class="account-menu">
  <h2>Mi cuenta</h2>
  <button id="show-register" class="menu-option" data-action="register">Registrarse</button>
  <button id="show-login" class="menu-option" data-action="login">Iniciar sesión</button>
</div>`))

var loginFragmentTmpl = template.Must(template.New("loginFragment").Parse(`<div id="login-form-container" class="auth-form auth-form-small">
  <h2>Iniciar sesión</h2>
  <form id="login-form">
    <label for="login-correo">Correo</label>
    <input type="email" id="login-correo" name="correo" required>
    <label for="login-contrasena">Contraseña</label>
    <input type="password" id="login-contrasena" name="contrasena" required>
    <button type="submit">Entrar</button>
  </form>
  <button class="switch-form" data-action="register">¿No tienes cuenta? Regístrate</button>
  <script>window.tiendoInitLoginForm && window.tiendoInitLoginForm();</script>
</div>`))

var registerFragmentTmpl = template.Must(template.New("registerFragment").Parse(`<div id="register-form-container" class="auth-form auth-form-large">
  <h2>Crear cuenta</h2>
  <form id="register-form">
    <label for="reg-nombre">Nombre</label>
    <input type="text" id="reg-nombre" name="nombre" required>
    <label for="reg-apellido">Apellido</label>
    <input type="text" id="reg-apellido" name="apellido" required>
    <label for="reg-correo">Correo</label>
    <input type="email" id="reg-correo" name="correo" required>
    <label for="reg-contrasena">Contraseña</label>
    <input type="password" id="reg-contrasena" name="contrasena" required>
    <label for="reg-confirmar">Confirmar contraseña</label>
    <input type="password" id="reg-confirmar" name="confirmar" required>
    <button type="submit">Registrarse</button>
  </form>
  <button class="switch-form" data-action="login">¿Ya tienes cuenta? Inicia sesión</button>
  <script src="/static/js/password-match.js"></script>
  <script>window.tiendoInitRegisterForm && window.tiendoInitRegisterForm();</script>
</div>`))

// errorPanelTmpl renders the inline error shown inside the modal or a page
// panel when a fragment fails to load.
var errorPanelTmpl = template.Must(template.New("errorPanel").Parse(`<div class="fragment-error">
  <p>{{.Message}}</p>
  <button class="close-error" data-action="close">Cerrar</button>
</div>`))

// AccountMenuFragment renders the account menu modal content.
func AccountMenuFragment() string {
	return execute(accountMenuTmpl, nil)
}

// LoginFragment renders the login form fragment with its activation script.
func LoginFragment() string {
	return execute(loginFragmentTmpl, nil)
}

// RegisterFragment renders the registration form fragment. It carries both an
// external and an inline script.
func RegisterFragment() string {
	return execute(registerFragmentTmpl, nil)
}

// ErrorPanel renders an inline error with a close affordance.
func ErrorPanel(message string) string {
	return execute(errorPanelTmpl, struct{ Message string }{Message: message})
}

func execute(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		l := renderLog
		if l == nil {
			l = slog.Default()
		}
		l.Error("Template execution failed", "template", tmpl.Name(), "error", err.Error())
		return ""
	}
	return buf.String()
}
