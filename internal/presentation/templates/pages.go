package templates

import "html/template"

// pageLayoutTmpl wraps page bodies in the shared storefront chrome.
var pageLayoutTmpl = template.Must(template.New("pageLayout").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} - Tiendo</title>
  <link rel="stylesheet" href="/static/css/store.css">
</head>
<body>
  <header class="site-header">
    <a href="/" class="brand">Tiendo</a>
    <nav>
      <a href="/cart">Carrito</a>
      <button id="account-button" data-action="account-menu">Cuenta</button>
    </nav>
  </header>
  <main id="content">
{{.Body}}
  </main>
  <div id="modal-overlay" class="modal-overlay hidden">
    <div id="modal" class="modal modal-small">
      <button id="modal-close" data-action="close">&times;</button>
      <div id="modal-content"></div>
    </div>
  </div>
  <script src="/static/js/store.js"></script>
</body>
</html>`))

type pageData struct {
	Title string
	Body  template.HTML
}

var indexBodyTmpl = template.Must(template.New("indexBody").Parse(`    <section id="catalog" class="product-grid" data-source="/api/v1/productos">
      <h1>Catálogo</h1>
      <div id="product-list"></div>
    </section>`))

var productBodyTmpl = template.Must(template.New("productBody").Parse(`    <section id="product-detail" data-source="/api/v1/productos">
      <div id="product-panel">
        <h1 id="product-name"></h1>
        <p id="product-price"></p>
        <label for="quantity">Cantidad</label>
        <input type="number" id="quantity" name="quantity" value="1" min="1">
        <button id="add-to-cart">Añadir al carrito</button>
      </div>
      <div id="notifications"></div>
    </section>`))

var cartBodyTmpl = template.Must(template.New("cartBody").Parse(`    <section id="cart-view" data-source="/api/v1/carritos">
      <h1>Carrito de compras</h1>
      <table class="cart-table">
        <thead><tr><th>Producto</th><th>Cantidad</th><th>Precio</th><th>Subtotal</th></tr></thead>
        <tbody id="cart-lines"></tbody>
      </table>
      <p id="cart-total"></p>
      <button id="checkout">Finalizar compra</button>
      <div id="notifications"></div>
    </section>`))

var userBodyTmpl = template.Must(template.New("userBody").Parse(`    <section id="user-profile" data-source="/api/v1/clientes">
      <h1>Mi perfil</h1>
      <form id="profile-form">
        <label for="profile-nombre">Nombre</label>
        <input type="text" id="profile-nombre" name="nombre">
        <label for="profile-apellido">Apellido</label>
        <input type="text" id="profile-apellido" name="apellido">
        <label for="profile-correo">Correo</label>
        <input type="email" id="profile-correo" name="correo">
        <label for="profile-direccion">Dirección</label>
        <input type="text" id="profile-direccion" name="direccion">
        <button type="submit">Guardar</button>
      </form>
      <div id="notifications"></div>
    </section>`))

var adminIndexBodyTmpl = template.Must(template.New("adminIndexBody").Parse(`    <div id="admin-shell">
      <aside id="admin-menu">
        <span class="admin-user">{{.Username}}</span>
        <button class="admin-menu-item" data-module="products">Productos</button>
        <button class="admin-menu-item" data-module="categories">Categorías</button>
        <button class="admin-menu-item" data-module="orders">Pedidos</button>
        <button class="admin-menu-item" data-module="users">Usuarios</button>
        <button class="admin-menu-item" data-module="stats">Estadísticas</button>
        <form id="logout-form" method="post" action="/admin/logout">
          <button type="submit" id="admin-logout">Cerrar sesión</button>
        </form>
      </aside>
      <div id="admin-content"></div>
    </div>`))

var adminLoginBodyTmpl = template.Must(template.New("adminLoginBody").Parse(`    <section id="admin-login">
      <h1>Acceso administrador</h1>
{{if .Error}}      <p class="login-error">{{.Error}}</p>
{{end}}      <form method="post" action="/admin/login">
        <label for="username">Usuario</label>
        <input type="text" id="username" name="username" required>
        <label for="password">Contraseña</label>
        <input type="password" id="password" name="password" required>
        <button type="submit">Entrar</button>
      </form>
    </section>`))

// IndexPage renders the storefront home page.
func IndexPage() string {
	return renderPage("Inicio", execute(indexBodyTmpl, nil))
}

// ProductPage renders the product detail page shell.
func ProductPage() string {
	return renderPage("Producto", execute(productBodyTmpl, nil))
}

// CartPage renders the shopping cart page shell.
func CartPage() string {
	return renderPage("Carrito", execute(cartBodyTmpl, nil))
}

// UserPage renders the customer profile page shell.
func UserPage() string {
	return renderPage("Mi cuenta", execute(userBodyTmpl, nil))
}

// AdminIndexPage renders the admin dashboard shell for a logged-in admin.
func AdminIndexPage(username string) string {
	body := execute(adminIndexBodyTmpl, struct{ Username string }{Username: username})
	return renderPage("Administración", body)
}

// AdminLoginPage renders the admin login page, optionally with an error line.
func AdminLoginPage(errorMessage string) string {
	body := execute(adminLoginBodyTmpl, struct{ Error string }{Error: errorMessage})
	return renderPage("Acceso", body)
}

// Admin pages behind the dashboard's deep links. They reuse the module
// fragments so the standalone pages and the shell stay in sync.
func AdminSectionPage(module string) (string, bool) {
	fragment, ok := AdminModuleFragment(module)
	if !ok {
		return "", false
	}
	return renderPage("Administración", fragment), true
}

func renderPage(title, body string) string {
	return execute(pageLayoutTmpl, pageData{Title: title, Body: template.HTML(body)})
}
