package templates

import "html/template"

// Admin module fragments swapped into the admin shell's content panel. Each
// fragment is self-contained markup the shell injects after a menu selection;
// the stats module carries an inline script that opens the live stats stream.
var adminModuleTmpls = map[string]*template.Template{
	"products": template.Must(template.New("adminProducts").Parse(`<div id="module-products" class="admin-module">
  <h2>Productos</h2>
  <table class="admin-table" data-source="/api/v1/admin/filter/products">
    <thead><tr><th>ID</th><th>Nombre</th><th>Precio</th><th>Stock</th><th>Categoría</th></tr></thead>
    <tbody id="products-rows"></tbody>
  </table>
  <a href="/admin/products/add" class="admin-action">Añadir producto</a>
</div>`)),

	"categories": template.Must(template.New("adminCategories").Parse(`<div id="module-categories" class="admin-module">
  <h2>Categorías</h2>
  <table class="admin-table" data-source="/api/v1/categorias">
    <thead><tr><th>ID</th><th>Nombre</th><th>Descripción</th></tr></thead>
    <tbody id="categories-rows"></tbody>
  </table>
  <a href="/admin/categories/add" class="admin-action">Añadir categoría</a>
</div>`)),

	"orders": template.Must(template.New("adminOrders").Parse(`<div id="module-orders" class="admin-module">
  <h2>Pedidos</h2>
  <table class="admin-table" data-source="/api/v1/admin/filter/orders">
    <thead><tr><th>ID</th><th>Cliente</th><th>Fecha</th><th>Total</th><th>Estado</th></tr></thead>
    <tbody id="orders-rows"></tbody>
  </table>
  <a href="/admin/orders/pending" class="admin-action">Ver pendientes</a>
</div>`)),

	"users": template.Must(template.New("adminUsers").Parse(`<div id="module-users" class="admin-module">
  <h2>Usuarios</h2>
  <table class="admin-table" data-source="/api/v1/clientes">
    <thead><tr><th>ID</th><th>Nombre</th><th>Correo</th><th>Registro</th></tr></thead>
    <tbody id="users-rows"></tbody>
  </table>
  <a href="/admin/users/activity" class="admin-action">Actividad</a>
</div>`)),

	"stats": template.Must(template.New("adminStats").Parse(`<div id="module-stats" class="admin-module">
  <h2>Estadísticas</h2>
  <div class="stats-cards">
    <div class="stats-card" id="stats-products" data-source="/api/v1/admin/stats/products"></div>
    <div class="stats-card" id="stats-orders" data-source="/api/v1/admin/stats/orders"></div>
    <div class="stats-card" id="stats-users" data-source="/api/v1/admin/stats/users"></div>
  </div>
  <script>window.tiendoOpenStatsStream && window.tiendoOpenStatsStream("/admin/stats/stream");</script>
</div>`)),
}

// AdminModuleNames lists the valid admin module fragment names.
func AdminModuleNames() []string {
	return []string{"products", "categories", "orders", "users", "stats"}
}

// AdminModuleFragment renders a named admin module fragment. Returns false
// for unknown module names.
func AdminModuleFragment(name string) (string, bool) {
	tmpl, ok := adminModuleTmpls[name]
	if !ok {
		return "", false
	}
	return execute(tmpl, nil), true
}
