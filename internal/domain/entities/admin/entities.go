// Package admin defines entities for the admin console: session data and
// dashboard statistics payloads.
package admin

import "time"

// Session is the validated admin session attached to gated requests.
type Session struct {
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issuedAt"`
}

// ProductStats is the payload of /api/v1/admin/stats/products.
type ProductStats struct {
	TotalProductos     int `json:"total_productos"`
	ProductosBajoStock int `json:"productos_bajo_stock"`
	ProductosSinImagen int `json:"productos_sin_imagen"`
}

// OrderStatusCount pairs an order state with how many orders carry it.
type OrderStatusCount struct {
	Estado   string `json:"estado"`
	Cantidad int    `json:"cantidad"`
}

// OrderStats is the payload of /api/v1/admin/stats/orders.
type OrderStats struct {
	TotalPedidos  int                `json:"total_pedidos"`
	PedidosHoy    int                `json:"pedidos_hoy"`
	TotalVentas   float64            `json:"total_ventas"`
	PedidosEstado []OrderStatusCount `json:"pedidos_por_estado"`
}

// UserStats is the payload of /api/v1/admin/stats/users.
type UserStats struct {
	TotalUsuarios      int `json:"total_usuarios"`
	UsuariosConPedidos int `json:"usuarios_con_pedidos"`
	UsuariosNuevos     int `json:"usuarios_nuevos_7d"`
}

// DebugInfo is the payload of /api/v1/admin/debug: connectivity check plus
// row counts and latest rows per table.
type DebugInfo struct {
	DatabaseOK      bool           `json:"database_ok"`
	TotalCategorias int            `json:"total_categorias"`
	TotalProductos  int            `json:"total_productos"`
	TotalClientes   int            `json:"total_clientes"`
	TotalPedidos    int            `json:"total_pedidos"`
	UltimoProducto  map[string]any `json:"ultimo_producto,omitempty"`
	UltimoCliente   map[string]any `json:"ultimo_cliente,omitempty"`
	UltimoPedido    map[string]any `json:"ultimo_pedido,omitempty"`
	Error           string         `json:"error,omitempty"`
}

// OrderFilter is the query surface of /api/v1/admin/filter/orders.
type OrderFilter struct {
	Estado     string
	ClienteID  int
	FechaDesde *time.Time
	FechaHasta *time.Time
	Skip       int
	Limit      int
}

// ProductFilter is the query surface of /api/v1/admin/filter/products.
type ProductFilter struct {
	CategoriaID int
	StockMin    *int
	StockMax    *int
	PrecioMin   *float64
	PrecioMax   *float64
	Skip        int
	Limit       int
}

// StoreSnapshot is the periodic payload pushed to connected admin consoles
// over the stats stream.
type StoreSnapshot struct {
	Timestamp      time.Time `json:"timestamp"`
	TotalProductos int       `json:"total_productos"`
	TotalPedidos   int       `json:"total_pedidos"`
	PedidosHoy     int       `json:"pedidos_hoy"`
	TotalVentas    float64   `json:"total_ventas"`
	TotalClientes  int       `json:"total_clientes"`
	BajoStock      int       `json:"productos_bajo_stock"`
}
