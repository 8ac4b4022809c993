// Package catalog defines the product catalog domain entities. Wire names
// match the Tiendo REST API contract.
package catalog

// Producto is a product as served by /api/v1/productos.
type Producto struct {
	IDProducto  int     `json:"id_producto"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio"`
	Imagen      *string `json:"imagen,omitempty"`
	IDCategoria *int    `json:"id_categoria,omitempty"`
	Stock       int     `json:"stock"`
}

// ProductoCreate carries the fields accepted when creating or updating a product.
type ProductoCreate struct {
	Nombre      string  `json:"nombre" binding:"required"`
	Descripcion *string `json:"descripcion"`
	Precio      float64 `json:"precio"`
	Imagen      *string `json:"imagen"`
	IDCategoria *int    `json:"id_categoria"`
	Stock       int     `json:"stock"`
}

// Categoria is a product category.
type Categoria struct {
	IDCategoria int     `json:"id_categoria"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
}

// CategoriaCreate carries the fields accepted when creating or updating a category.
type CategoriaCreate struct {
	Nombre      string  `json:"nombre" binding:"required"`
	Descripcion *string `json:"descripcion"`
}
