// Package catalog provides product and category repositories
package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/admin"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/catalog"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

type ProductRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewProductRepository(db *sql.DB, logger *logging.ChanneledLogger) *ProductRepository {
	return &ProductRepository{db: db, logger: logger}
}

const productColumns = "id_producto, nombre, descripcion, precio, imagen, id_categoria, stock"

func scanProducto(row interface{ Scan(...any) error }) (*catalog.Producto, error) {
	var p catalog.Producto
	var descripcion, imagen sql.NullString
	var idCategoria sql.NullInt64

	if err := row.Scan(&p.IDProducto, &p.Nombre, &descripcion, &p.Precio, &imagen, &idCategoria, &p.Stock); err != nil {
		return nil, err
	}

	if descripcion.Valid {
		p.Descripcion = &descripcion.String
	}
	if imagen.Valid {
		p.Imagen = &imagen.String
	}
	if idCategoria.Valid {
		id := int(idCategoria.Int64)
		p.IDCategoria = &id
	}
	return &p, nil
}

// Create inserts a product and returns it with its assigned ID.
func (r *ProductRepository) Create(create *catalog.ProductoCreate) (*catalog.Producto, error) {
	result, err := r.db.Exec(
		`INSERT INTO producto (nombre, descripcion, precio, imagen, id_categoria, stock) VALUES (?, ?, ?, ?, ?, ?)`,
		create.Nombre, create.Descripcion, create.Precio, create.Imagen, create.IDCategoria, create.Stock,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read product id: %w", err)
	}
	return r.FindByID(int(id))
}

// FindByID returns the product or nil when it does not exist.
func (r *ProductRepository) FindByID(id int) (*catalog.Producto, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM producto WHERE id_producto = ?`, id)
	p, err := scanProducto(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	return p, nil
}

// FindAll returns products with offset pagination.
func (r *ProductRepository) FindAll(skip, limit int) ([]*catalog.Producto, error) {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM producto ORDER BY id_producto LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return collectProductos(rows)
}

// FindByCategory returns every product in one category.
func (r *ProductRepository) FindByCategory(categoriaID int) ([]*catalog.Producto, error) {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM producto WHERE id_categoria = ? ORDER BY id_producto`, categoriaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for category %d: %w", categoriaID, err)
	}
	defer rows.Close()

	return collectProductos(rows)
}

// Update overwrites a product's fields. Returns nil when the product does not exist.
func (r *ProductRepository) Update(id int, update *catalog.ProductoCreate) (*catalog.Producto, error) {
	result, err := r.db.Exec(
		`UPDATE producto SET nombre = ?, descripcion = ?, precio = ?, imagen = ?, id_categoria = ?, stock = ? WHERE id_producto = ?`,
		update.Nombre, update.Descripcion, update.Precio, update.Imagen, update.IDCategoria, update.Stock, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// SetImagen updates only the product's image path.
func (r *ProductRepository) SetImagen(id int, imagen string) error {
	_, err := r.db.Exec(`UPDATE producto SET imagen = ? WHERE id_producto = ?`, imagen, id)
	if err != nil {
		return fmt.Errorf("failed to set image for product %d: %w", id, err)
	}
	return nil
}

// AdjustStock decrements stock by the quantity sold.
func (r *ProductRepository) AdjustStock(id, delta int) error {
	_, err := r.db.Exec(`UPDATE producto SET stock = stock + ? WHERE id_producto = ?`, delta, id)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for product %d: %w", id, err)
	}
	return nil
}

// Delete removes a product. Reports whether a row was deleted.
func (r *ProductRepository) Delete(id int) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM producto WHERE id_producto = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// Filter applies the admin product filter with pagination.
func (r *ProductRepository) Filter(filter *admin.ProductFilter) ([]*catalog.Producto, error) {
	var conditions []string
	var args []any

	if filter.CategoriaID > 0 {
		conditions = append(conditions, "id_categoria = ?")
		args = append(args, filter.CategoriaID)
	}
	if filter.StockMin != nil {
		conditions = append(conditions, "stock >= ?")
		args = append(args, *filter.StockMin)
	}
	if filter.StockMax != nil {
		conditions = append(conditions, "stock <= ?")
		args = append(args, *filter.StockMax)
	}
	if filter.PrecioMin != nil {
		conditions = append(conditions, "precio >= ?")
		args = append(args, *filter.PrecioMin)
	}
	if filter.PrecioMax != nil {
		conditions = append(conditions, "precio <= ?")
		args = append(args, *filter.PrecioMax)
	}

	query := `SELECT ` + productColumns + ` FROM producto`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id_producto LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	defer rows.Close()

	return collectProductos(rows)
}

// CountAll returns the number of products.
func (r *ProductRepository) CountAll() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM producto`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountLowStock counts products with stock below the threshold.
func (r *ProductRepository) CountLowStock(threshold int) (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM producto WHERE stock < ?`, threshold).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count low-stock products: %w", err)
	}
	return count, nil
}

// CountMissingImage counts products with no image assigned.
func (r *ProductRepository) CountMissingImage() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM producto WHERE imagen IS NULL OR imagen = ''`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products without image: %w", err)
	}
	return count, nil
}

// Latest returns the most recently created product, or nil on an empty table.
func (r *ProductRepository) Latest() (*catalog.Producto, error) {
	row := r.db.QueryRow(`SELECT ` + productColumns + ` FROM producto ORDER BY id_producto DESC LIMIT 1`)
	p, err := scanProducto(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest product: %w", err)
	}
	return p, nil
}

func collectProductos(rows *sql.Rows) ([]*catalog.Producto, error) {
	productos := []*catalog.Producto{}
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		productos = append(productos, p)
	}
	return productos, rows.Err()
}
