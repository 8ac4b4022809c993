// Package catalog provides product and category repositories
package catalog

import (
	"database/sql"
	"fmt"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/catalog"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

type CategoryRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewCategoryRepository(db *sql.DB, logger *logging.ChanneledLogger) *CategoryRepository {
	return &CategoryRepository{db: db, logger: logger}
}

func scanCategoria(row interface{ Scan(...any) error }) (*catalog.Categoria, error) {
	var c catalog.Categoria
	var descripcion sql.NullString

	if err := row.Scan(&c.IDCategoria, &c.Nombre, &descripcion); err != nil {
		return nil, err
	}
	if descripcion.Valid {
		c.Descripcion = &descripcion.String
	}
	return &c, nil
}

// Create inserts a category and returns it with its assigned ID.
func (r *CategoryRepository) Create(create *catalog.CategoriaCreate) (*catalog.Categoria, error) {
	result, err := r.db.Exec(`INSERT INTO categoria (nombre, descripcion) VALUES (?, ?)`,
		create.Nombre, create.Descripcion)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read category id: %w", err)
	}
	return r.FindByID(int(id))
}

// FindByID returns the category or nil when it does not exist.
func (r *CategoryRepository) FindByID(id int) (*catalog.Categoria, error) {
	row := r.db.QueryRow(`SELECT id_categoria, nombre, descripcion FROM categoria WHERE id_categoria = ?`, id)
	c, err := scanCategoria(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category %d: %w", id, err)
	}
	return c, nil
}

// FindAll returns categories with offset pagination.
func (r *CategoryRepository) FindAll(skip, limit int) ([]*catalog.Categoria, error) {
	rows, err := r.db.Query(`SELECT id_categoria, nombre, descripcion FROM categoria ORDER BY id_categoria LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categorias := []*catalog.Categoria{}
	for rows.Next() {
		c, err := scanCategoria(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categorias = append(categorias, c)
	}
	return categorias, rows.Err()
}

// Update overwrites a category's fields. Returns nil when it does not exist.
func (r *CategoryRepository) Update(id int, update *catalog.CategoriaCreate) (*catalog.Categoria, error) {
	result, err := r.db.Exec(`UPDATE categoria SET nombre = ?, descripcion = ? WHERE id_categoria = ?`,
		update.Nombre, update.Descripcion, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update category %d: %w", id, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// Delete removes a category, clearing the reference on any product that
// pointed at it. Reports whether a row was deleted.
func (r *CategoryRepository) Delete(id int) (bool, error) {
	if _, err := r.db.Exec(`UPDATE producto SET id_categoria = NULL WHERE id_categoria = ?`, id); err != nil {
		return false, fmt.Errorf("failed to detach products from category %d: %w", id, err)
	}

	result, err := r.db.Exec(`DELETE FROM categoria WHERE id_categoria = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// CountAll returns the number of categories.
func (r *CategoryRepository) CountAll() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM categoria`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}
