package catalog

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/admin"
	entities "github.com/TiendoLabs/tiendo-go/internal/domain/entities/catalog"
	schema "github.com/TiendoLabs/tiendo-go/internal/infrastructure/database"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiendo.db")
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, schema.NewTableCreator().CreateSchema(db))
	return db
}

func quietLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToConsole = false
	cfg.EnableStreaming = false
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestProductRepository_CreateAndFind(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db, quietLogger(t))

	created, err := repo.Create(&entities.ProductoCreate{
		Nombre:      "Mouse inalámbrico",
		Descripcion: strPtr("Mouse óptico de 3 botones"),
		Precio:      19.99,
		Stock:       25,
	})
	require.NoError(t, err)
	assert.Positive(t, created.IDProducto)
	assert.Equal(t, "Mouse inalámbrico", created.Nombre)
	require.NotNil(t, created.Descripcion)
	assert.Nil(t, created.IDCategoria)

	found, err := repo.FindByID(created.IDProducto)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.IDProducto, found.IDProducto)
	assert.InDelta(t, 19.99, found.Precio, 0.001)
}

func TestProductRepository_FindByIDMissingReturnsNil(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db, quietLogger(t))

	found, err := repo.FindByID(999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProductRepository_FindAllPagination(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db, quietLogger(t))
	for i := 0; i < 5; i++ {
		_, err := repo.Create(&entities.ProductoCreate{Nombre: "Producto", Precio: 1, Stock: 1})
		require.NoError(t, err)
	}

	page, err := repo.FindAll(2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 3, page[0].IDProducto)
	assert.Equal(t, 4, page[1].IDProducto)
}

func TestProductRepository_FindByCategory(t *testing.T) {
	db := testDB(t)
	logger := quietLogger(t)
	categories := NewCategoryRepository(db, logger)
	products := NewProductRepository(db, logger)

	categoria, err := categories.Create(&entities.CategoriaCreate{Nombre: "Periféricos"})
	require.NoError(t, err)

	_, err = products.Create(&entities.ProductoCreate{Nombre: "Mouse", Precio: 19.99, IDCategoria: &categoria.IDCategoria, Stock: 5})
	require.NoError(t, err)
	_, err = products.Create(&entities.ProductoCreate{Nombre: "Silla", Precio: 120, Stock: 3})
	require.NoError(t, err)

	inCategory, err := products.FindByCategory(categoria.IDCategoria)
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	assert.Equal(t, "Mouse", inCategory[0].Nombre)
}

func TestProductRepository_UpdateMissingReturnsNil(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db, quietLogger(t))

	updated, err := repo.Update(42, &entities.ProductoCreate{Nombre: "Nada", Precio: 1})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestProductRepository_AdjustStock(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db, quietLogger(t))
	created, err := repo.Create(&entities.ProductoCreate{Nombre: "Teclado", Precio: 49.50, Stock: 10})
	require.NoError(t, err)

	require.NoError(t, repo.AdjustStock(created.IDProducto, -3))

	found, err := repo.FindByID(created.IDProducto)
	require.NoError(t, err)
	assert.Equal(t, 7, found.Stock)
}

func TestProductRepository_Delete(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db, quietLogger(t))
	created, err := repo.Create(&entities.ProductoCreate{Nombre: "Monitor", Precio: 200, Stock: 2})
	require.NoError(t, err)

	deleted, err := repo.Delete(created.IDProducto)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(created.IDProducto)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestProductRepository_Filter(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db, quietLogger(t))
	for _, p := range []entities.ProductoCreate{
		{Nombre: "Barato", Precio: 5, Stock: 50},
		{Nombre: "Medio", Precio: 50, Stock: 5},
		{Nombre: "Caro", Precio: 500, Stock: 1},
	} {
		p := p
		_, err := repo.Create(&p)
		require.NoError(t, err)
	}

	filtered, err := repo.Filter(&admin.ProductFilter{
		PrecioMin: float64Ptr(10),
		StockMin:  intPtr(2),
		Limit:     100,
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Medio", filtered[0].Nombre)
}

func float64Ptr(f float64) *float64 { return &f }

func TestProductRepository_Counts(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db, quietLogger(t))
	_, err := repo.Create(&entities.ProductoCreate{Nombre: "Con imagen", Precio: 10, Imagen: strPtr("/media/p1.webp"), Stock: 20})
	require.NoError(t, err)
	_, err = repo.Create(&entities.ProductoCreate{Nombre: "Sin imagen", Precio: 10, Stock: 2})
	require.NoError(t, err)

	total, err := repo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	low, err := repo.CountLowStock(5)
	require.NoError(t, err)
	assert.Equal(t, 1, low)

	missing, err := repo.CountMissingImage()
	require.NoError(t, err)
	assert.Equal(t, 1, missing)

	latest, err := repo.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "Sin imagen", latest.Nombre)
}

func TestCategoryRepository_RoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewCategoryRepository(db, quietLogger(t))

	created, err := repo.Create(&entities.CategoriaCreate{Nombre: "Hogar", Descripcion: strPtr("Artículos para el hogar")})
	require.NoError(t, err)

	found, err := repo.FindByID(created.IDCategoria)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Hogar", found.Nombre)

	updated, err := repo.Update(created.IDCategoria, &entities.CategoriaCreate{Nombre: "Hogar y jardín"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Hogar y jardín", updated.Nombre)

	deleted, err := repo.Delete(created.IDCategoria)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err = repo.FindByID(created.IDCategoria)
	require.NoError(t, err)
	assert.Nil(t, found)
}
