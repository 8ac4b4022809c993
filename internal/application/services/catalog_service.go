package services

import (
	"fmt"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/admin"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/catalog"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/media"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	catalogrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/catalog"
)

// CatalogService orchestrates product and category operations, including the
// product image pipeline.
type CatalogService struct {
	products   *catalogrepo.ProductRepository
	categories *catalogrepo.CategoryRepository
	images     *media.ImageProcessor
	logger     *logging.ChanneledLogger
}

// NewCatalogService creates a new catalog application service
func NewCatalogService(products *catalogrepo.ProductRepository, categories *catalogrepo.CategoryRepository, images *media.ImageProcessor, logger *logging.ChanneledLogger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		images:     images,
		logger:     logger,
	}
}

// CreateProduct validates and stores a new product.
func (s *CatalogService) CreateProduct(create *catalog.ProductoCreate) (*catalog.Producto, error) {
	if create.Precio < 0 {
		return nil, fmt.Errorf("el precio no puede ser negativo")
	}
	if create.Stock < 0 {
		return nil, fmt.Errorf("el stock no puede ser negativo")
	}
	if create.IDCategoria != nil {
		categoria, err := s.categories.FindByID(*create.IDCategoria)
		if err != nil {
			return nil, err
		}
		if categoria == nil {
			return nil, ErrUnknownCategory
		}
	}

	producto, err := s.products.Create(create)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.logger.Catalog().Info("Product created", "id", producto.IDProducto, "nombre", producto.Nombre)
	return producto, nil
}

// GetProduct returns a product by ID, or nil when missing.
func (s *CatalogService) GetProduct(id int) (*catalog.Producto, error) {
	return s.products.FindByID(id)
}

// ListProducts returns products with offset pagination.
func (s *CatalogService) ListProducts(skip, limit int) ([]*catalog.Producto, error) {
	return s.products.FindAll(skip, limit)
}

// ListProductsByCategory returns every product in a category.
func (s *CatalogService) ListProductsByCategory(categoriaID int) ([]*catalog.Producto, error) {
	categoria, err := s.categories.FindByID(categoriaID)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, ErrUnknownCategory
	}
	return s.products.FindByCategory(categoriaID)
}

// UpdateProduct validates and replaces a product. Returns nil when missing.
func (s *CatalogService) UpdateProduct(id int, update *catalog.ProductoCreate) (*catalog.Producto, error) {
	if update.Precio < 0 {
		return nil, fmt.Errorf("el precio no puede ser negativo")
	}
	if update.IDCategoria != nil {
		categoria, err := s.categories.FindByID(*update.IDCategoria)
		if err != nil {
			return nil, err
		}
		if categoria == nil {
			return nil, ErrUnknownCategory
		}
	}
	return s.products.Update(id, update)
}

// DeleteProduct removes a product and its stored image files.
func (s *CatalogService) DeleteProduct(id int) (bool, error) {
	producto, err := s.products.FindByID(id)
	if err != nil {
		return false, err
	}
	if producto == nil {
		return false, nil
	}

	deleted, err := s.products.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted && producto.Imagen != nil && *producto.Imagen != "" {
		if err := s.images.DeleteProductImage(*producto.Imagen); err != nil {
			s.logger.Media().Warn("Failed to remove image files for deleted product", "id", id, "error", err)
		}
	}
	if deleted {
		s.logger.Catalog().Info("Product deleted", "id", id)
	}
	return deleted, nil
}

// AttachProductImage stores a base64 image for a product and records its URL.
// Returns nil when the product does not exist.
func (s *CatalogService) AttachProductImage(id int, base64Data string) (*catalog.Producto, error) {
	producto, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}

	imageURL, thumbnails, err := s.images.ProcessProductImage(base64Data)
	if err != nil {
		return nil, fmt.Errorf("failed to process product image: %w", err)
	}

	// Replace the previous image files once the new ones exist.
	if producto.Imagen != nil && *producto.Imagen != "" {
		if err := s.images.DeleteProductImage(*producto.Imagen); err != nil {
			s.logger.Media().Warn("Failed to remove previous image files", "id", id, "error", err)
		}
	}

	if err := s.products.SetImagen(id, imageURL); err != nil {
		return nil, err
	}
	s.logger.Media().Info("Product image stored", "id", id, "url", imageURL, "thumbnails", len(thumbnails))
	return s.products.FindByID(id)
}

// AdjustStock applies a stock delta and returns the updated product. Rejects
// adjustments that would leave negative stock.
func (s *CatalogService) AdjustStock(id, delta int) (*catalog.Producto, error) {
	producto, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	if producto.Stock+delta < 0 {
		return nil, fmt.Errorf("stock insuficiente para el producto %d", id)
	}
	if err := s.products.AdjustStock(id, delta); err != nil {
		return nil, err
	}
	return s.products.FindByID(id)
}

// FilterProducts returns products matching the admin console filter.
func (s *CatalogService) FilterProducts(filter *admin.ProductFilter) ([]*catalog.Producto, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.products.Filter(filter)
}

// CreateCategory stores a new category.
func (s *CatalogService) CreateCategory(create *catalog.CategoriaCreate) (*catalog.Categoria, error) {
	categoria, err := s.categories.Create(create)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.logger.Catalog().Info("Category created", "id", categoria.IDCategoria, "nombre", categoria.Nombre)
	return categoria, nil
}

// GetCategory returns a category by ID, or nil when missing.
func (s *CatalogService) GetCategory(id int) (*catalog.Categoria, error) {
	return s.categories.FindByID(id)
}

// ListCategories returns categories with offset pagination.
func (s *CatalogService) ListCategories(skip, limit int) ([]*catalog.Categoria, error) {
	return s.categories.FindAll(skip, limit)
}

// UpdateCategory replaces a category. Returns nil when missing.
func (s *CatalogService) UpdateCategory(id int, update *catalog.CategoriaCreate) (*catalog.Categoria, error) {
	return s.categories.Update(id, update)
}

// DeleteCategory removes a category. Products keep their dangling category
// reference cleared by the repository.
func (s *CatalogService) DeleteCategory(id int) (bool, error) {
	deleted, err := s.categories.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Catalog().Info("Category deleted", "id", id)
	}
	return deleted, nil
}
