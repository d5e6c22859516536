// Package repositories holds database access for the catalog entities.
package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/supplyhub/supplyhub/app/models"
	"github.com/supplyhub/supplyhub/pkg/orm"
)

// ErrProductNotFound is returned when no product matches the given number.
var ErrProductNotFound = errors.New("product not found")

// ErrVariationNotFound is returned when no variation matches an
// (item number, GTIN) pair.
var ErrVariationNotFound = errors.New("variation not found")

// ProductFilters narrows the product listing.
type ProductFilters struct {
	// Category filters by exact category name, case-insensitively.
	Category string
	// Search matches product number or short description substrings.
	Search string
}

// CatalogRepository handles all reads and writes for Category, Product and
// Variation. Every method is a single-record operation: the feed pipeline
// relies on there being no cross-row transaction.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ── Get-or-create (catalog pass) ─────────────────────────────────────────────

// GetOrCreateCategory looks up a category by exact name, creating it with the
// given image reference if absent. An existing category is returned unmodified.
func (r *CatalogRepository) GetOrCreateCategory(name, image string) (*models.Category, error) {
	var category models.Category
	err := r.db.
		Where(models.Category{Name: name}).
		Attrs(models.Category{Image: image}).
		FirstOrCreate(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetOrCreateProduct looks up a product by its number, creating it from the
// passed value if absent. Fields on an existing product are never updated —
// later catalog passes only attach new variations to it.
func (r *CatalogRepository) GetOrCreateProduct(product *models.Product) (created bool, err error) {
	var existing models.Product
	tx := r.db.
		Where(models.Product{ProductNumber: product.ProductNumber}).
		Attrs(*product).
		FirstOrCreate(&existing)
	if tx.Error != nil {
		return false, tx.Error
	}

	*product = existing
	return tx.RowsAffected > 0, nil
}

// GetOrCreateVariation looks up a variation by item number, creating it from
// the passed value if absent. Returns whether a new row was created; the
// caller applies the vendor's skip-vs-update policy when it was not.
func (r *CatalogRepository) GetOrCreateVariation(variation *models.Variation) (created bool, err error) {
	var existing models.Variation
	tx := r.db.
		Where(models.Variation{ItemNumber: variation.ItemNumber}).
		Attrs(*variation).
		FirstOrCreate(&existing)
	if tx.Error != nil {
		return false, tx.Error
	}

	*variation = existing
	return tx.RowsAffected > 0, nil
}

// catalogFields are the columns a catalog-pass overwrite touches. Inventory
// and pricing columns are deliberately absent so an "update existing" vendor
// policy never clobbers quantities or prices set by a later pass.
var catalogFields = []string{
	"product_id", "color_name", "color_code", "hex_code", "size_code",
	"size", "case_qty", "weight", "front_image", "back_image", "side_image",
	"gtin",
}

// OverwriteVariation replaces the catalog-mapped fields of the variation with
// the given item number.
func (r *CatalogRepository) OverwriteVariation(variation *models.Variation) error {
	return r.db.
		Model(&models.Variation{}).
		Where("item_number = ?", variation.ItemNumber).
		Select(catalogFields).
		Updates(variation).Error
}

// ── Composite lookup (inventory/pricing passes) ──────────────────────────────

// FindVariationByItemGTIN returns the variation matching both identifiers
// exactly, or ErrVariationNotFound.
func (r *CatalogRepository) FindVariationByItemGTIN(itemNumber, gtin string) (*models.Variation, error) {
	var variation models.Variation
	err := r.db.
		Where("item_number = ? AND gtin = ?", itemNumber, gtin).
		First(&variation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariationNotFound
		}
		return nil, err
	}
	return &variation, nil
}

// SaveVariation persists all fields of an already-loaded variation.
func (r *CatalogRepository) SaveVariation(variation *models.Variation) error {
	return r.db.Save(variation).Error
}

// ── Read API queries ─────────────────────────────────────────────────────────

// CategoryExistsByName reports whether a category with the name exists,
// case-insensitively.
func (r *CatalogRepository) CategoryExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.
		Model(&models.Category{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count).Error
	return count > 0, err
}

// ListProducts returns one page of products with their category and
// variations preloaded, narrowed by the given filters.
func (r *CatalogRepository) ListProducts(page, limit int, filters ProductFilters) ([]models.Product, orm.Pagination, error) {
	query := r.db.
		Model(&models.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Preload("Category").
		Preload("Variations")

	if filters.Category != "" {
		query = query.Where("LOWER(categories.name) = ?", strings.ToLower(filters.Category))
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("products.product_number LIKE ? OR products.short_description LIKE ?", like, like)
	}

	var products []models.Product
	pagination, err := orm.Use(query).GetWithPagination(&products, page, limit)
	return products, pagination, err
}

// GetProductByNumber returns one product with category and all variations,
// or ErrProductNotFound.
func (r *CatalogRepository) GetProductByNumber(productNumber string) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Preload("Category").
		Preload("Variations").
		Where("product_number = ?", productNumber).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ListCategories returns one page of categories.
func (r *CatalogRepository) ListCategories(page, limit int) ([]models.Category, orm.Pagination, error) {
	var categories []models.Category
	pagination, err := orm.Use(r.db.Model(&models.Category{}).Order("name")).
		GetWithPagination(&categories, page, limit)
	return categories, pagination, err
}
