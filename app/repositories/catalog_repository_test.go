package repositories_test

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/supplyhub/supplyhub/app/models"
	"github.com/supplyhub/supplyhub/app/repositories"
)

func newRepo(t *testing.T) (*repositories.CatalogRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "repo.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Variation{}))
	return repositories.NewCatalogRepository(db), db
}

func seedVariation(t *testing.T, repo *repositories.CatalogRepository, categoryName, productNumber, itemNumber, gtin string) *models.Variation {
	t.Helper()
	category, err := repo.GetOrCreateCategory(categoryName, "")
	require.NoError(t, err)

	product := &models.Product{ProductNumber: productNumber, CategoryID: category.ID}
	_, err = repo.GetOrCreateProduct(product)
	require.NoError(t, err)

	v := &models.Variation{
		ItemNumber: itemNumber,
		ProductID:  product.ID,
		ColorName:  "Navy",
		GTIN:       gtin,
	}
	_, err = repo.GetOrCreateVariation(v)
	require.NoError(t, err)
	return v
}

func TestGetOrCreateCategoryIdempotent(t *testing.T) {
	repo, db := newRepo(t)

	first, err := repo.GetOrCreateCategory("T-Shirts", "tees.png")
	require.NoError(t, err)
	second, err := repo.GetOrCreateCategory("T-Shirts", "other.png")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	// Attrs only apply on create; the stored image stays.
	assert.Equal(t, "tees.png", second.Image)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCategoryExistsByName(t *testing.T) {
	repo, _ := newRepo(t)
	_, err := repo.GetOrCreateCategory("T-Shirts", "")
	require.NoError(t, err)

	exists, err := repo.CategoryExistsByName("t-shirts")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.CategoryExistsByName("Hats")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetOrCreateProductNeverUpdates(t *testing.T) {
	repo, _ := newRepo(t)
	category, err := repo.GetOrCreateCategory("Polos", "")
	require.NoError(t, err)

	p1 := &models.Product{ProductNumber: "AB100", BrandName: "Apex Mills", CategoryID: category.ID}
	created, err := repo.GetOrCreateProduct(p1)
	require.NoError(t, err)
	assert.True(t, created)

	p2 := &models.Product{ProductNumber: "AB100", BrandName: "Renamed Mills", CategoryID: category.ID}
	created, err = repo.GetOrCreateProduct(p2)
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, p1.ID, p2.ID)
	assert.Equal(t, "Apex Mills", p2.BrandName)
}

func TestOverwriteVariationPreservesStockAndPrices(t *testing.T) {
	repo, _ := newRepo(t)
	v := seedVariation(t, repo, "T-Shirts", "AB100", "AB100-NVY-L", "001")

	qty := 30
	v.Quantity = &qty
	v.PricePerPiece = decimal.NullDecimal{Decimal: decimal.RequireFromString("4.20"), Valid: true}
	require.NoError(t, repo.SaveVariation(v))

	require.NoError(t, repo.OverwriteVariation(&models.Variation{
		ItemNumber: "AB100-NVY-L",
		ProductID:  v.ProductID,
		ColorName:  "Midnight",
		GTIN:       "001",
	}))

	got, err := repo.FindVariationByItemGTIN("AB100-NVY-L", "001")
	require.NoError(t, err)
	assert.Equal(t, "Midnight", got.ColorName)
	require.NotNil(t, got.Quantity)
	assert.Equal(t, 30, *got.Quantity)
	require.True(t, got.PricePerPiece.Valid)
	assert.Equal(t, "4.2", got.PricePerPiece.Decimal.String())
}

func TestFindVariationByItemGTINRequiresBothKeys(t *testing.T) {
	repo, _ := newRepo(t)
	seedVariation(t, repo, "T-Shirts", "AB100", "AB100-NVY-L", "001")

	_, err := repo.FindVariationByItemGTIN("AB100-NVY-L", "001")
	require.NoError(t, err)

	// A matching item number with the wrong GTIN is a different physical
	// item; it must not match.
	_, err = repo.FindVariationByItemGTIN("AB100-NVY-L", "999")
	assert.ErrorIs(t, err, repositories.ErrVariationNotFound)

	_, err = repo.FindVariationByItemGTIN("ZZ999", "001")
	assert.ErrorIs(t, err, repositories.ErrVariationNotFound)
}

func TestListProductsFilters(t *testing.T) {
	repo, _ := newRepo(t)
	seedVariation(t, repo, "T-Shirts", "AB100", "AB100-NVY-L", "001")
	seedVariation(t, repo, "Polos", "SM200", "SM200-RED-M", "002")

	products, pagination, err := repo.ListProducts(1, 20, repositories.ProductFilters{})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.EqualValues(t, 2, pagination.Total)

	products, _, err = repo.ListProducts(1, 20, repositories.ProductFilters{Category: "polos"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "SM200", products[0].ProductNumber)
	assert.Equal(t, "Polos", products[0].Category.Name)

	products, _, err = repo.ListProducts(1, 20, repositories.ProductFilters{Search: "ab1"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "AB100", products[0].ProductNumber)

	products, _, err = repo.ListProducts(1, 20, repositories.ProductFilters{Search: "does-not-exist"})
	require.NoError(t, err)
	assert.Len(t, products, 0)
}

func TestGetProductByNumberPreloads(t *testing.T) {
	repo, _ := newRepo(t)
	seedVariation(t, repo, "T-Shirts", "AB100", "AB100-NVY-L", "001")

	product, err := repo.GetProductByNumber("AB100")
	require.NoError(t, err)
	assert.Equal(t, "T-Shirts", product.Category.Name)
	require.Len(t, product.Variations, 1)
	assert.Equal(t, "AB100-NVY-L", product.Variations[0].ItemNumber)

	_, err = repo.GetProductByNumber("ZZ999")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}
