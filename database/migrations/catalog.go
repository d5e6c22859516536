package migrations

import (
	"github.com/supplyhub/supplyhub/app/models"
	"github.com/supplyhub/supplyhub/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260201000000_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20260201000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260201000002_create_variations_table", &CreateVariationsTable{})
}

// -------- 0001: categories --------

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: variations --------

type CreateVariationsTable struct{}

func (m *CreateVariationsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Variation{})
}

func (m *CreateVariationsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("variations")
}
