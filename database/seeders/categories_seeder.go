package seeders

import (
	"gorm.io/gorm"

	"github.com/supplyhub/supplyhub/app/models"
)

func init() {
	Register("categories", SeedCategories)
}

// SeedCategories inserts the storefront's baseline category set so the read
// API has stable navigation before the first vendor sync lands. Feed runs add
// any categories these miss.
func SeedCategories(db *gorm.DB) error {
	names := []string{
		"T-Shirts",
		"Polos",
		"Fleece",
		"Outerwear",
		"Headwear",
		"Bags",
		"Workwear",
	}
	for _, name := range names {
		var category models.Category
		err := db.Where(models.Category{Name: name}).
			FirstOrCreate(&category).Error
		if err != nil {
			return err
		}
	}
	return nil
}
