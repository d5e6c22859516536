// Package models defines the three-tier catalog entities the vendor feeds
// reconcile into: Category → Product → Variation.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is created lazily the first time a product references it and is
// never updated or deleted by the feed pipeline. Name is the natural key.
type Category struct {
	ID    uint   `gorm:"primaryKey" json:"-"`
	Name  string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Image string `gorm:"size:255" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

// Product groups variations under a vendor style. ProductNumber is the
// natural key. Fields are set only when the row is first created — later
// catalog passes never touch an existing product.
type Product struct {
	ID                     uint   `gorm:"primaryKey" json:"-"`
	ProductNumber          string `gorm:"size:255;uniqueIndex;not null" json:"product_number"`
	BrandName              string `gorm:"size:255" json:"brand_name"`
	ShortDescription       string `gorm:"size:255" json:"short_description"`
	FullFeatureDescription string `gorm:"type:text" json:"full_feature_description"`

	CategoryID uint     `gorm:"not null;index" json:"-"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category"`

	Variations []Variation `gorm:"foreignKey:ProductID" json:"variations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// Variation is one sellable item (style + color + size). ItemNumber is the
// primary identity; inventory and pricing passes additionally require an
// exact GTIN match before updating.
type Variation struct {
	ID         uint    `gorm:"primaryKey" json:"-"`
	ItemNumber string  `gorm:"size:255;uniqueIndex;not null" json:"item_number"`
	ProductID  uint    `gorm:"not null;index" json:"-"`
	Product    Product `gorm:"foreignKey:ProductID" json:"-"`

	ColorName string `gorm:"size:255" json:"color_name"`
	ColorCode string `gorm:"size:255" json:"color_code,omitempty"`
	HexCode   string `gorm:"size:255" json:"hex_code"`
	SizeCode  string `gorm:"size:255" json:"size_code,omitempty"`
	Size      string `gorm:"size:255" json:"size"`
	CaseQty   int    `json:"case_qty"`
	Weight    string `gorm:"size:255" json:"weight"`

	FrontImage string `gorm:"size:255" json:"front_image"`
	BackImage  string `gorm:"size:255" json:"back_image"`
	SideImage  string `gorm:"size:255" json:"side_image,omitempty"`

	GTIN string `gorm:"size:255;index" json:"gtin"`

	// Inventory: nil until an inventory pass has seen this item.
	Quantity *int `json:"quantity"`

	// Pricing: null (not zero) whenever the vendor file carried no parseable
	// value for the field.
	PricePerPiece decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"price_per_piece"`
	PricePerDozen decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"price_per_dozen"`
	PricePerCase  decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"price_per_case"`
	RetailPrice   decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"retail_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Variation) TableName() string { return "variations" }
