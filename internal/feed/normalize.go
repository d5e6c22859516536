package feed

import (
	"path"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/supplyhub/supplyhub/internal/vendor"
)

// CatalogRecord is one normalized catalog row: the category, product and
// variation a single feed line describes.
type CatalogRecord struct {
	CategoryName string

	ProductNumber    string
	BrandName        string
	ShortDescription string
	FullDescription  string

	ItemNumber string
	ColorName  string
	ColorCode  string
	HexCode    string
	SizeCode   string
	Size       string
	CaseQty    int
	Weight     string
	FrontImage string
	BackImage  string
	SideImage  string
	GTIN       string
}

// InventoryRecord is one normalized stock row.
type InventoryRecord struct {
	ItemNumber string
	GTIN       string
	Quantity   int
}

// PricingRecord is one normalized pricing row.
type PricingRecord struct {
	ItemNumber string
	GTIN       string
	Piece      decimal.NullDecimal
	Dozen      decimal.NullDecimal
	Case       decimal.NullDecimal
	Retail     decimal.NullDecimal
}

// Normalizer maps raw feed rows to canonical records using a vendor profile.
type Normalizer struct {
	profile vendor.Profile
}

func NewNormalizer(p vendor.Profile) *Normalizer {
	return &Normalizer{profile: p}
}

// get reads a mapped column, trimmed. Unmapped fields read as empty; mapped
// fields missing from the file are errors (see Row.Get).
func (n *Normalizer) get(row Row, f vendor.Field) (string, error) {
	col := n.profile.Column(f)
	if col == "" {
		return "", nil
	}
	v, err := row.Get(col)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

// Catalog normalizes a catalog row. A nil record with a nil error means the
// row was filtered (discontinued) and should be counted as skipped.
func (n *Normalizer) Catalog(row Row) (*CatalogRecord, error) {
	if n.profile.FilterDiscontinued {
		status, err := n.get(row, vendor.FieldStatus)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(status, n.profile.DiscontinuedValue) {
			return nil, nil
		}
	}

	rec := &CatalogRecord{}
	var err error
	fields := []struct {
		dst *string
		f   vendor.Field
	}{
		{&rec.CategoryName, vendor.FieldCategory},
		{&rec.ProductNumber, vendor.FieldProductNumber},
		{&rec.BrandName, vendor.FieldBrandName},
		{&rec.ShortDescription, vendor.FieldShortDescription},
		{&rec.FullDescription, vendor.FieldFullDescription},
		{&rec.ItemNumber, vendor.FieldItemNumber},
		{&rec.ColorName, vendor.FieldColorName},
		{&rec.ColorCode, vendor.FieldColorCode},
		{&rec.HexCode, vendor.FieldHexCode},
		{&rec.SizeCode, vendor.FieldSizeCode},
		{&rec.Size, vendor.FieldSize},
		{&rec.Weight, vendor.FieldWeight},
		{&rec.FrontImage, vendor.FieldFrontImage},
		{&rec.BackImage, vendor.FieldBackImage},
		{&rec.SideImage, vendor.FieldSideImage},
		{&rec.GTIN, vendor.FieldGTIN},
	}
	for _, fld := range fields {
		if *fld.dst, err = n.get(row, fld.f); err != nil {
			return nil, err
		}
	}

	caseQty, err := n.get(row, vendor.FieldCaseQty)
	if err != nil {
		return nil, err
	}
	rec.CaseQty = CleanQuantity(caseQty)

	if n.profile.ProductNumberFromImage {
		rec.ProductNumber = strings.TrimSuffix(rec.ProductNumber, path.Ext(rec.ProductNumber))
	}

	if base := n.profile.ImageBaseURL; base != "" {
		rec.FrontImage = strings.TrimPrefix(rec.FrontImage, base)
		rec.BackImage = strings.TrimPrefix(rec.BackImage, base)
		rec.SideImage = strings.TrimPrefix(rec.SideImage, base)
	}

	// Some vendors ship the back image as a bare filename next to a fully
	// qualified front image URL. Slice the front URL by hand: path.Dir
	// would clean "https://" down to "https:/".
	if n.profile.RebuildBackImage && rec.BackImage != "" && rec.FrontImage != "" {
		if i := strings.LastIndex(rec.FrontImage, "/"); i >= 0 {
			rec.BackImage = rec.FrontImage[:i] + "/" + path.Base(rec.BackImage)
		}
	}

	return rec, nil
}

// Inventory normalizes a stock row, summing warehouse columns when the
// profile lists them.
func (n *Normalizer) Inventory(row Row) (*InventoryRecord, error) {
	item, err := n.get(row, vendor.FieldInventoryItemNumber)
	if err != nil {
		return nil, err
	}
	gtin, err := n.get(row, vendor.FieldInventoryGTIN)
	if err != nil {
		return nil, err
	}
	rec := &InventoryRecord{ItemNumber: item, GTIN: gtin}

	if cols := n.profile.WarehouseColumns; len(cols) > 0 {
		for _, col := range cols {
			// A warehouse the vendor stopped exporting contributes zero
			// stock; only the mapped key columns above are mandatory.
			v, err := row.Get(col)
			if err != nil {
				continue
			}
			rec.Quantity += CleanQuantity(v)
		}
		return rec, nil
	}

	qty, err := n.get(row, vendor.FieldQuantity)
	if err != nil {
		return nil, err
	}
	rec.Quantity = CleanQuantity(qty)
	return rec, nil
}

// Pricing normalizes a pricing row. Prices pass through CleanPrice, so a
// corrupt cell becomes null, never zero.
func (n *Normalizer) Pricing(row Row) (*PricingRecord, error) {
	item, err := n.get(row, vendor.FieldPricingItemNumber)
	if err != nil {
		return nil, err
	}
	gtin, err := n.get(row, vendor.FieldPricingGTIN)
	if err != nil {
		return nil, err
	}
	rec := &PricingRecord{ItemNumber: item, GTIN: gtin}

	prices := []struct {
		dst *decimal.NullDecimal
		f   vendor.Field
	}{
		{&rec.Piece, vendor.FieldPricePiece},
		{&rec.Dozen, vendor.FieldPriceDozen},
		{&rec.Case, vendor.FieldPriceCase},
		{&rec.Retail, vendor.FieldPriceRetail},
	}
	for _, p := range prices {
		raw, err := n.get(row, p.f)
		if err != nil {
			return nil, err
		}
		*p.dst = CleanPrice(raw)
	}
	return rec, nil
}
