package feed_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyhub/supplyhub/config"
	"github.com/supplyhub/supplyhub/internal/feed"
	"github.com/supplyhub/supplyhub/internal/vendor"
)

// makeRow stages a two-line file and reads its single data row back, so test
// rows go through the same decode path as production ones.
func makeRow(t *testing.T, delim rune, header, fields []string) feed.Row {
	t.Helper()
	disk := newTestDisk(t)

	d := string(delim)
	content := strings.Join(header, d) + "\n" + strings.Join(fields, d) + "\n"
	require.NoError(t, disk.Put("row.txt", []byte(content)))

	r, err := feed.OpenFile(disk, "row.txt", delim)
	require.NoError(t, err)
	defer r.Close()

	row, err := r.Next()
	require.NoError(t, err)
	return row
}

func apexProfile(t *testing.T) vendor.Profile {
	t.Helper()
	p, err := vendor.Lookup("apex")
	require.NoError(t, err)
	return p
}

func summitProfile(t *testing.T) vendor.Profile {
	t.Helper()
	p, err := vendor.Lookup("summit")
	require.NoError(t, err)
	return p
}

func TestNormalizeApexCatalog(t *testing.T) {
	p := apexProfile(t)
	n := feed.NewNormalizer(p)

	base := config.ApexImageURL()
	row := makeRow(t, '^',
		[]string{
			"Category", "Style", "Short Description", "Mill Name",
			"Full Feature Description", "Item Number", "Color Name",
			"Color Code", "Hex Code", "Size Code", "Size", "Case Qty",
			"Weight", "Front Image Hi Res URL", "Back Image Hi Res URL",
			"Side Image Hi Res URL", "Gtin",
		},
		[]string{
			"T-Shirts", "AB100", "Heavy Cotton Tee", "Apex Mills",
			"6.1 oz preshrunk cotton", "AB100-NVY-L", "Navy",
			"NVY", "1F2A44", "L", "Large", "36",
			"0.4", base + "images/ab100_front.jpg", base + "images/ab100_back.jpg",
			"", "00012345678905",
		})

	rec, err := n.Catalog(row)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "T-Shirts", rec.CategoryName)
	assert.Equal(t, "AB100", rec.ProductNumber)
	assert.Equal(t, "AB100-NVY-L", rec.ItemNumber)
	assert.Equal(t, "Apex Mills", rec.BrandName)
	assert.Equal(t, 36, rec.CaseQty)
	assert.Equal(t, "00012345678905", rec.GTIN)

	// The shared image host is stripped; only the relative path is kept.
	assert.Equal(t, "images/ab100_front.jpg", rec.FrontImage)
	assert.Equal(t, "images/ab100_back.jpg", rec.BackImage)
	assert.Equal(t, "", rec.SideImage)
}

func TestNormalizeApexInventorySumsWarehouses(t *testing.T) {
	p := apexProfile(t)
	n := feed.NewNormalizer(p)

	header := append([]string{"Item Number", "GTIN Number"}, p.WarehouseColumns...)
	fields := []string{"AB100-NVY-L", "00012345678905"}
	for i := range p.WarehouseColumns {
		fields = append(fields, fmt.Sprintf("%d", i+1)) // 1+2+...+15 = 120
	}
	// Corrupt one warehouse cell; it counts as zero, the rest still sum.
	fields[2+4] = "nan"

	rec, err := n.Inventory(makeRow(t, ',', header, fields))
	require.NoError(t, err)
	assert.Equal(t, "AB100-NVY-L", rec.ItemNumber)
	assert.Equal(t, 120-5, rec.Quantity)
}

func TestNormalizeApexInventoryAbsentWarehouseIsZero(t *testing.T) {
	p := apexProfile(t)
	n := feed.NewNormalizer(p)

	// The vendor dropped the last warehouse from the export entirely; it
	// counts as zero stock rather than failing the row.
	short := p.WarehouseColumns[:len(p.WarehouseColumns)-1]
	header := append([]string{"Item Number", "GTIN Number"}, short...)
	fields := []string{"AB100-NVY-L", "00012345678905"}
	for range short {
		fields = append(fields, "2")
	}

	rec, err := n.Inventory(makeRow(t, ',', header, fields))
	require.NoError(t, err)
	assert.Equal(t, 2*len(short), rec.Quantity)
}

func TestNormalizeApexPricingTrailingSpaceHeader(t *testing.T) {
	p := apexProfile(t)
	n := feed.NewNormalizer(p)

	rec, err := n.Pricing(makeRow(t, '^',
		[]string{"Item Number ", "Gtin", "Piece", "Dozen", "Case", "Retail"},
		[]string{"AB100-NVY-L", "00012345678905", "$4.20", "45.60", "nan", "8.99"}))
	require.NoError(t, err)

	assert.Equal(t, "AB100-NVY-L", rec.ItemNumber)
	require.True(t, rec.Piece.Valid)
	assert.Equal(t, "4.2", rec.Piece.Decimal.String())
	assert.False(t, rec.Case.Valid)
	require.True(t, rec.Retail.Valid)
	assert.Equal(t, "8.99", rec.Retail.Decimal.String())
}

func summitHeader() []string {
	return []string{
		"PRODUCT_STATUS", "CATEGORY_NAME", "THUMBNAIL_IMAGE", "PRODUCT_TITLE",
		"MILL", "PRODUCT_DESCRIPTION", "UNIQUE_KEY", "COLOR_NAME",
		"COLOR_SQUARE_IMAGE", "SIZE", "CASE_SIZE", "PIECE_WEIGHT",
		"FRONT_MODEL_IMAGE_URL", "BACK_MODEL_IMAGE", "GTIN", "QTY",
		"PIECE_PRICE", "DOZENS_PRICE", "CASE_PRICE", "MSRP",
	}
}

func summitFields() []string {
	return []string{
		"Active", "Polos", "SM200_thumb.png", "Pique Polo",
		"Summit Mills", "Classic pique knit", "SM200-RED-M", "Red",
		"red_square.gif", "M", "24", "0.5",
		"https://cdn.example.com/summit/sm200/front.jpg", "back.jpg",
		"00098765432109", "57",
		"7.10", "80.00", "150.00", "14.99",
	}
}

func TestNormalizeSummitCatalog(t *testing.T) {
	n := feed.NewNormalizer(summitProfile(t))

	rec, err := n.Catalog(makeRow(t, ',', summitHeader(), summitFields()))
	require.NoError(t, err)
	require.NotNil(t, rec)

	// Product number is the thumbnail filename without its extension.
	assert.Equal(t, "SM200_thumb", rec.ProductNumber)
	assert.Equal(t, "SM200-RED-M", rec.ItemNumber)
	assert.Equal(t, "Polos", rec.CategoryName)
	assert.Equal(t, 24, rec.CaseQty)

	// The bare back-image filename is resolved against the front image's
	// directory.
	assert.Equal(t, "https://cdn.example.com/summit/sm200/back.jpg", rec.BackImage)
}

func TestNormalizeSummitDiscontinuedFiltered(t *testing.T) {
	n := feed.NewNormalizer(summitProfile(t))

	fields := summitFields()
	fields[0] = "Discontinued"

	rec, err := n.Catalog(makeRow(t, ',', summitHeader(), fields))
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestNormalizeSummitInventorySingleColumn(t *testing.T) {
	n := feed.NewNormalizer(summitProfile(t))

	rec, err := n.Inventory(makeRow(t, ',', summitHeader(), summitFields()))
	require.NoError(t, err)
	assert.Equal(t, "SM200-RED-M", rec.ItemNumber)
	assert.Equal(t, 57, rec.Quantity)
}

func TestNormalizeMissingMappedColumnFails(t *testing.T) {
	n := feed.NewNormalizer(apexProfile(t))

	// No Gtin column: the vendor changed their format, the row must error.
	row := makeRow(t, '^',
		[]string{"Category", "Style"},
		[]string{"T-Shirts", "AB100"})
	_, err := n.Catalog(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}
