package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/supplyhub/supplyhub/app/models"
	"github.com/supplyhub/supplyhub/app/repositories"
	"github.com/supplyhub/supplyhub/pkg/cache"
	"github.com/supplyhub/supplyhub/pkg/orm"
	"github.com/supplyhub/supplyhub/pkg/response"
)

const listCacheTTL = 10 * time.Minute

// CatalogStore is the slice of the repository the catalog endpoints need.
type CatalogStore interface {
	ListProducts(page, limit int, filters repositories.ProductFilters) ([]models.Product, orm.Pagination, error)
	GetProductByNumber(productNumber string) (*models.Product, error)
	ListCategories(page, limit int) ([]models.Category, orm.Pagination, error)
	CategoryExistsByName(name string) (bool, error)
}

type CatalogController struct {
	store CatalogStore
}

func NewCatalogController(store CatalogStore) *CatalogController {
	return &CatalogController{store: store}
}

// productSummary is the list-view shape: product fields plus a cover image
// and the retail-price range across its variations.
type productSummary struct {
	ProductNumber    string           `json:"product_number"`
	BrandName        string           `json:"brand_name"`
	ShortDescription string           `json:"short_description"`
	Category         string           `json:"category"`
	Image            string           `json:"image"`
	MinPrice         *decimal.Decimal `json:"min_price"`
	MaxPrice         *decimal.Decimal `json:"max_price"`
}

func summarize(p models.Product) productSummary {
	s := productSummary{
		ProductNumber:    p.ProductNumber,
		BrandName:        p.BrandName,
		ShortDescription: p.ShortDescription,
		Category:         p.Category.Name,
	}
	for _, v := range p.Variations {
		if s.Image == "" && v.FrontImage != "" {
			s.Image = v.FrontImage
		}
		if !v.RetailPrice.Valid {
			continue
		}
		price := v.RetailPrice.Decimal
		if s.MinPrice == nil || price.LessThan(*s.MinPrice) {
			d := price
			s.MinPrice = &d
		}
		if s.MaxPrice == nil || price.GreaterThan(*s.MaxPrice) {
			d := price
			s.MaxPrice = &d
		}
	}
	return s
}

type productListPayload struct {
	Products   []productSummary `json:"products"`
	Pagination orm.Pagination   `json:"pagination"`
}

// List handles GET /api/products.
func (c *CatalogController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	filters := repositories.ProductFilters{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	// Filtering by a category nobody has is a 404, not an empty page.
	if filters.Category != "" {
		exists, err := c.store.CategoryExistsByName(filters.Category)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "could not load products")
			return
		}
		if !exists {
			response.NotFound(w)
			return
		}
	}

	key := fmt.Sprintf("products:list:%d:%d:%s:%s", page, limit, filters.Category, filters.Search)
	var payload productListPayload
	if cache.Get(key, &payload) {
		response.Paginated(w, payload.Products, payload.Pagination)
		return
	}

	products, pagination, err := c.store.ListProducts(page, limit, filters)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load products")
		return
	}

	payload = productListPayload{Products: make([]productSummary, 0, len(products)), Pagination: pagination}
	for _, p := range products {
		payload.Products = append(payload.Products, summarize(p))
	}
	cache.Set(key, payload, listCacheTTL)

	response.Paginated(w, payload.Products, payload.Pagination)
}

// Show handles GET /api/products/{productNumber}.
func (c *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "productNumber")

	key := "products:show:" + number
	var product models.Product
	if !cache.Get(key, &product) {
		p, err := c.store.GetProductByNumber(number)
		if errors.Is(err, repositories.ErrProductNotFound) {
			response.NotFound(w)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "could not load product")
			return
		}
		product = *p
		cache.Set(key, product, listCacheTTL)
	}

	response.Success(w, product)
}

// Categories handles GET /api/categories.
func (c *CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	key := fmt.Sprintf("categories:list:%d:%d", page, limit)
	var payload struct {
		Categories []models.Category `json:"categories"`
		Pagination orm.Pagination    `json:"pagination"`
	}
	if cache.Get(key, &payload) {
		response.Paginated(w, payload.Categories, payload.Pagination)
		return
	}

	categories, pagination, err := c.store.ListCategories(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load categories")
		return
	}
	payload.Categories = categories
	payload.Pagination = pagination
	cache.Set(key, payload, listCacheTTL)

	response.Paginated(w, categories, pagination)
}

func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
