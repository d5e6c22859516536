package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/supplyhub/supplyhub/app/controllers"
	"github.com/supplyhub/supplyhub/app/models"
	"github.com/supplyhub/supplyhub/app/repositories"
	"github.com/supplyhub/supplyhub/internal/feed"
	"github.com/supplyhub/supplyhub/pkg/orm"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListProducts(page, limit int, filters repositories.ProductFilters) ([]models.Product, orm.Pagination, error) {
	args := m.Called(page, limit, filters)
	return args.Get(0).([]models.Product), args.Get(1).(orm.Pagination), args.Error(2)
}

func (m *mockStore) GetProductByNumber(productNumber string) (*models.Product, error) {
	args := m.Called(productNumber)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) ListCategories(page, limit int) ([]models.Category, orm.Pagination, error) {
	args := m.Called(page, limit)
	return args.Get(0).([]models.Category), args.Get(1).(orm.Pagination), args.Error(2)
}

func (m *mockStore) CategoryExistsByName(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func newTestRouter(store controllers.CatalogStore) http.Handler {
	c := controllers.NewCatalogController(store)
	r := chi.NewRouter()
	r.Get("/api/products", c.List)
	r.Get("/api/products/{productNumber}", c.Show)
	r.Get("/api/categories", c.Categories)
	return r
}

func price(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func sampleProduct() models.Product {
	return models.Product{
		ProductNumber:    "AB100",
		BrandName:        "Apex Mills",
		ShortDescription: "Heavy Cotton Tee",
		Category:         models.Category{Name: "T-Shirts"},
		Variations: []models.Variation{
			{ItemNumber: "AB100-NVY-L", FrontImage: "images/front.jpg", RetailPrice: price("8.99")},
			{ItemNumber: "AB100-NVY-XL", RetailPrice: price("7.50")},
			{ItemNumber: "AB100-NVY-XXL"}, // no price yet
		},
	}
}

func TestListProducts(t *testing.T) {
	store := &mockStore{}
	store.On("ListProducts", 1, 20, repositories.ProductFilters{}).
		Return([]models.Product{sampleProduct()}, orm.Pagination{Page: 1, Limit: 20, Total: 1, TotalPages: 1}, nil)

	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Items []struct {
				ProductNumber string  `json:"product_number"`
				Category      string  `json:"category"`
				Image         string  `json:"image"`
				MinPrice      *string `json:"min_price"`
				MaxPrice      *string `json:"max_price"`
			} `json:"items"`
			Pagination orm.Pagination `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Items, 1)
	assert.EqualValues(t, 1, body.Data.Pagination.Total)

	got := body.Data.Items[0]
	assert.Equal(t, "AB100", got.ProductNumber)
	assert.Equal(t, "T-Shirts", got.Category)
	assert.Equal(t, "images/front.jpg", got.Image)
	require.NotNil(t, got.MinPrice)
	require.NotNil(t, got.MaxPrice)
	assert.Equal(t, "7.5", *got.MinPrice)
	assert.Equal(t, "8.99", *got.MaxPrice)

	store.AssertExpectations(t)
}

func TestListProductsForwardsFilters(t *testing.T) {
	store := &mockStore{}
	store.On("CategoryExistsByName", "Polos").Return(true, nil)
	store.On("ListProducts", 2, 5, repositories.ProductFilters{Category: "Polos", Search: "pique"}).
		Return([]models.Product{}, orm.Pagination{Page: 2, Limit: 5}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?page=2&limit=5&category=Polos&search=pique", nil)
	newTestRouter(store).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	store.AssertExpectations(t)
}

func TestListProductsUnknownCategory(t *testing.T) {
	store := &mockStore{}
	store.On("CategoryExistsByName", "Hats").Return(false, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?category=Hats", nil)
	newTestRouter(store).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	store.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything, mock.Anything)
}

func TestListProductsStoreError(t *testing.T) {
	store := &mockStore{}
	store.On("ListProducts", 1, 20, repositories.ProductFilters{}).
		Return([]models.Product{}, orm.Pagination{}, errors.New("db down"))

	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestShowProduct(t *testing.T) {
	store := &mockStore{}
	p := sampleProduct()
	store.On("GetProductByNumber", "AB100").Return(&p, nil)

	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/AB100", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AB100", body.Data.ProductNumber)
	assert.Len(t, body.Data.Variations, 3)
}

func TestShowProductNotFound(t *testing.T) {
	store := &mockStore{}
	store.On("GetProductByNumber", "ZZ999").Return(nil, repositories.ErrProductNotFound)

	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/ZZ999", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCategories(t *testing.T) {
	store := &mockStore{}
	store.On("ListCategories", 1, 20).
		Return([]models.Category{{Name: "Polos"}, {Name: "T-Shirts"}},
			orm.Pagination{Page: 1, Limit: 20, Total: 2, TotalPages: 1}, nil)

	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Items []models.Category `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Items, 2)
	assert.Equal(t, "Polos", body.Data.Items[0].Name)
}

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, code string) (*feed.RunReport, error) {
	args := m.Called(code)
	if r := args.Get(0); r != nil {
		return r.(*feed.RunReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func newSyncRouter(runner controllers.SyncRunner) http.Handler {
	c := controllers.NewSyncController(runner)
	r := chi.NewRouter()
	r.Post("/api/sync/{vendor}", c.Trigger)
	return r
}

func TestTriggerSync(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", "apex").Return(&feed.RunReport{
		Vendor: "apex",
		Passes: []feed.PassReport{{Pass: feed.PassCatalog, Rows: 3, Created: 3}},
	}, nil)

	rec := httptest.NewRecorder()
	newSyncRouter(runner).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sync/apex", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sync completed for apex", body.Message)
	// Per-pass counts stay internal; the run report never reaches the wire.
	assert.NotContains(t, rec.Body.String(), "passes")

	runner.AssertExpectations(t)
}

func TestTriggerSyncUnknownVendor(t *testing.T) {
	runner := &mockRunner{}

	rec := httptest.NewRecorder()
	newSyncRouter(runner).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sync/nobody", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	runner.AssertNotCalled(t, "Run", mock.Anything)
}

func TestTriggerSyncFailure(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", "apex").Return(nil, errors.New("ftp unreachable"))

	rec := httptest.NewRecorder()
	newSyncRouter(runner).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sync/apex", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The upstream failure detail stays in the logs.
	assert.NotContains(t, rec.Body.String(), "ftp unreachable")
}
