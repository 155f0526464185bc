package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/repository"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/service"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/httputil"
)

// --- Mock Repositories ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Test helpers ---

func setupProductRouter(repo *mockProductRepository) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := service.NewProductService(repo, logger)
	handler := NewProductHandler(svc, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return r
}

func activeProduct() *domain.Product {
	now := time.Now().UTC()
	return &domain.Product{
		ID:        1,
		Name:      "LG Fridge 21ft",
		Slug:      "lg-fridge-21ft",
		Price:     2500,
		Stock:     12,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// --- List ---

func TestProductHandler_ListProducts(t *testing.T) {
	t.Run("storefront listing is active only", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
			return f.ActiveOnly && f.Page == 1 && f.PerPage == 20
		})).Return([]domain.Product{*activeProduct()}, 1, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		repo.AssertExpectations(t)
	})

	t.Run("filters from the query string", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
			return f.Search != nil && *f.Search == "fridge" &&
				f.CategoryID != nil && *f.CategoryID == 7 &&
				f.Sort == domain.SortPriceAsc
		})).Return([]domain.Product{}, 0, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?search=fridge&category_id=7&sort=price_asc", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad category_id", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?category_id=abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		repo.AssertNotCalled(t, "List")
	})

	t.Run("unknown sort key", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=alphabetical", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// --- Get ---

func TestProductHandler_GetProduct(t *testing.T) {
	t.Run("by numeric ID", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		repo.On("GetByID", mock.Anything, int64(1)).Return(activeProduct(), nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp httputil.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		raw, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var p domain.Product
		require.NoError(t, json.Unmarshal(raw, &p))
		assert.Equal(t, "lg-fridge-21ft", p.Slug)
	})

	t.Run("by slug", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		repo.On("GetBySlug", mock.Anything, "lg-fridge-21ft").Return(activeProduct(), nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/lg-fridge-21ft", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		repo.On("GetBySlug", mock.Anything, "missing").Return(nil, apperrors.NotFound("product", "missing"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// --- Create / Update / Delete ---

func TestProductHandler_CreateProduct(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Slug == "kettle" && p.Price == 450
		})).Return(nil)

		body, _ := json.Marshal(map[string]any{
			"name":      "Kettle",
			"slug":      "kettle",
			"price":     450,
			"stock":     30,
			"is_active": true,
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("missing name and slug", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		body, _ := json.Marshal(map[string]any{"price": 450})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body)))

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp httputil.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Contains(t, resp.Error.Fields, "Name")
		assert.Contains(t, resp.Error.Fields, "Slug")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate slug", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.AlreadyExists("product", "slug", "kettle"))

		body, _ := json.Marshal(map[string]any{"name": "Kettle", "slug": "kettle", "price": 450})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body)))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupProductRouter(repo)

	repo.On("GetByID", mock.Anything, int64(1)).Return(activeProduct(), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.ID == 1 && p.Price == 2300
	})).Return(nil)

	body, _ := json.Marshal(map[string]any{
		"name":  "LG Fridge 21ft",
		"slug":  "lg-fridge-21ft",
		"price": 2300,
		"stock": 8,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/products/1", bytes.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		repo.On("Delete", mock.Anything, int64(1)).Return(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/products/1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		repo := new(mockProductRepository)
		router := setupProductRouter(repo)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/products/0", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		repo.AssertNotCalled(t, "Delete")
	})
}
