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

	"github.com/abedalshalabi/abo-zaina-sub001/internal/cart/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/cart/event"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/cart/service"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/httputil"
	pkgkafka "github.com/abedalshalabi/abo-zaina-sub001/pkg/kafka"
)

// --- Mock CartRepository ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// --- Test helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func testCartHandler(repo *mockCartRepository) *CartHandler {
	logger := testLogger()
	svc := service.NewCartService(repo, testEventProducer(), logger, 72*time.Hour)
	return NewCartHandler(svc, logger)
}

// setupRouter mounts the handler the way the production router does so the
// session middleware is exercised end-to-end.
func setupRouter(handler *CartHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

func decodeCart(t *testing.T, resp httputil.Response) domain.Cart {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var cart domain.Cart
	require.NoError(t, json.Unmarshal(raw, &cart))
	return cart
}

func sampleCart() *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: "sess-123",
		Items: []domain.CartItem{
			{
				ProductID: 1,
				Name:      "LG Fridge 21ft",
				Price:     2500,
				Quantity:  2,
				Brand:     "LG",
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(72 * time.Hour),
	}
}

// --- Tests ---

func TestGetCart_MissingSessionHeader(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestGetCart_ReturnsCart(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "sess-123").Return(sampleCart(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, decodeResponse(t, rec))
	assert.Equal(t, "sess-123", cart.SessionID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(5000), cart.Subtotal())

	repo.AssertExpectations(t)
}

func TestGetCart_NoCartYieldsEmpty(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "sess-new").Return(nil, apperrors.NotFound("cart", "sess-new"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	req.Header.Set("X-Session-ID", "sess-new")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, decodeResponse(t, rec))
	assert.Empty(t, cart.Items)

	repo.AssertExpectations(t)
}

func TestAddItem_Success(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "sess-123").Return(nil, apperrors.NotFound("cart", "sess-123"))
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	body := `{"product_id":1,"name":"LG Fridge 21ft","price":2500,"quantity":1,"brand":"LG"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString(body))
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, decodeResponse(t, rec))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2500), cart.Subtotal())

	repo.AssertExpectations(t)
}

func TestAddItem_DefaultQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "sess-123").Return(nil, apperrors.NotFound("cart", "sess-123"))
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	body := `{"product_id":2,"name":"Kettle","price":450}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString(body))
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, decodeResponse(t, rec))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	repo.AssertExpectations(t)
}

func TestAddItem_ValidationFailure(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	// Missing product_id and name.
	body := `{"price":2500}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString(body))
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "ProductID")
	assert.Contains(t, resp.Error.Fields, "Name")
}

func TestAddItem_MalformedBody(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("{not json"))
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateItemQuantity_Success(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "sess-123").Return(sampleCart(), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	body := `{"quantity":5}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/1", bytes.NewBufferString(body))
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, decodeResponse(t, rec))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	repo.AssertExpectations(t)
}

func TestUpdateItemQuantity_ZeroRemoves(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "sess-123").Return(sampleCart(), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	body := `{"quantity":0}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/1", bytes.NewBufferString(body))
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, decodeResponse(t, rec))
	assert.Empty(t, cart.Items)

	repo.AssertExpectations(t)
}

func TestUpdateItemQuantity_UnknownProduct(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "sess-123").Return(sampleCart(), nil)

	body := `{"quantity":5}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/999", bytes.NewBufferString(body))
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	repo.AssertExpectations(t)
}

func TestUpdateItemQuantity_BadProductID(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	body := `{"quantity":5}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/abc", bytes.NewBufferString(body))
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveItem_Success(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "sess-123").Return(sampleCart(), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/1", nil)
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, decodeResponse(t, rec))
	assert.Empty(t, cart.Items)

	repo.AssertExpectations(t)
}

func TestRemoveItem_AbsentProductIsOK(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "sess-123").Return(sampleCart(), nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/999", nil)
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, decodeResponse(t, rec))
	require.Len(t, cart.Items, 1)

	repo.AssertExpectations(t)
}

func TestClearCart_Success(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupRouter(testCartHandler(repo))

	repo.On("Delete", mock.Anything, "sess-123").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/", nil)
	req.Header.Set("X-Session-ID", "sess-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	repo.AssertExpectations(t)
}
