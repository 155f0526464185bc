package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/order/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/order/repository"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/database"
)

// --- Test Helpers ---

func newTestRepo(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewOrderRepository(mock)
	return repo, mock
}

func sampleOrder() *domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Order{
		ID:            "order-001",
		OrderNumber:   "ORD-20260831-a1b2c3",
		CustomerName:  "Ahmad Saleh",
		CustomerEmail: "ahmad@example.com",
		CustomerPhone: "0551234567",
		Address: domain.Address{
			City:     "Riyadh",
			District: "Al Olaya",
			Street:   "King Fahd Rd",
			Building: "12",
			Notes:    "call on arrival",
		},
		PaymentMethod: domain.PaymentMethodCOD,
		Subtotal:      5450,
		ShippingCost:  0,
		Total:         5450,
		OrderStatus:   domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items: []domain.OrderItem{
			{
				ID:        "item-001",
				OrderID:   "order-001",
				ProductID: 1,
				Name:      "LG Fridge 21ft",
				Price:     2500,
				Quantity:  2,
				Subtotal:  5000,
			},
			{
				ID:        "item-002",
				OrderID:   "order-001",
				ProductID: 2,
				Name:      "Kettle",
				Price:     450,
				Quantity:  1,
				Subtotal:  450,
			},
		},
	}
}

func orderRowColumns() []string {
	return []string{
		"id", "order_number", "customer_name", "customer_email", "customer_phone",
		"address", "payment_method", "subtotal", "shipping_cost", "total",
		"order_status", "payment_status", "created_at", "updated_at",
	}
}

// --- Create ---

func TestOrderRepository_Create_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	o := sampleOrder()

	mock.ExpectBegin()

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			o.ID, o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
			pgxmock.AnyArg(), // address JSON
			o.PaymentMethod, o.Subtotal, o.ShippingCost, o.Total,
			o.OrderStatus, o.PaymentStatus,
			o.CreatedAt, o.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	for _, item := range o.Items {
		mock.ExpectExec("INSERT INTO order_items").
			WithArgs(item.ID, item.OrderID, item.ProductID, item.Name, item.Price, item.Quantity).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	mock.ExpectCommit()

	err := repo.Create(context.Background(), o)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_ItemInsertFails(t *testing.T) {
	repo, mock := newTestRepo(t)

	o := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			o.ID, o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
			pgxmock.AnyArg(),
			o.PaymentMethod, o.Subtotal, o.ShippingCost, o.Total,
			o.OrderStatus, o.PaymentStatus,
			o.CreatedAt, o.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(o.Items[0].ID, o.Items[0].OrderID, o.Items[0].ProductID, o.Items[0].Name, o.Items[0].Price, o.Items[0].Quantity).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order item")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- GetByID / GetByOrderNumber ---

func TestOrderRepository_GetByID_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	o := sampleOrder()
	addressJSON, err := json.Marshal(o.Address)
	require.NoError(t, err)
	itemsJSON, err := json.Marshal(o.Items)
	require.NoError(t, err)

	cols := append(orderRowColumns(), "items")
	rows := pgxmock.NewRows(cols).AddRow(
		o.ID, o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		addressJSON, o.PaymentMethod, o.Subtotal, o.ShippingCost, o.Total,
		o.OrderStatus, o.PaymentStatus, o.CreatedAt, o.UpdatedAt, itemsJSON,
	)

	mock.ExpectQuery("SELECT(.|\n)*FROM orders o").
		WithArgs(o.ID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, got.OrderNumber)
	assert.Equal(t, "Riyadh", got.Address.City)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(5000), got.Items[0].Subtotal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT(.|\n)*FROM orders o").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByOrderNumber_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	o := sampleOrder()
	addressJSON, err := json.Marshal(o.Address)
	require.NoError(t, err)

	cols := append(orderRowColumns(), "items")
	rows := pgxmock.NewRows(cols).AddRow(
		o.ID, o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		addressJSON, o.PaymentMethod, o.Subtotal, o.ShippingCost, o.Total,
		o.OrderStatus, o.PaymentStatus, o.CreatedAt, o.UpdatedAt, []byte("[]"),
	)

	mock.ExpectQuery("SELECT(.|\n)*FROM orders o").
		WithArgs(o.OrderNumber).
		WillReturnRows(rows)

	got, err := repo.GetByOrderNumber(context.Background(), o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Empty(t, got.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- List ---

func TestOrderRepository_List_NoFilter(t *testing.T) {
	repo, mock := newTestRepo(t)

	o := sampleOrder()
	addressJSON, err := json.Marshal(o.Address)
	require.NoError(t, err)

	cols := append(orderRowColumns(), "total_count")
	rows := pgxmock.NewRows(cols).AddRow(
		o.ID, o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		addressJSON, o.PaymentMethod, o.Subtotal, o.ShippingCost, o.Total,
		o.OrderStatus, o.PaymentStatus, o.CreatedAt, o.UpdatedAt, 1,
	)

	mock.ExpectQuery("SELECT(.|\n)*FROM orders").
		WithArgs(20, 0).
		WillReturnRows(rows)

	itemCols := []string{"id", "order_id", "product_id", "name", "price", "quantity", "subtotal"}
	itemRows := pgxmock.NewRows(itemCols).
		AddRow("item-001", o.ID, int64(1), "LG Fridge 21ft", int64(2500), 2, int64(5000))

	mock.ExpectQuery("SELECT(.|\n)*FROM order_items").
		WithArgs([]string{o.ID}).
		WillReturnRows(itemRows)

	orders, total, err := repo.List(context.Background(), repository.OrderFilter{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_List_StatusFilter(t *testing.T) {
	repo, mock := newTestRepo(t)

	cols := append(orderRowColumns(), "total_count")
	rows := pgxmock.NewRows(cols)

	status := domain.OrderStatusPending
	mock.ExpectQuery("SELECT(.|\n)*FROM orders").
		WithArgs(status, 20, 0).
		WillReturnRows(rows)

	orders, total, err := repo.List(context.Background(), repository.OrderFilter{
		Status:  &status,
		Page:    1,
		PerPage: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_List_PhoneFilterAndPaging(t *testing.T) {
	repo, mock := newTestRepo(t)

	cols := append(orderRowColumns(), "total_count")
	rows := pgxmock.NewRows(cols)

	phone := "0551234567"
	mock.ExpectQuery("SELECT(.|\n)*FROM orders").
		WithArgs(phone, 10, 10).
		WillReturnRows(rows)

	_, _, err := repo.List(context.Background(), repository.OrderFilter{
		Phone:   &phone,
		Page:    2,
		PerPage: 10,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- UpdateStatus / UpdatePaymentStatus ---

func TestOrderRepository_UpdateStatus_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.OrderStatusConfirmed, pgxmock.AnyArg(), "order-001").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateStatus(context.Background(), "order-001", domain.OrderStatusConfirmed)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.OrderStatusConfirmed, pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.OrderStatusConfirmed)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdatePaymentStatus_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.PaymentStatusPaid, pgxmock.AnyArg(), "order-001").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdatePaymentStatus(context.Background(), "order-001", domain.PaymentStatusPaid)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdatePaymentStatus_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.PaymentStatusPaid, pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdatePaymentStatus(context.Background(), "missing", domain.PaymentStatusPaid)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
