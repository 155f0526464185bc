package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/order/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/order/event"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/order/repository"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
)

// CreateOrderInput holds everything needed to persist a new order. Amounts
// are computed by the checkout pricing step, not trusted from the client.
type CreateOrderInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       domain.Address
	PaymentMethod string
	Subtotal      int64
	ShippingCost  int64
	Total         int64
	Items         []CreateOrderItem
}

// CreateOrderItem is one line of a new order.
type CreateOrderItem struct {
	ProductID int64
	Name      string
	Price     int64
	Quantity  int
}

// OrderService implements the business logic for order operations.
type OrderService struct {
	repo     repository.OrderRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateOrder persists a new order in pending/unpaid state and publishes
// order.created.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}
	if !domain.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, apperrors.InvalidInput("payment method must be cod or card")
	}

	now := time.Now().UTC()
	orderID := uuid.New().String()

	items := make([]domain.OrderItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = domain.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Price * int64(item.Quantity),
		}
	}

	o := &domain.Order{
		ID:            orderID,
		OrderNumber:   domain.NewOrderNumber(now),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Address:       input.Address,
		PaymentMethod: input.PaymentMethod,
		Subtotal:      input.Subtotal,
		ShippingCost:  input.ShippingCost,
		Total:         input.Total,
		OrderStatus:   domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.producer.PublishOrderCreated(ctx, o); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", o.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", o.ID),
		slog.String("order_number", o.OrderNumber),
		slog.Int64("total", o.Total),
	)

	return o, nil
}

// GetOrder retrieves an order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetOrderByNumber retrieves an order by its order number.
func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	if orderNumber == "" {
		return nil, apperrors.InvalidInput("order number is required")
	}

	o, err := s.repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("get order by number: %w", err)
	}
	return o, nil
}

// ListOrders returns orders matching the filter with the total count.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	if filter.Status != nil && !domain.IsValidStatus(*filter.Status) {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("unknown order status %q", *filter.Status))
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// UpdateOrderStatus moves an order to a new status, enforcing the transition
// rules, and publishes order.status_changed.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.IsValidStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown order status %q", status))
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order for status update: %w", err)
	}

	if !o.CanTransitionTo(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cannot transition order from %s to %s", o.OrderStatus, status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	from := o.OrderStatus
	o.OrderStatus = status
	o.UpdatedAt = time.Now().UTC()

	if err := s.producer.PublishOrderStatusChanged(ctx, o, from, status); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", o.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", o.ID),
		slog.String("from", from),
		slog.String("to", status),
	)

	return o, nil
}

// UpdatePaymentStatus moves an order's payment status, enforcing the
// transition rules.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.IsValidPaymentStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown payment status %q", status))
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order for payment update: %w", err)
	}

	if !o.CanTransitionPaymentTo(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cannot transition payment from %s to %s", o.PaymentStatus, status))
	}

	if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	from := o.PaymentStatus
	o.PaymentStatus = status
	o.UpdatedAt = time.Now().UTC()

	s.logger.InfoContext(ctx, "payment status updated",
		slog.String("order_id", o.ID),
		slog.String("from", from),
		slog.String("to", status),
	)

	return o, nil
}
