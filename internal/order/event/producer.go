package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/order/domain"
	pkgkafka "github.com/abedalshalabi/abo-zaina-sub001/pkg/kafka"
)

// Kafka topic constants for order domain events.
const (
	TopicOrderCreated       = "shop.order.created"
	TopicOrderStatusChanged = "shop.order.status_changed"
)

// Aggregate type constant.
const AggregateTypeOrder = "order"

// Source identifier for events originating from the storefront.
const SourceShop = "shop-api"

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	OrderID       string          `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	CustomerPhone string          `json:"customer_phone"`
	City          string          `json:"city"`
	PaymentMethod string          `json:"payment_method"`
	Subtotal      int64           `json:"subtotal"`
	ShippingCost  int64           `json:"shipping_cost"`
	Total         int64           `json:"total"`
	Items         []OrderItemData `json:"items"`
}

// OrderItemData is the item payload within order events.
type OrderItemData struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderStatusChangedData is the payload for an order.status_changed event.
type OrderStatusChangedData struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	From        string `json:"from"`
	To          string `json:"to"`
}

// Producer publishes order domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the order area.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, o *domain.Order) error {
	items := make([]OrderItemData, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemData{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	data := OrderCreatedData{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerPhone: o.CustomerPhone,
		City:          o.Address.City,
		PaymentMethod: o.PaymentMethod,
		Subtotal:      o.Subtotal,
		ShippingCost:  o.ShippingCost,
		Total:         o.Total,
		Items:         items,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, o.ID, AggregateTypeOrder, SourceShop, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", o.ID),
		slog.String("order_number", o.OrderNumber),
	)

	return nil
}

// PublishOrderStatusChanged publishes an order.status_changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, o *domain.Order, from, to string) error {
	data := OrderStatusChangedData{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		From:        from,
		To:          to,
	}

	event, err := pkgkafka.NewEvent(TopicOrderStatusChanged, o.ID, AggregateTypeOrder, SourceShop, data)
	if err != nil {
		return fmt.Errorf("create order.status_changed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderStatusChanged, event); err != nil {
		return fmt.Errorf("publish order.status_changed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.status_changed event",
		slog.String("order_id", o.ID),
		slog.String("from", from),
		slog.String("to", to),
	)

	return nil
}
