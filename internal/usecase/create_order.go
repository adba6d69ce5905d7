package usecase

import (
	"fmt"
	"time"

	"github.com/brmartins/orderflow/internal/metrics"
	"github.com/brmartins/orderflow/internal/order"
	"github.com/brmartins/orderflow/internal/payment"
	"github.com/brmartins/orderflow/internal/store"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ItemInput is one requested order line.
type ItemInput struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
}

// CreateOrderInput is the request to create an order.
type CreateOrderInput struct {
	Items []ItemInput `json:"items" binding:"required"`
}

// OrderOutput is the order projection returned to callers.
type OrderOutput struct {
	ID    string            `json:"id"`
	Items []order.OrderItem `json:"items"`
	Total float64           `json:"total"`
}

// CreateOrder validates a new order, charges it through the payment
// strategy and persists it. Each step short-circuits on failure.
type CreateOrder struct {
	orders   store.OrderStore
	strategy payment.Strategy
}

// NewCreateOrder wires the create-order use case.
func NewCreateOrder(orders store.OrderStore, strategy payment.Strategy) *CreateOrder {
	return &CreateOrder{orders: orders, strategy: strategy}
}

// Execute runs the pipeline and reports the outcome in the response
// envelope. Failures never propagate to the caller as errors or panics.
func (uc *CreateOrder) Execute(input CreateOrderInput) (resp Response[OrderOutput]) {
	defer func() {
		if r := recover(); r != nil {
			metrics.OrdersTotal.WithLabelValues("failed").Inc()
			resp = fail[OrderOutput](fmt.Sprintf("error creating order: %v", r))
		}
	}()

	items := make([]order.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, order.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	o := &order.Order{
		ID:        uuid.New().String(),
		Items:     items,
		Total:     0,
		Status:    order.StatusPending,
		Timestamp: time.Now(),
	}

	o.CalculateTotal()
	if err := o.Validate(); err != nil {
		metrics.OrdersTotal.WithLabelValues("validation_failed").Inc()
		return fail[OrderOutput](err.Error())
	}

	info := payment.Info{
		Amount:      o.Total,
		Currency:    "BRL",
		Description: fmt.Sprintf("Order %s", o.ID),
	}

	if !uc.strategy.Process(info) {
		metrics.OrdersTotal.WithLabelValues("payment_failed").Inc()
		log.WithFields(log.Fields{
			"order_id": o.ID,
			"amount":   o.Total,
		}).Warn("Payment declined, order not persisted")
		return fail[OrderOutput]("payment processing failed")
	}
	metrics.PaymentAmount.Observe(o.Total)

	o.Status = order.StatusCompleted
	uc.orders.Save(o)

	metrics.OrdersTotal.WithLabelValues("completed").Inc()
	log.WithFields(log.Fields{
		"order_id": o.ID,
		"items":    len(o.Items),
		"total":    o.Total,
	}).Info("Order created")

	return ok(OrderOutput{ID: o.ID, Items: o.Items, Total: o.Total})
}
