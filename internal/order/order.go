package order

import "time"

// OrderItem represents a single line of an order.
type OrderItem struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// ItemTotal returns the total amount for this line.
func (i OrderItem) ItemTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order represents a customer order.
type Order struct {
	ID        string      `json:"id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// OrderStatus constants
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// CalculateTotal sets Total to the sum of all item totals.
// It is idempotent and has no side effects beyond mutating Total.
func (o *Order) CalculateTotal() {
	total := 0.0
	for _, item := range o.Items {
		total += item.ItemTotal()
	}
	o.Total = total
}

// ValidationError signals a violated order invariant.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the order invariants and returns the first violation found.
// Callers must run CalculateTotal before relying on Total downstream;
// Validate does not recompute it.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return &ValidationError{Message: "order must contain at least one item"}
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return &ValidationError{Message: "item quantity must be positive"}
		}
	}
	for _, item := range o.Items {
		if item.Price <= 0 {
			return &ValidationError{Message: "item price must be positive"}
		}
	}
	return nil
}
