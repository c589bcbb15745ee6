package model

import (
	"time"
)

// OrderStatus tracks the order lifecycle.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed from the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// OrderLine holds one product reference with a positive quantity.
type OrderLine struct {
	Product      Product   `json:"product"`
	Quantity     int       `json:"quantity"`
	Instructions string    `json:"instructions,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Total returns the line total, always derived from the source fields.
func (l OrderLine) Total() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Order owns an ordered sequence of lines. TotalAmount is recomputed after
// every structural mutation and must always equal the sum of line totals.
type Order struct {
	Lines       []OrderLine `json:"lines"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	TotalAmount float64     `json:"total_amount"`
}

// NewOrder returns an empty pending order.
func NewOrder() *Order {
	return &Order{
		Lines:     []OrderLine{},
		Status:    OrderPending,
		CreatedAt: time.Now(),
	}
}

// RecalcTotal recomputes TotalAmount from the current lines.
func (o *Order) RecalcTotal() {
	total := 0.0
	for _, l := range o.Lines {
		total += l.Total()
	}
	o.TotalAmount = total
}

// AddLine appends a line and recomputes the total.
func (o *Order) AddLine(line OrderLine) {
	o.Lines = append(o.Lines, line)
	o.RecalcTotal()
}

// OrderSummary is a read-only projection of an order for user-facing output.
type OrderSummary struct {
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	Lines       []LineSummary `json:"lines"`
	TotalAmount float64       `json:"total_amount"`
	LineCount   int           `json:"line_count"`
}

// LineSummary is the per-line slice of an OrderSummary.
type LineSummary struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Total        float64 `json:"total"`
	Instructions string  `json:"instructions,omitempty"`
}
