// Package order manages the order lifecycle: creation, line mutation,
// validation, status transitions and summaries.
package order

import (
	"fmt"
	"sync"
	"time"

	"github.com/sliceline-core/server/internal/agent/model"
	errx "github.com/sliceline-core/server/internal/core/error"
	logx "github.com/sliceline-core/server/pkg/logger"
)

const (
	basePrepMinutes    = 15
	perLinePrepMinutes = 3
	deliveryMinutes    = 25
)

// Service owns order lifecycle operations. Orders themselves are mutated only
// through the service while in the pending status.
type Service struct {
	mu      sync.Mutex
	history []*model.Order
}

// NewService returns an order service with an empty archive.
func NewService() *Service {
	return &Service{}
}

// Create returns a new empty pending order for the session.
func (s *Service) Create(sessionID string) *model.Order {
	o := model.NewOrder()
	logx.Debug().Str("session_id", sessionID).Msg("order created")
	return o
}

// AddLine appends a product line to the order. Quantity defaults are the
// caller's concern; zero or negative quantity is a validation error here.
// Orders are mutable only while pending.
func (s *Service) AddLine(o *model.Order, product model.Product, quantity int, instructions string) (model.OrderLine, error) {
	if o.Status != model.OrderPending {
		return model.OrderLine{}, errx.NewValidation("order is not pending")
	}
	if quantity <= 0 {
		return model.OrderLine{}, errx.NewValidation("quantity must be positive")
	}
	if product.Name == "" {
		return model.OrderLine{}, errx.NewValidation("product is required")
	}

	line := model.OrderLine{
		Product:      product,
		Quantity:     quantity,
		Instructions: instructions,
		CreatedAt:    time.Now(),
	}
	o.AddLine(line)
	return line, nil
}

// RemoveLine drops the line at index. Non-pending orders and out-of-range
// indices are a no-op returning false.
func (s *Service) RemoveLine(o *model.Order, index int) bool {
	if o.Status != model.OrderPending {
		return false
	}
	if index < 0 || index >= len(o.Lines) {
		return false
	}
	o.Lines = append(o.Lines[:index], o.Lines[index+1:]...)
	o.RecalcTotal()
	return true
}

// UpdateQuantity sets a new quantity on the line at index. A quantity of zero
// or less is equivalent to removing the line. Non-pending orders reject the
// update.
func (s *Service) UpdateQuantity(o *model.Order, index, quantity int) bool {
	if o.Status != model.OrderPending {
		return false
	}
	if quantity <= 0 {
		return s.RemoveLine(o, index)
	}
	if index < 0 || index >= len(o.Lines) {
		return false
	}
	o.Lines[index].Quantity = quantity
	o.RecalcTotal()
	return true
}

// Validate returns the list of violations for the order; empty means valid.
func (s *Service) Validate(o *model.Order) []string {
	var errs []string

	if len(o.Lines) == 0 {
		errs = append(errs, "order cannot be empty")
	}

	for i, line := range o.Lines {
		if line.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("line %d: quantity must be positive", i+1))
		}
		if line.Product.Name == "" {
			errs = append(errs, fmt.Sprintf("line %d: product name is required", i+1))
		}
	}

	if o.TotalAmount <= 0 {
		errs = append(errs, "order total must be greater than zero")
	}

	return errs
}

// Confirm re-validates and transitions the order to confirmed. On violations
// the order is left unchanged and a validation error is returned.
func (s *Service) Confirm(o *model.Order) error {
	if violations := s.Validate(o); len(violations) > 0 {
		return errx.NewValidation(fmt.Sprintf("order validation failed: %v", violations))
	}
	o.Status = model.OrderConfirmed
	return nil
}

// Cancel moves the order to cancelled unless it is already processing or
// completed. Returns false when cancellation is not allowed.
func (s *Service) Cancel(o *model.Order) bool {
	if o.Status == model.OrderProcessing || o.Status == model.OrderCompleted {
		return false
	}
	o.Status = model.OrderCancelled
	return true
}

// Summarize produces the read-only projection of the order.
func (s *Service) Summarize(o *model.Order) model.OrderSummary {
	lines := make([]model.LineSummary, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, model.LineSummary{
			Name:         model.TitleCase(line.Product.Name),
			Description:  line.Product.Description,
			Quantity:     line.Quantity,
			UnitPrice:    line.Product.Price,
			Total:        line.Total(),
			Instructions: line.Instructions,
		})
	}
	return model.OrderSummary{
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		Lines:       lines,
		TotalAmount: o.TotalAmount,
		LineCount:   len(o.Lines),
	}
}

// EstimateDelivery returns the expected delivery time: base preparation plus a
// per-line surcharge and a fixed delivery window, from the order's creation
// time. Empty orders have no estimate.
func (s *Service) EstimateDelivery(o *model.Order) (time.Time, bool) {
	if len(o.Lines) == 0 {
		return time.Time{}, false
	}
	prep := basePrepMinutes + len(o.Lines)*perLinePrepMinutes
	total := time.Duration(prep+deliveryMinutes) * time.Minute
	return o.CreatedAt.Add(total), true
}

// Archive moves the order into the service's history. Adding the same order
// twice is a no-op.
func (s *Service) Archive(o *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, archived := range s.history {
		if archived == o {
			return
		}
	}
	s.history = append(s.history, o)
}

// History returns a copy of the archived orders.
func (s *Service) History() []*model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Order, len(s.history))
	copy(out, s.history)
	return out
}
