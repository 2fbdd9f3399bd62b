package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// validOrderTransitions defines the order state machine. Statuses without an
// entry are terminal.
var validOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderCompleted, OrderCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return len(validOrderTransitions[s]) == 0
}

// ParseOrderStatus converts s into a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case OrderPending, OrderCompleted, OrderCancelled:
		return status, nil
	default:
		return "", Invalidf("unknown order status %q", s)
	}
}

// Billing is the contact and address snapshot recorded on an order and kept
// as an account's billing profile.
type Billing struct {
	Name    string
	Address string
	City    string
	Country string
	Zip     string
	Phone   string
	Email   string
}

// Validate checks the fields required to place an order. Phone is optional.
func (b Billing) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", b.Name},
		{"address", b.Address},
		{"city", b.City},
		{"country", b.Country},
		{"zip", b.Zip},
		{"email", b.Email},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return Invalidf("billing %s is required", r.field)
		}
	}
	return nil
}

// LineItem is a requested product quantity, as submitted by the buyer.
type LineItem struct {
	ProductID string
	Quantity  int
	Variant   string
}

// OrderLine is a priced line item captured at placement time.
type OrderLine struct {
	ProductID   string
	ProductName string
	Variant     string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Quote is the pricing engine's result for a set of line items and a tier.
type Quote struct {
	Lines        []OrderLine
	Subtotal     decimal.Decimal
	ShippingTier ShippingTier
	Shipping     decimal.Decimal
	Total        decimal.Decimal
}

// Order is a placed order. Lines and Total are fixed at creation.
type Order struct {
	ID           string
	AccountID    string
	Lines        []OrderLine
	Billing      Billing
	ShippingTier ShippingTier
	Subtotal     decimal.Decimal
	Shipping     decimal.Decimal
	Total        decimal.Decimal
	Status       OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
