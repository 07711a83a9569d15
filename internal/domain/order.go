package domain

import (
	"errors"
	"time"
)

// ErrEmptyCart rejects a checkout against an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInvalidTransition rejects an illegal order status change.
var ErrInvalidTransition = errors.New("invalid order status transition")

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// CanTransition reports whether an order may move from s to next. Orders
// are immutable once settled; only pending orders can change status.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s != OrderStatusPending {
		return false
	}
	return next == OrderStatusPaid || next == OrderStatusFailed
}

// Order is a snapshot of the cart at placement time. Items keep their
// resolved products so the order survives later catalog edits.
type Order struct {
	ID              string             `json:"id"`
	Items           []EnrichedCartLine `json:"items"`
	Total           float64            `json:"total"`
	Status          OrderStatus        `json:"status"`
	ShippingAddress string             `json:"shippingAddress"`
	BillingAddress  string             `json:"billingAddress"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// OrderDraft carries the caller-supplied fields of a new order; the store
// fills in the cart snapshot, total, id and timestamp.
type OrderDraft struct {
	ShippingAddress string `json:"shippingAddress"`
	BillingAddress  string `json:"billingAddress"`
}
