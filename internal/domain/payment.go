package domain

import (
	"context"
	"fmt"
)

// Card is the card-like input validated before an order is authorized.
type Card struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"` // MM/YY
	CVC    string `json:"cvc"`
}

// PaymentGateway authorizes a checkout attempt. A ValidationError means
// the card input was rejected and no order may be persisted.
type PaymentGateway interface {
	Authorize(ctx context.Context, card Card) error
}

// ValidationError is a user-facing checkout rejection.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
