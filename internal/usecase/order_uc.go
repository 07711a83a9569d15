package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lmercier/maisoncafe/internal/domain"
)

// OrderUC owns the orders collection. Placing an order is the one
// operation coupling two collections: the order append and the cart clear
// are separate writes, so a crash between them leaves the cart uncleared.
// Accepted for this reliability tier.
type OrderUC struct {
	NS      domain.Namespace
	Cart    *CartUC
	Gateway domain.PaymentGateway
	Latency time.Duration
}

func (uc *OrderUC) Orders(ctx context.Context) ([]domain.Order, error) {
	pause(ctx, uc.Latency)
	orders, err := readColl[domain.Order](ctx, uc.NS, domain.KeyOrders)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (uc *OrderUC) Order(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := uc.Orders(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Place appends a caller-built order, filling in id, timestamp and a
// default paid status if absent, then clears the cart.
func (uc *OrderUC) Place(ctx context.Context, o domain.Order) (*domain.Order, error) {
	pause(ctx, uc.Latency)
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = domain.OrderStatusPaid
	}
	o.CreatedAt = time.Now().UTC()
	if err := uc.append(ctx, o); err != nil {
		return nil, err
	}
	if err := uc.Cart.Clear(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create snapshots the current enriched cart into a pending order with
// the draft's addresses, appends it, and clears the cart.
func (uc *OrderUC) Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	pause(ctx, uc.Latency)
	snapshot, total, err := uc.snapshotCart(ctx)
	if err != nil {
		return nil, err
	}
	o := domain.Order{
		ID:              uuid.NewString(),
		Items:           snapshot,
		Total:           total,
		Status:          domain.OrderStatusPending,
		ShippingAddress: draft.ShippingAddress,
		BillingAddress:  draft.BillingAddress,
		CreatedAt:       time.Now().UTC(),
	}
	if err := uc.append(ctx, o); err != nil {
		return nil, err
	}
	if err := uc.Cart.Clear(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}

// Checkout authorizes the card and, only on success, places a paid order
// snapshotted from the current cart. A validation failure surfaces to the
// caller and persists nothing.
func (uc *OrderUC) Checkout(ctx context.Context, card domain.Card, draft domain.OrderDraft) (*domain.Order, error) {
	if err := uc.Gateway.Authorize(ctx, card); err != nil {
		return nil, err
	}
	snapshot, total, err := uc.snapshotCart(ctx)
	if err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		return nil, domain.ErrEmptyCart
	}
	return uc.Place(ctx, domain.Order{
		Items:           snapshot,
		Total:           total,
		Status:          domain.OrderStatusPaid,
		ShippingAddress: draft.ShippingAddress,
		BillingAddress:  draft.BillingAddress,
	})
}

// Settle moves a pending order to paid or failed. Any other transition is
// rejected; orders are otherwise immutable.
func (uc *OrderUC) Settle(ctx context.Context, id string, next domain.OrderStatus) (*domain.Order, error) {
	pause(ctx, uc.Latency)
	orders, err := uc.Orders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		if !orders[i].Status.CanTransition(next) {
			return nil, domain.ErrInvalidTransition
		}
		orders[i].Status = next
		if err := writeColl(ctx, uc.NS, domain.KeyOrders, orders); err != nil {
			return nil, err
		}
		o := orders[i]
		log.Info().Str("order_id", id).Str("status", string(next)).Msg("order settled")
		return &o, nil
	}
	return nil, domain.ErrNotFound
}

func (uc *OrderUC) snapshotCart(ctx context.Context) ([]domain.EnrichedCartLine, float64, error) {
	cart, err := uc.Cart.Cart(ctx)
	if err != nil {
		return nil, 0, err
	}
	total := 0.0
	for _, line := range cart {
		total += line.LineTotal
	}
	return cart, total, nil
}

func (uc *OrderUC) append(ctx context.Context, o domain.Order) error {
	orders, err := readColl[domain.Order](ctx, uc.NS, domain.KeyOrders)
	if err != nil {
		return err
	}
	orders = append(orders, o)
	return writeColl(ctx, uc.NS, domain.KeyOrders, orders)
}
