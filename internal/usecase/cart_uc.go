package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lmercier/maisoncafe/internal/domain"
)

// CartUC owns the cart collection. Reads join lines against the current
// catalog; lines whose product disappeared are compacted away and the
// cleaned cart written back (self-healing read).
type CartUC struct {
	NS      domain.Namespace
	Latency time.Duration
}

// Cart returns the enriched cart. Quantities are clamped to >= 1 and each
// line carries lineTotal = product price x quantity.
func (uc *CartUC) Cart(ctx context.Context) ([]domain.EnrichedCartLine, error) {
	pause(ctx, uc.Latency)
	raw, err := readColl[domain.CartLine](ctx, uc.NS, domain.KeyCart)
	if err != nil {
		return nil, err
	}
	products, err := readColl[domain.Product](ctx, uc.NS, domain.KeyProducts)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	enriched := make([]domain.EnrichedCartLine, 0, len(raw))
	for _, line := range raw {
		p, ok := byID[line.ProductID]
		if !ok {
			continue // product deleted, line dropped on this read
		}
		line.Quantity = domain.ClampQty(line.Quantity)
		enriched = append(enriched, domain.EnrichedCartLine{
			CartLine:  line,
			Product:   p,
			LineTotal: p.Price * float64(line.Quantity),
		})
	}

	if len(enriched) != len(raw) {
		compact := make([]domain.CartLine, len(enriched))
		for i, e := range enriched {
			compact[i] = e.CartLine
		}
		if err := writeColl(ctx, uc.NS, domain.KeyCart, compact); err != nil {
			log.Error().Err(err).Msg("cart compaction write")
		} else {
			log.Debug().Int("dropped", len(raw)-len(enriched)).Msg("cart compacted")
		}
	}
	return enriched, nil
}

// Total sums the line totals of the current (post-healing) cart.
func (uc *CartUC) Total(ctx context.Context) (float64, error) {
	cart, err := uc.Cart(ctx)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, line := range cart {
		total += line.LineTotal
	}
	return total, nil
}

// Count sums the quantities across lines.
func (uc *CartUC) Count(ctx context.Context) (int, error) {
	cart, err := uc.Cart(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, line := range cart {
		count += domain.ClampQty(line.Quantity)
	}
	return count, nil
}

// Add merges qty into the existing line for productID, or appends a new
// line with a fresh id. The resulting quantity is clamped after the add.
func (uc *CartUC) Add(ctx context.Context, productID string, qty int) ([]domain.EnrichedCartLine, error) {
	pause(ctx, uc.Latency)
	cart, err := readColl[domain.CartLine](ctx, uc.NS, domain.KeyCart)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity = domain.ClampQty(domain.ClampQty(cart[i].Quantity) + qty)
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, domain.CartLine{
			ID:        uuid.NewString(),
			ProductID: productID,
			Quantity:  domain.ClampQty(qty),
		})
	}
	if err := writeColl(ctx, uc.NS, domain.KeyCart, cart); err != nil {
		return nil, err
	}
	return uc.Cart(ctx)
}

// Update sets the quantity of one line. A quantity <= 0 removes the line;
// an unknown line id is a no-op.
func (uc *CartUC) Update(ctx context.Context, lineID string, qty int) ([]domain.EnrichedCartLine, error) {
	pause(ctx, uc.Latency)
	cart, err := readColl[domain.CartLine](ctx, uc.NS, domain.KeyCart)
	if err != nil {
		return nil, err
	}
	for i := range cart {
		if cart[i].ID != lineID {
			continue
		}
		if qty <= 0 {
			cart = append(cart[:i], cart[i+1:]...)
		} else {
			cart[i].Quantity = domain.ClampQty(qty)
		}
		if err := writeColl(ctx, uc.NS, domain.KeyCart, cart); err != nil {
			return nil, err
		}
		break
	}
	return uc.Cart(ctx)
}

// Remove filters the line out unconditionally; unknown ids are a no-op.
func (uc *CartUC) Remove(ctx context.Context, lineID string) ([]domain.EnrichedCartLine, error) {
	pause(ctx, uc.Latency)
	cart, err := readColl[domain.CartLine](ctx, uc.NS, domain.KeyCart)
	if err != nil {
		return nil, err
	}
	next := cart[:0]
	for _, line := range cart {
		if line.ID != lineID {
			next = append(next, line)
		}
	}
	if err := writeColl(ctx, uc.NS, domain.KeyCart, next); err != nil {
		return nil, err
	}
	return uc.Cart(ctx)
}

// Clear resets the cart collection to empty.
func (uc *CartUC) Clear(ctx context.Context) error {
	pause(ctx, uc.Latency)
	return writeColl(ctx, uc.NS, domain.KeyCart, []domain.CartLine{})
}
