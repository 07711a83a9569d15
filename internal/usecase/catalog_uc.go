package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lmercier/maisoncafe/internal/domain"
	"github.com/lmercier/maisoncafe/internal/seed"
)

// CatalogUC owns the product collection: seeding, migration and queries.
type CatalogUC struct {
	NS      domain.Namespace
	Latency time.Duration
}

// Init runs the startup protocol. Idempotent: a second call never
// duplicates seeded products and never touches an existing cart, orders
// or favorites collection unless the data version genuinely changed.
func (uc *CatalogUC) Init(ctx context.Context) error {
	current := ""
	if raw, err := uc.NS.Get(ctx, domain.KeyVersion); err == nil {
		current = string(raw)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	// Version mismatch wipes the seeded products only; cart, orders and
	// favorites survive the reseed.
	if current != seed.DataVersion {
		if err := uc.NS.Delete(ctx, domain.KeyProducts); err != nil {
			return err
		}
		if err := uc.NS.Put(ctx, domain.KeyVersion, []byte(seed.DataVersion)); err != nil {
			return err
		}
		if current != "" {
			log.Info().Str("from", current).Str("to", seed.DataVersion).Msg("catalog version changed, products reseeded")
		}
	}

	if _, err := uc.NS.Get(ctx, domain.KeyProducts); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := writeColl(ctx, uc.NS, domain.KeyProducts, seed.Products()); err != nil {
			return err
		}
		log.Info().Int("products", len(seed.Products())).Msg("catalog seeded")
	} else {
		// Forward migration over an already-stored catalog: normalize
		// image paths inherited from older dumps.
		stored, err := readColl[domain.Product](ctx, uc.NS, domain.KeyProducts)
		if err != nil {
			return err
		}
		if migrated, changed := seed.NormalizeProducts(stored); changed {
			if err := writeColl(ctx, uc.NS, domain.KeyProducts, migrated); err != nil {
				return err
			}
			log.Info().Msg("catalog image paths migrated")
		}
	}

	for _, key := range []string{domain.KeyCart, domain.KeyOrders, domain.KeyFavorites} {
		if _, err := uc.NS.Get(ctx, key); errors.Is(err, domain.ErrNotFound) {
			if err := uc.NS.Put(ctx, key, []byte("[]")); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

// List returns the catalog narrowed by f, in storage (insertion) order.
func (uc *CatalogUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	pause(ctx, uc.Latency)
	products, err := readColl[domain.Product](ctx, uc.NS, domain.KeyProducts)
	if err != nil {
		return nil, err
	}
	if f.Empty() {
		return products, nil
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Get looks a product up by id or slug. A miss is ErrNotFound, never a
// failure.
func (uc *CatalogUC) Get(ctx context.Context, idOrSlug string) (*domain.Product, error) {
	pause(ctx, uc.Latency)
	products, err := readColl[domain.Product](ctx, uc.NS, domain.KeyProducts)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == idOrSlug || p.Slug == idOrSlug {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Featured returns featured-flagged products truncated to limit, in
// storage order.
func (uc *CatalogUC) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	featured := true
	list, err := uc.List(ctx, domain.ProductFilter{Featured: &featured})
	if err != nil {
		return nil, err
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Categories returns the distinct category values currently present, in
// first-appearance order so the listing is stable within a session.
func (uc *CatalogUC) Categories(ctx context.Context) ([]string, error) {
	products, err := readColl[domain.Product](ctx, uc.NS, domain.KeyProducts)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out, nil
}

// ResetAll wipes the whole namespace and reruns the startup protocol.
func (uc *CatalogUC) ResetAll(ctx context.Context) error {
	if err := uc.NS.Reset(ctx); err != nil {
		return err
	}
	return uc.Init(ctx)
}
