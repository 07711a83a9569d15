// Package cache is the thin reactive-query layer between the HTTP adapter
// and the store: cached reads keyed by query name, explicitly invalidated
// after mutations. Cache coherence is a caller convention — the cart,
// cart-count and cart-total keys must always be invalidated together.
package cache

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/singleflight"
)

// Well-known query keys. Filtered product listings derive their own keys
// from the query string.
const (
	KeyCart      = "cart"
	KeyCartCount = "cart-count"
	KeyCartTotal = "cart-total"
	KeyProducts  = "products"
	KeyFavorites = "favorites"
	KeyOrders    = "orders"
)

// CartKeys is the invalidation group for cart-affecting mutations. The
// three keys must always be dropped together.
var CartKeys = []string{KeyCart, KeyCartCount, KeyCartTotal}

// Backend stores marshaled query results. Implementations: in-process
// memory (default) and Redis (cache-aside, shared across restarts).
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// Querier wraps a Backend with JSON marshaling and collapses duplicate
// concurrent loads for the same key.
type Querier struct {
	backend Backend
	group   singleflight.Group
}

func NewQuerier(b Backend) *Querier { return &Querier{backend: b} }

// Do resolves key through the cache: on a hit the stored value is
// unmarshaled into dest; on a miss load runs (once per key across
// concurrent callers), the result is cached and written to dest.
// Backend failures degrade to a direct load, never to a caller error.
func (q *Querier) Do(ctx context.Context, key string, dest any, load func(ctx context.Context) (any, error)) error {
	if raw, ok, err := q.backend.Get(ctx, key); err == nil && ok {
		if json.Unmarshal(raw, dest) == nil {
			return nil
		}
	}
	raw, err, _ := q.group.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		buf, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		_ = q.backend.Set(ctx, key, buf)
		return buf, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw.([]byte), dest)
}

// Invalidate drops the given keys. Call with a whole group (CartKeys)
// after any mutation touching that group.
func (q *Querier) Invalidate(ctx context.Context, keys ...string) {
	_ = q.backend.Delete(ctx, keys...)
}
