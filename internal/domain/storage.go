package domain

import "context"

// Logical keys of the persisted namespace. Each key holds one serialized
// JSON collection; the store is the namespace's only writer.
const (
	KeyVersion   = "version"
	KeyProducts  = "products"
	KeyCart      = "cart"
	KeyOrders    = "orders"
	KeyFavorites = "favorites"
)

// Namespace is a local persistent key-value store with last-write-wins
// semantics. Get returns ErrNotFound when the key is absent.
type Namespace interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Reset(ctx context.Context) error
}
