// Package usecase implements the catalog and order store: a backend-style
// API surface over a local persistent key-value namespace.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lmercier/maisoncafe/internal/domain"
)

// readColl loads a JSON collection from the namespace. A missing key or
// malformed payload degrades to the empty collection; only infrastructure
// failures surface as errors to the caller.
func readColl[T any](ctx context.Context, ns domain.Namespace, key string) ([]T, error) {
	raw, err := ns.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("malformed collection, falling back to empty")
		return nil, nil
	}
	return out, nil
}

func writeColl[T any](ctx context.Context, ns domain.Namespace, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	buf, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return ns.Put(ctx, key, buf)
}

// pause simulates backend latency. Zero duration is a no-op, which is how
// tests run; the delay has no correctness implication.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
