package usecase

import (
	"context"
	"time"

	"github.com/lmercier/maisoncafe/internal/domain"
)

// FavoriteUC owns the favorites collection: a deduplicated set of product
// ids, order irrelevant.
type FavoriteUC struct {
	NS      domain.Namespace
	Latency time.Duration
}

func (uc *FavoriteUC) Favorites(ctx context.Context) ([]string, error) {
	pause(ctx, uc.Latency)
	favs, err := readColl[string](ctx, uc.NS, domain.KeyFavorites)
	if err != nil {
		return nil, err
	}
	if favs == nil {
		favs = []string{}
	}
	return favs, nil
}

func (uc *FavoriteUC) Add(ctx context.Context, productID string) ([]string, error) {
	favs, err := uc.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range favs {
		if id == productID {
			return favs, nil
		}
	}
	favs = append(favs, productID)
	if err := writeColl(ctx, uc.NS, domain.KeyFavorites, favs); err != nil {
		return nil, err
	}
	return favs, nil
}

func (uc *FavoriteUC) Remove(ctx context.Context, productID string) ([]string, error) {
	favs, err := uc.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	next := make([]string, 0, len(favs))
	for _, id := range favs {
		if id != productID {
			next = append(next, id)
		}
	}
	if err := writeColl(ctx, uc.NS, domain.KeyFavorites, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Toggle flips membership and reports the resulting state: true means the
// product is now favorited.
func (uc *FavoriteUC) Toggle(ctx context.Context, productID string) (bool, error) {
	favs, err := uc.Favorites(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range favs {
		if id == productID {
			_, err := uc.Remove(ctx, productID)
			return false, err
		}
	}
	_, err = uc.Add(ctx, productID)
	return err == nil, err
}
