// Package app is the composition root: it builds the store, its cache
// and the HTTP surface from explicit dependencies, no ambient globals.
package app

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/lmercier/maisoncafe/internal/adapters/httpserver"
	"github.com/lmercier/maisoncafe/internal/adapters/payments/cardsim"
	"github.com/lmercier/maisoncafe/internal/adapters/repo/localstore"
	"github.com/lmercier/maisoncafe/internal/cache"
	"github.com/lmercier/maisoncafe/internal/config"
	"github.com/lmercier/maisoncafe/internal/usecase"
)

type App struct {
	DB        *gorm.DB
	Store     *localstore.Store
	Catalog   *usecase.CatalogUC
	Cart      *usecase.CartUC
	Favorites *usecase.FavoriteUC
	Orders    *usecase.OrderUC
	Queries   *cache.Querier
}

func NewApp(db *gorm.DB, cfg config.Config) *App {
	ns := localstore.New(db)

	catalog := &usecase.CatalogUC{NS: ns, Latency: cfg.SimLatency}
	cart := &usecase.CartUC{NS: ns, Latency: cfg.SimLatency}
	favorites := &usecase.FavoriteUC{NS: ns, Latency: cfg.SimLatency}
	orders := &usecase.OrderUC{
		NS:      ns,
		Cart:    cart,
		Gateway: cardsim.NewGateway(cfg.SimLatency),
		Latency: cfg.SimLatency,
	}

	var backend cache.Backend = cache.NewMemory(cfg.CacheTTL)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		rb := cache.NewRedis(client, "maisoncafe:", cfg.CacheTTL)
		if err := rb.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, using in-memory cache")
		} else {
			backend = rb
		}
	}

	return &App{
		DB:        db,
		Store:     ns,
		Catalog:   catalog,
		Cart:      cart,
		Favorites: favorites,
		Orders:    orders,
		Queries:   cache.NewQuerier(backend),
	}
}

// Init migrates the backing table and runs the store's idempotent
// startup protocol (version check, seed, path migration, defaults).
func (a *App) Init(ctx context.Context) error {
	if err := a.Store.Migrate(); err != nil {
		return err
	}
	return a.Catalog.Init(ctx)
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Catalog, a.Cart, a.Favorites, a.Orders, a.Queries)
}
