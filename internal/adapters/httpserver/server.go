// Package httpserver exposes the store as a JSON API for the UI layer.
// Reads go through the query cache; every mutation invalidates its whole
// key group so the UI never reads stale cart numbers.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/lmercier/maisoncafe/internal/cache"
	"github.com/lmercier/maisoncafe/internal/domain"
	"github.com/lmercier/maisoncafe/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	catalog   *usecase.CatalogUC
	cart      *usecase.CartUC
	favorites *usecase.FavoriteUC
	orders    *usecase.OrderUC
	queries   *cache.Querier
}

func New(catalog *usecase.CatalogUC, cart *usecase.CartUC, favorites *usecase.FavoriteUC, orders *usecase.OrderUC, queries *cache.Querier) http.Handler {
	s := &Server{
		mux:       http.NewServeMux(),
		catalog:   catalog,
		cart:      cart,
		favorites: favorites,
		orders:    orders,
		queries:   queries,
	}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/featured", s.apiFeatured)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)
	s.mux.HandleFunc("/api/categories", s.apiCategories)

	s.mux.HandleFunc("/api/cart", s.apiCart)
	s.mux.HandleFunc("/api/cart/summary", s.apiCartSummary)
	s.mux.HandleFunc("/api/cart/", s.apiCartLine)

	s.mux.HandleFunc("/api/favorites", s.apiFavorites)
	s.mux.HandleFunc("/api/favorites/toggle", s.apiFavoriteToggle)

	s.mux.HandleFunc("/api/orders", s.apiOrders)
	s.mux.HandleFunc("/api/orders/", s.apiOrderByID)
	s.mux.HandleFunc("/api/checkout", s.apiCheckout)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

// ---------- products ----------

func parseFilter(r *http.Request) (domain.ProductFilter, error) {
	qv := r.URL.Query()
	f := domain.ProductFilter{
		Search:   qv.Get("q"),
		Category: qv.Get("category"),
	}
	if v := qv.Get("min_price"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errors.New("bad min_price")
		}
		f.MinPrice = &n
	}
	if v := qv.Get("max_price"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errors.New("bad max_price")
		}
		f.MaxPrice = &n
	}
	if v := qv.Get("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New("bad featured")
		}
		f.Featured = &b
	}
	return f, nil
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		writeJSON(w, 400, errBody(err))
		return
	}
	key := cache.KeyProducts
	if q := r.URL.Query().Encode(); q != "" {
		key += "?" + q
	}
	var list []domain.Product
	if err := s.queries.Do(r.Context(), key, &list, func(ctx context.Context) (any, error) {
		return s.catalog.List(ctx, f)
	}); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"items": list, "total": len(list)})
}

func (s *Server) apiFeatured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.catalog.Featured(r.Context(), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"items": list})
}

func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	idOrSlug := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if idOrSlug == "" {
		http.NotFound(w, r)
		return
	}
	p, err := s.catalog.Get(r.Context(), idOrSlug)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, 200, p)
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	var cats []string
	if err := s.queries.Do(r.Context(), "categories", &cats, func(ctx context.Context) (any, error) {
		return s.catalog.Categories(ctx)
	}); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"items": cats})
}

// ---------- cart ----------

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var lines []domain.EnrichedCartLine
		if err := s.queries.Do(r.Context(), cache.KeyCart, &lines, func(ctx context.Context) (any, error) {
			return s.cart.Cart(ctx)
		}); err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": lines})
	case http.MethodPost:
		var req struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
			writeJSON(w, 400, errBody(errors.New("productId required")))
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		lines, err := s.cart.Add(r.Context(), req.ProductID, req.Quantity)
		if err != nil {
			s.fail(w, err)
			return
		}
		s.queries.Invalidate(r.Context(), cache.CartKeys...)
		writeJSON(w, 200, map[string]any{"items": lines})
	case http.MethodDelete:
		if err := s.cart.Clear(r.Context()); err != nil {
			s.fail(w, err)
			return
		}
		s.queries.Invalidate(r.Context(), cache.CartKeys...)
		writeJSON(w, 200, map[string]any{"status": "ok"})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiCartSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	var count int
	if err := s.queries.Do(r.Context(), cache.KeyCartCount, &count, func(ctx context.Context) (any, error) {
		return s.cart.Count(ctx)
	}); err != nil {
		s.fail(w, err)
		return
	}
	var total float64
	if err := s.queries.Do(r.Context(), cache.KeyCartTotal, &total, func(ctx context.Context) (any, error) {
		return s.cart.Total(ctx)
	}); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"count": count, "total": total})
}

func (s *Server) apiCartLine(w http.ResponseWriter, r *http.Request) {
	lineID := strings.TrimPrefix(r.URL.Path, "/api/cart/")
	if lineID == "" || strings.Contains(lineID, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var req struct {
			Quantity int `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, 400, errBody(errors.New("invalid json")))
			return
		}
		lines, err := s.cart.Update(r.Context(), lineID, req.Quantity)
		if err != nil {
			s.fail(w, err)
			return
		}
		s.queries.Invalidate(r.Context(), cache.CartKeys...)
		writeJSON(w, 200, map[string]any{"items": lines})
	case http.MethodDelete:
		lines, err := s.cart.Remove(r.Context(), lineID)
		if err != nil {
			s.fail(w, err)
			return
		}
		s.queries.Invalidate(r.Context(), cache.CartKeys...)
		writeJSON(w, 200, map[string]any{"items": lines})
	default:
		http.Error(w, "method", 405)
	}
}

// ---------- favorites ----------

func (s *Server) apiFavorites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	var favs []string
	if err := s.queries.Do(r.Context(), cache.KeyFavorites, &favs, func(ctx context.Context) (any, error) {
		return s.favorites.Favorites(ctx)
	}); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"items": favs})
}

func (s *Server) apiFavoriteToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeJSON(w, 400, errBody(errors.New("productId required")))
		return
	}
	favorited, err := s.favorites.Toggle(r.Context(), req.ProductID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.queries.Invalidate(r.Context(), cache.KeyFavorites)
	writeJSON(w, 200, map[string]any{"favorited": favorited})
}

// ---------- orders & checkout ----------

func (s *Server) apiOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.orders.Orders(r.Context())
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list})
	case http.MethodPost:
		var draft domain.OrderDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeJSON(w, 400, errBody(errors.New("invalid json")))
			return
		}
		o, err := s.orders.Create(r.Context(), draft)
		if err != nil {
			s.fail(w, err)
			return
		}
		s.queries.Invalidate(r.Context(), cache.CartKeys...)
		s.queries.Invalidate(r.Context(), cache.KeyOrders)
		writeJSON(w, 201, o)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiOrderByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}
	if id, ok := strings.CutSuffix(rest, "/settle"); ok {
		s.apiOrderSettle(w, r, id)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	o, err := s.orders.Order(r.Context(), rest)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, 200, o)
}

func (s *Server) apiOrderSettle(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, 400, errBody(errors.New("invalid json")))
		return
	}
	o, err := s.orders.Settle(r.Context(), id, req.Status)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.queries.Invalidate(r.Context(), cache.KeyOrders)
	writeJSON(w, 200, o)
}

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		Card            domain.Card `json:"card"`
		ShippingAddress string      `json:"shippingAddress"`
		BillingAddress  string      `json:"billingAddress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, 400, errBody(errors.New("invalid json")))
		return
	}
	o, err := s.orders.Checkout(r.Context(), req.Card, domain.OrderDraft{
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.queries.Invalidate(r.Context(), cache.CartKeys...)
	s.queries.Invalidate(r.Context(), cache.KeyOrders)
	writeJSON(w, 201, o)
}

// ---------- helpers ----------

func (s *Server) fail(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr), errors.Is(err, domain.ErrEmptyCart):
		writeJSON(w, 400, errBody(err))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, 404, map[string]any{"status": "error", "message": "not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		writeJSON(w, 409, errBody(err))
	default:
		writeJSON(w, 500, map[string]any{"status": "error", "message": "internal error"})
	}
}

func errBody(err error) map[string]any {
	return map[string]any{"status": "error", "message": err.Error()}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
