package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lmercier/maisoncafe/internal/adapters/payments/cardsim"
	"github.com/lmercier/maisoncafe/internal/adapters/repo/localstore"
	"github.com/lmercier/maisoncafe/internal/domain"
	"github.com/lmercier/maisoncafe/internal/seed"
)

const (
	validVisa   = "4111111111111111"
	invalidLuhn = "4111111111111112"
)

type fixture struct {
	ns        *localstore.Store
	catalog   *CatalogUC
	cart      *CartUC
	favorites *FavoriteUC
	orders    *OrderUC
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	ns := localstore.New(db)
	require.NoError(t, ns.Migrate())

	f := &fixture{
		ns:        ns,
		catalog:   &CatalogUC{NS: ns},
		cart:      &CartUC{NS: ns},
		favorites: &FavoriteUC{NS: ns},
	}
	f.orders = &OrderUC{NS: ns, Cart: f.cart, Gateway: cardsim.NewGateway(0)}
	require.NoError(t, f.catalog.Init(context.Background()))
	return f
}

// rawCart reads the persisted cart lines, bypassing enrichment.
func rawCart(t *testing.T, ns *localstore.Store) []domain.CartLine {
	t.Helper()
	raw, err := ns.Get(context.Background(), domain.KeyCart)
	require.NoError(t, err)
	var lines []domain.CartLine
	require.NoError(t, json.Unmarshal(raw, &lines))
	return lines
}

// ---------- initialization ----------

func TestInitIsIdempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.catalog.List(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, first, 8)

	_, err = f.cart.Add(ctx, first[0].ID, 2)
	require.NoError(t, err)
	_, err = f.favorites.Add(ctx, first[1].ID)
	require.NoError(t, err)

	require.NoError(t, f.catalog.Init(ctx))

	again, err := f.catalog.List(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, again, 8, "second init must not duplicate the seed")

	cart, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart, 1, "second init must not wipe the cart")
	favs, err := f.favorites.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestVersionMismatchReseedsProductsOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	products, err := f.catalog.List(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	_, err = f.cart.Add(ctx, products[0].ID, 1)
	require.NoError(t, err)

	// simulate a catalog written by an older build
	require.NoError(t, f.ns.Put(ctx, domain.KeyVersion, []byte("v1")))
	stale := []domain.Product{{ID: "stale", Name: "Stale", Category: "Old"}}
	buf, _ := json.Marshal(stale)
	require.NoError(t, f.ns.Put(ctx, domain.KeyProducts, buf))

	require.NoError(t, f.catalog.Init(ctx))

	reseeded, err := f.catalog.List(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, reseeded, 8)
	assert.NotEqual(t, "stale", reseeded[0].ID)

	cart, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart, 1, "reseed must leave the cart alone")

	ver, err := f.ns.Get(ctx, domain.KeyVersion)
	require.NoError(t, err)
	assert.Equal(t, seed.DataVersion, string(ver))
}

func TestInitMigratesLegacyImagePaths(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	legacy := []domain.Product{{
		ID:     "1",
		Name:   "Legacy",
		Image:  "attached_assets/old/machine.png",
		Images: []string{"/@fs/home/dev/assets/machine.png"},
	}}
	buf, _ := json.Marshal(legacy)
	require.NoError(t, f.ns.Put(ctx, domain.KeyProducts, buf))

	require.NoError(t, f.catalog.Init(ctx))

	p, err := f.catalog.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "/machine.png", p.Image)
	assert.Equal(t, []string{"/machine.png"}, p.Images)
}

func TestMalformedCollectionFallsBackToEmpty(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.ns.Put(ctx, domain.KeyCart, []byte("{not json")))
	cart, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

// ---------- catalog queries ----------

func TestFilterComposition(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	min := 1000.0
	list, err := f.catalog.List(ctx, domain.ProductFilter{Category: "Espresso", MinPrice: &min})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Espresso Maestro Pro", list[0].Name)

	// bounds are inclusive
	exact := list[0].Price
	bounded, err := f.catalog.List(ctx, domain.ProductFilter{MinPrice: &exact, MaxPrice: &exact})
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, list[0].ID, bounded[0].ID)
}

func TestSearchMatchesNameCategoryDescription(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	byName, err := f.catalog.List(ctx, domain.ProductFilter{Search: "maestro"})
	require.NoError(t, err)
	require.Len(t, byName, 1)

	byCategory, err := f.catalog.List(ctx, domain.ProductFilter{Search: "cold brew"})
	require.NoError(t, err)
	assert.NotEmpty(t, byCategory)

	none, err := f.catalog.List(ctx, domain.ProductFilter{Search: "zzzzzz"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListPreservesStorageOrder(t *testing.T) {
	f := setup(t)

	list, err := f.catalog.List(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	for i, p := range list {
		assert.Equal(t, seed.Products()[i].ID, p.ID)
	}
}

func TestGetByIDOrSlug(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	byID, err := f.catalog.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "French Press Deluxe", byID.Name)

	bySlug, err := f.catalog.Get(ctx, "french-press-deluxe")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, bySlug.ID)

	_, err = f.catalog.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFeaturedLimit(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	list, err := f.catalog.Featured(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, p := range list {
		assert.True(t, p.Featured)
	}
}

func TestCategoriesDistinctAndStable(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.catalog.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Espresso", "Automatic", "French Press", "Cappuccino",
		"Professional", "Compact", "Mocha", "Cold Brew",
	}, first)

	second, err := f.catalog.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// ---------- cart ----------

func TestCartMergeInvariant(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "1", 2)
	require.NoError(t, err)
	_, err = f.cart.Add(ctx, "1", 3)
	require.NoError(t, err)
	cart, err := f.cart.Add(ctx, "1", 1)
	require.NoError(t, err)

	require.Len(t, cart, 1, "one line per product id")
	assert.Equal(t, "1", cart[0].ProductID)
	assert.Equal(t, 6, cart[0].Quantity)
}

func TestAddClampsQuantity(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cart, err := f.cart.Add(ctx, "2", -5)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestCartSelfHealingCompaction(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "1", 1)
	require.NoError(t, err)

	// inject a line for a product that is not in the catalog
	lines := rawCart(t, f.ns)
	lines = append(lines, domain.CartLine{ID: "ghost-line", ProductID: "deleted-product", Quantity: 2})
	buf, _ := json.Marshal(lines)
	require.NoError(t, f.ns.Put(ctx, domain.KeyCart, buf))

	cart, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "1", cart[0].ProductID)

	// the persisted cart was rewritten without the stale line
	persisted := rawCart(t, f.ns)
	require.Len(t, persisted, 1)
	assert.Equal(t, "1", persisted[0].ProductID)
}

func TestCartTotalMatchesLineTotals(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "1", 2)
	require.NoError(t, err)
	_, err = f.cart.Add(ctx, "3", 1)
	require.NoError(t, err)

	cart, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	want := 0.0
	for _, line := range cart {
		assert.Equal(t, line.Product.Price*float64(line.Quantity), line.LineTotal)
		want += line.LineTotal
	}

	total, err := f.cart.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, total)
	assert.InDelta(t, 2*1299.99+899.99, total, 1e-9)
}

func TestCartCount(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "1", 2)
	require.NoError(t, err)
	_, err = f.cart.Add(ctx, "2", 3)
	require.NoError(t, err)

	count, err := f.cart.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestUpdateCartItem(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cart, err := f.cart.Add(ctx, "1", 1)
	require.NoError(t, err)
	lineID := cart[0].ID

	cart, err = f.cart.Update(ctx, lineID, 4)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 4, cart[0].Quantity)

	// unknown id is a no-op
	cart, err = f.cart.Update(ctx, "unknown", 9)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 4, cart[0].Quantity)

	// zero or negative removes the line
	cart, err = f.cart.Update(ctx, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestRemoveFromCart(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cart, err := f.cart.Add(ctx, "1", 1)
	require.NoError(t, err)

	cart, err = f.cart.Remove(ctx, "not-a-line")
	require.NoError(t, err)
	assert.Len(t, cart, 1)

	cart, err = f.cart.Remove(ctx, cart[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

// ---------- favorites ----------

func TestFavoriteToggleSymmetry(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	on, err := f.favorites.Toggle(ctx, "5")
	require.NoError(t, err)
	assert.True(t, on)
	favs, err := f.favorites.Favorites(ctx)
	require.NoError(t, err)
	assert.Contains(t, favs, "5")

	off, err := f.favorites.Toggle(ctx, "5")
	require.NoError(t, err)
	assert.False(t, off)
	favs, err = f.favorites.Favorites(ctx)
	require.NoError(t, err)
	assert.NotContains(t, favs, "5")
}

func TestFavoritesDeduplicate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.favorites.Add(ctx, "2")
	require.NoError(t, err)
	favs, err := f.favorites.Add(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, favs)
}

// ---------- orders ----------

func TestCreateOrderClearsCart(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "1", 2)
	require.NoError(t, err)
	total, err := f.cart.Total(ctx)
	require.NoError(t, err)

	o, err := f.orders.Create(ctx, domain.OrderDraft{
		ShippingAddress: "12 Rue des Lilas, Lyon",
		BillingAddress:  "12 Rue des Lilas, Lyon",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.Equal(t, total, o.Total)
	assert.NotEmpty(t, o.ID)
	assert.False(t, o.CreatedAt.IsZero())

	orders, err := f.orders.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "12 Rue des Lilas, Lyon", orders[0].ShippingAddress)
	assert.Equal(t, total, orders[0].Total)

	cart, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestPlaceOrderDefaults(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.orders.Place(ctx, domain.Order{Total: 42})
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, domain.OrderStatusPaid, o.Status)

	got, err := f.orders.Order(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = f.orders.Order(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckoutRejectsBadChecksumBeforePersisting(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "1", 1)
	require.NoError(t, err)

	_, err = f.orders.Checkout(ctx, domain.Card{
		Number: invalidLuhn, Holder: "A B", Expiry: "12/29", CVC: "123",
	}, domain.OrderDraft{ShippingAddress: "x", BillingAddress: "y"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)

	orders, err := f.orders.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders, "validation failure must not persist an order")

	cart, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart, 1, "validation failure must not clear the cart")
}

func TestCheckoutSuccess(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "2", 1)
	require.NoError(t, err)

	o, err := f.orders.Checkout(ctx, domain.Card{
		Number: validVisa, Holder: "A B", Expiry: "12/29", CVC: "123",
	}, domain.OrderDraft{ShippingAddress: "a", BillingAddress: "b"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, o.Status)
	assert.InDelta(t, 2499.99, o.Total, 1e-9)

	cart, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := setup(t)

	_, err := f.orders.Checkout(context.Background(), domain.Card{
		Number: validVisa, Holder: "A B", Expiry: "12/29", CVC: "123",
	}, domain.OrderDraft{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestSettleTransitions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "1", 1)
	require.NoError(t, err)
	o, err := f.orders.Create(ctx, domain.OrderDraft{})
	require.NoError(t, err)

	settled, err := f.orders.Settle(ctx, o.ID, domain.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, settled.Status)

	// settled orders are immutable
	_, err = f.orders.Settle(ctx, o.ID, domain.OrderStatusFailed)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.orders.Settle(ctx, "missing", domain.OrderStatusPaid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
