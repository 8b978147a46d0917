package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rajmi/ecommerce-backend/internal/models"
	"gorm.io/gorm"
)

func newCheckoutFixture(t *testing.T) (*CheckoutService, *CartService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	return NewCheckoutService(db, cfg), NewCartService(db, NewCatalogService(db, cfg), cfg), db
}

func TestCheckoutWithoutCart(t *testing.T) {
	checkout, _, db := newCheckoutFixture(t)
	user := seedUser(t, db, "alice", "alice@example.com")

	if _, err := checkout.Checkout(context.Background(), user.ID); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("got %v, want ErrCartNotFound", err)
	}
}

func TestCheckoutEmptyCartCreatesNoOrder(t *testing.T) {
	checkout, carts, db := newCheckoutFixture(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice", "alice@example.com")

	if _, err := carts.GetOrCreateForUser(ctx, user.ID); err != nil {
		t.Fatalf("GetOrCreateForUser: %v", err)
	}

	if _, err := checkout.Checkout(ctx, user.ID); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("got %v, want ErrCartEmpty", err)
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("order count = %d, want 0", count)
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	checkout, carts, db := newCheckoutFixture(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice", "alice@example.com")
	p1 := seedProduct(t, db, "widget", 500)
	p2 := seedProduct(t, db, "gadget", 300)

	cart, err := carts.GetOrCreateForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreateForUser: %v", err)
	}
	if _, err := carts.UpsertItem(ctx, cart.ID, p1.ID, 2); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}
	if _, err := carts.UpsertItem(ctx, cart.ID, p2.ID, 1); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}

	order, err := checkout.Checkout(ctx, user.ID)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if order.UserID != user.ID || order.CartID != cart.ID {
		t.Fatalf("order %+v: wrong user or cart reference", order)
	}
	if order.TotalCents != 2*500+300 {
		t.Fatalf("total = %d, want %d", order.TotalCents, 2*500+300)
	}

	var items []models.OrderItem
	if err := db.Where("order_id = ?", order.ID).Order("product_id ASC").Find(&items).Error; err != nil {
		t.Fatalf("fetch order items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d order items, want 2", len(items))
	}
	if items[0].ProductID != p1.ID || items[0].Quantity != 2 || items[0].PriceCents != 1000 {
		t.Fatalf("unexpected first item %+v", items[0])
	}
	if items[1].ProductID != p2.ID || items[1].Quantity != 1 || items[1].PriceCents != 300 {
		t.Fatalf("unexpected second item %+v", items[1])
	}

	// The cart is emptied but the row itself survives.
	total, err := carts.TotalCents(ctx, cart.ID)
	if err != nil {
		t.Fatalf("TotalCents: %v", err)
	}
	if total != 0 {
		t.Fatalf("cart total after checkout = %d, want 0", total)
	}
	if _, err := carts.GetForUser(ctx, user.ID); err != nil {
		t.Fatalf("cart row should survive checkout: %v", err)
	}
}

func TestCheckoutRollsBackOnItemCopyFailure(t *testing.T) {
	checkout, carts, db := newCheckoutFixture(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice", "alice@example.com")
	p1 := seedProduct(t, db, "widget", 500)
	p2 := seedProduct(t, db, "gadget", 300)

	cart, err := carts.GetOrCreateForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreateForUser: %v", err)
	}
	if _, err := carts.UpsertItem(ctx, cart.ID, p1.ID, 2); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}
	if _, err := carts.UpsertItem(ctx, cart.ID, p2.ID, 1); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}

	// Make the order-item copy fail after the order row has been created;
	// the whole transaction must roll back.
	if err := db.Migrator().DropTable(&models.OrderItem{}); err != nil {
		t.Fatalf("drop order items table: %v", err)
	}

	if _, err := checkout.Checkout(ctx, user.ID); err == nil {
		t.Fatal("expected checkout to fail")
	}

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Fatalf("order count = %d, want 0 after rollback", orders)
	}

	total, err := carts.TotalCents(ctx, cart.ID)
	if err != nil {
		t.Fatalf("TotalCents: %v", err)
	}
	if total != 2*500+300 {
		t.Fatalf("cart total = %d, want %d (cart must survive failed checkout)", total, 2*500+300)
	}
}

func TestCheckoutDoesNotRepriceAgainstCatalog(t *testing.T) {
	checkout, carts, db := newCheckoutFixture(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice", "alice@example.com")
	product := seedProduct(t, db, "widget", 500)

	cart, err := carts.GetOrCreateForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreateForUser: %v", err)
	}
	if _, err := carts.UpsertItem(ctx, cart.ID, product.ID, 2); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}

	// A catalog price change after the add does not affect checkout.
	if err := db.Model(product).Update("price_cents", 9999).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	order, err := checkout.Checkout(ctx, user.ID)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if order.TotalCents != 1000 {
		t.Fatalf("total = %d, want captured 1000", order.TotalCents)
	}
}

func TestCheckoutTwiceProducesTwoOrders(t *testing.T) {
	checkout, carts, db := newCheckoutFixture(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice", "alice@example.com")
	product := seedProduct(t, db, "widget", 500)

	cart, err := carts.GetOrCreateForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreateForUser: %v", err)
	}
	if _, err := carts.UpsertItem(ctx, cart.ID, product.ID, 1); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}
	first, err := checkout.Checkout(ctx, user.ID)
	if err != nil {
		t.Fatalf("first Checkout: %v", err)
	}

	// The same cart is reused for the next purchase.
	if _, err := carts.UpsertItem(ctx, cart.ID, product.ID, 2); err != nil {
		t.Fatalf("UpsertItem after checkout: %v", err)
	}
	second, err := checkout.Checkout(ctx, user.ID)
	if err != nil {
		t.Fatalf("second Checkout: %v", err)
	}

	if first.ID == second.ID {
		t.Fatal("expected two distinct orders")
	}
	if second.CartID != cart.ID {
		t.Fatalf("second order cart = %d, want %d", second.CartID, cart.ID)
	}
	if second.TotalCents != 1000 {
		t.Fatalf("second total = %d, want 1000", second.TotalCents)
	}
}
