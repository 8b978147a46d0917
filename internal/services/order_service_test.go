package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rajmi/ecommerce-backend/internal/models"
)

func TestListForUserIsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, testConfig())
	ctx := context.Background()

	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")

	for _, o := range []models.Order{
		{UserID: alice.ID, CartID: 1, TotalCents: 100},
		{UserID: alice.ID, CartID: 1, TotalCents: 200},
		{UserID: bob.ID, CartID: 2, TotalCents: 300},
	} {
		if err := db.Create(&o).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	orders, err := svc.ListForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}
	for _, o := range orders {
		if o.UserID != alice.ID {
			t.Fatalf("order %d belongs to user %d, want %d", o.ID, o.UserID, alice.ID)
		}
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, testConfig())

	if _, err := svc.GetByID(context.Background(), 9999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("got %v, want ErrOrderNotFound", err)
	}
}

func TestOrderListItemsJoinsProductFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, testConfig())
	ctx := context.Background()

	user := seedUser(t, db, "alice", "alice@example.com")
	product := seedProduct(t, db, "widget", 500)

	order := models.Order{UserID: user.ID, CartID: 1, TotalCents: 1000}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	item := models.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: 2, PriceCents: 1000}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed order item: %v", err)
	}

	lines, err := svc.ListItems(ctx, order.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	line := lines[0]
	if line.Name != "widget" || line.Quantity != 2 || line.PriceCents != 1000 {
		t.Fatalf("unexpected line %+v", line)
	}
}
