package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rajmi/ecommerce-backend/internal/config"
	"github.com/rajmi/ecommerce-backend/internal/models"
	"gorm.io/gorm"
)

// CheckoutService converts a non-empty cart into an immutable order and
// empties the cart.
type CheckoutService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewCheckoutService(db *gorm.DB, cfg *config.Config) *CheckoutService {
	return &CheckoutService{db: db, timeout: cfg.DBTimeout}
}

// Checkout runs the whole transition in one transaction: order creation,
// order items and the cart clear commit or roll back together, so no order
// ever exists without its items and a cart is never emptied without a
// durable order. The cart row is locked FOR UPDATE, which serializes
// checkout against concurrent UpsertItem calls on the same cart. The
// bounded context keeps a stalled checkout from holding the lock
// indefinitely.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint) (*models.Order, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := rowLock(tx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return fmt.Errorf("failed to fetch cart: %w", err)
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to fetch cart items: %w", err)
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		// Total is the sum of the captured line totals; checkout never
		// re-prices against the live catalog.
		var total int64
		for _, item := range items {
			total += item.LineTotalCents
		}

		order = models.Order{UserID: userID, CartID: cart.ID, TotalCents: total}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:    order.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				PriceCents: item.LineTotalCents,
			})
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
