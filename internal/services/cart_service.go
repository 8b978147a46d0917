package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rajmi/ecommerce-backend/internal/config"
	"github.com/rajmi/ecommerce-backend/internal/dto"
	"github.com/rajmi/ecommerce-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartService owns the mutable shopping-cart state: lines, quantities and
// captured line totals.
type CartService struct {
	db      *gorm.DB
	prices  PriceReader
	timeout time.Duration
}

func NewCartService(db *gorm.DB, prices PriceReader, cfg *config.Config) *CartService {
	return &CartService{db: db, prices: prices, timeout: cfg.DBTimeout}
}

// rowLock takes a FOR UPDATE lock on the selected rows. SQLite (used by the
// tests) rejects the syntax and serializes writers on its own, so the
// clause is only applied on Postgres.
func rowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// GetOrCreateForUser returns the user's cart, creating it on first use. The
// unique index on carts.user_id makes the create safe against races: the
// loser of a concurrent create fetches the winner's row.
func (s *CartService) GetOrCreateForUser(ctx context.Context, userID uint) (*models.Cart, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	var cart models.Cart
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	cart = models.Cart{UserID: userID}
	if err := s.db.WithContext(ctx).Create(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if ferr := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; ferr == nil {
				return &cart, nil
			}
		}
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return &cart, nil
}

// GetForUser returns the user's cart without creating one.
func (s *CartService) GetForUser(ctx context.Context, userID uint) (*models.Cart, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	var cart models.Cart
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return &cart, nil
}

// GetByID loads a cart for the ownership guard.
func (s *CartService) GetByID(ctx context.Context, cartID uint) (*models.Cart, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	var cart models.Cart
	if err := s.db.WithContext(ctx).First(&cart, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return &cart, nil
}

// ListItems returns the cart's lines joined with the product display
// fields. The totals are the ones captured at add time.
func (s *CartService) ListItems(ctx context.Context, cartID uint) ([]dto.CartLine, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	lines := make([]dto.CartLine, 0)
	err := s.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.cart_id, cart_items.product_id, cart_items.quantity, cart_items.line_total_cents, products.name, products.image_url").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.product_id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return lines, nil
}

// TotalCents sums the cart's captured line totals.
func (s *CartService) TotalCents(ctx context.Context, cartID uint) (int64, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(line_total_cents), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to total cart: %w", err)
	}
	return total, nil
}

// UpsertItem merges quantityDelta into the cart line for the product,
// creating the line if absent. Repeated calls accumulate quantity; each
// merge re-prices the whole line at the current catalog price. The cart row
// is held FOR UPDATE across the read-modify-write so concurrent adds of the
// same product cannot lose an update.
func (s *CartService) UpsertItem(ctx context.Context, cartID, productID uint, quantityDelta int) (*models.CartItem, error) {
	if quantityDelta <= 0 {
		return nil, ErrInvalidQuantity
	}

	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	// Current catalog price, read before the transaction per the merge
	// contract: the line is re-priced to whatever the catalog says now.
	price, err := s.prices.UnitPriceCents(ctx, productID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := rowLock(tx).First(&cart, cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return fmt.Errorf("failed to lock cart: %w", err)
		}

		err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:         cartID,
				ProductID:      productID,
				Quantity:       quantityDelta,
				LineTotalCents: price * int64(quantityDelta),
			}
			return tx.Create(&item).Error
		case err != nil:
			return fmt.Errorf("failed to fetch cart item: %w", err)
		}

		item.Quantity += quantityDelta
		item.LineTotalCents = price * int64(item.Quantity)
		return tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Updates(map[string]interface{}{
				"quantity":         item.Quantity,
				"line_total_cents": item.LineTotalCents,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SetItemQuantity overwrites the line's quantity. Unlike UpsertItem it does
// not touch the captured line total; callers that need it re-fetch.
func (s *CartService) SetItemQuantity(ctx context.Context, cartID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	result := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update cart item quantity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCartItemNotFound
	}

	var item models.CartItem
	if err := s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart item: %w", err)
	}
	return &item, nil
}

// RemoveItem deletes one line. Removing a line that does not exist is a
// no-op success.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID uint) error {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	err := s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear deletes all lines. Clearing an already-empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, cartID uint) error {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	err := s.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
