package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rajmi/ecommerce-backend/internal/auth"
	"github.com/rajmi/ecommerce-backend/internal/config"
	"github.com/rajmi/ecommerce-backend/internal/dto"
	"github.com/rajmi/ecommerce-backend/internal/models"
	"gorm.io/gorm"
)

// OrderService is the read-only view of completed orders.
type OrderService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewOrderService(db *gorm.DB, cfg *config.Config) *OrderService {
	return &OrderService{db: db, timeout: cfg.DBTimeout}
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	orders := make([]models.Order, 0)
	err := s.db.WithContext(ctx).
		Scopes(auth.OwnedBy(userID)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return &order, nil
}

// ListItems returns the order's lines joined with the product display
// fields used by the order-details view.
func (s *OrderService) ListItems(ctx context.Context, orderID uint) ([]dto.OrderLine, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	lines := make([]dto.OrderLine, 0)
	err := s.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.order_id, order_items.product_id, order_items.quantity, order_items.price_cents, products.name, products.description, products.image_url").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.product_id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return lines, nil
}
