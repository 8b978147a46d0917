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
)

// PriceReader is the narrow view of the catalog the cart depends on.
type PriceReader interface {
	UnitPriceCents(ctx context.Context, productID uint) (int64, error)
}

type CatalogService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewCatalogService(db *gorm.DB, cfg *config.Config) *CatalogService {
	return &CatalogService{db: db, timeout: cfg.DBTimeout}
}

func (s *CatalogService) UnitPriceCents(ctx context.Context, productID uint) (int64, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	var price int64
	err := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("price_cents").
		Where("id = ?", productID).
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, fmt.Errorf("failed to fetch product price: %w", err)
	}
	return price, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	products := make([]models.Product, 0)
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	products := make([]models.Product, 0)
	err := s.db.WithContext(ctx).
		Where("LOWER(category) LIKE LOWER(?)", "%"+category+"%").
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	return products, nil
}

func (s *CatalogService) Create(ctx context.Context, req *dto.CreateProductRequest) (*models.Product, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		Attributes:    req.Attributes,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, req *dto.UpdateProductRequest) (*models.Product, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":           req.Name,
		"description":    req.Description,
		"price_cents":    req.PriceCents,
		"category":       req.Category,
		"image_url":      req.ImageURL,
		"stock_quantity": req.StockQuantity,
	}
	if req.Attributes != nil {
		updates["attributes"] = req.Attributes
	}
	if err := s.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	result := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
