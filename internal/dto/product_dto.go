package dto

import "gorm.io/datatypes"

type CreateProductRequest struct {
	Name          string         `json:"name" validate:"required"`
	Description   string         `json:"description"`
	PriceCents    int64          `json:"price_cents" validate:"required,gt=0"`
	Category      string         `json:"category"`
	ImageURL      string         `json:"image_url"`
	StockQuantity int            `json:"stock_quantity" validate:"gte=0"`
	Attributes    datatypes.JSON `json:"attributes"`
}

type UpdateProductRequest struct {
	Name          string         `json:"name" validate:"required"`
	Description   string         `json:"description"`
	PriceCents    int64          `json:"price_cents" validate:"required,gt=0"`
	Category      string         `json:"category"`
	ImageURL      string         `json:"image_url"`
	StockQuantity int            `json:"stock_quantity" validate:"gte=0"`
	Attributes    datatypes.JSON `json:"attributes"`
}
