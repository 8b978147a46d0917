package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a catalog entry. The cart only reads PriceCents at the moment
// a line is added or merged.
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	PriceCents    int64          `gorm:"not null" json:"price_cents"`
	Category      string         `gorm:"size:100;index" json:"category"`
	ImageURL      string         `gorm:"type:text" json:"image_url"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	Attributes    datatypes.JSON `gorm:"type:jsonb" json:"attributes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
