package models

import "time"

// Cart is a user's open shopping cart. The unique index on UserID enforces
// at most one cart per user; checkout empties the cart rather than deleting
// it so orders keep a live cart reference.
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// CartItem is one product line within a cart. LineTotalCents is captured
// when the line is added or merged and is not live-repriced on catalog
// changes; a direct quantity overwrite leaves it stale on purpose.
type CartItem struct {
	CartID         uint      `gorm:"primaryKey;autoIncrement:false" json:"cart_id"`
	ProductID      uint      `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	LineTotalCents int64     `gorm:"not null" json:"line_total_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
