package models

import "time"

// Order is the immutable record of a completed checkout. CartID is a
// historical reference to the cart that produced it.
type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	CartID     uint      `gorm:"not null" json:"cart_id"`
	TotalCents int64     `gorm:"not null" json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderItem captures one cart line at checkout time. PriceCents is the line
// total the cart held when the order was placed.
type OrderItem struct {
	OrderID    uint  `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductID  uint  `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity   int   `gorm:"not null" json:"quantity"`
	PriceCents int64 `gorm:"not null" json:"price_cents"`
}
