package dto

import "time"

type OrderResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	CartID     uint      `json:"cart_id"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderLine is an order item joined with the product display fields.
type OrderLine struct {
	OrderID     uint   `json:"order_id"`
	ProductID   uint   `json:"product_id"`
	Quantity    int    `json:"quantity"`
	PriceCents  int64  `json:"price_cents"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type CheckoutResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}
