package dto

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required,gt=0"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// CartLine is a cart item joined with the product display fields. The price
// column is whatever the cart captured at add time, not the live catalog
// price.
type CartLine struct {
	CartID         uint   `json:"cart_id"`
	ProductID      uint   `json:"product_id"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url"`
	Quantity       int    `json:"quantity"`
	LineTotalCents int64  `json:"line_total_cents"`
}

type CartResponse struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	TotalCents int64      `json:"total_cents"`
	Items      []CartLine `json:"items"`
}
