package services

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a failed
	// password check so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken           = errors.New("email already registered")
	ErrUnknownProvider      = errors.New("unknown identity provider")
	ErrInvalidIdentityToken = errors.New("invalid identity token")
	ErrUnauthenticated      = errors.New("not authenticated")
	ErrUserNotFound         = errors.New("user not found")

	ErrProductNotFound  = errors.New("product not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
)
