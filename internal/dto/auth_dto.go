package dto

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FederatedLoginRequest carries either a provider-asserted profile or an
// OIDC identity token the server verifies itself (when the provider is
// configured for verification, the token wins).
type FederatedLoginRequest struct {
	ProviderID    string `json:"provider_id" validate:"required_without=IdentityToken"`
	Username      string `json:"username" validate:"required_without=IdentityToken"`
	Email         string `json:"email" validate:"omitempty,email"`
	IdentityToken string `json:"id_token"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}
