package dto

type PaymentAuthorizationRequest struct {
	AmountMinorUnits int64  `json:"amount_minor_units" validate:"required,gt=0"`
	Currency         string `json:"currency" validate:"required,len=3"`
}

type PaymentAuthorizationResponse struct {
	ClientReference string `json:"client_reference"`
}
