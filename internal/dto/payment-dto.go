package dto

type PaymentRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	MethodID string `json:"id" validate:"required"`
}

type PaymentResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}
